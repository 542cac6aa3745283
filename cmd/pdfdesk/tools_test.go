package main

// Notes:
// - Page commands run against real PDFs built from images, so page widths
//   identify pages after reordering.
// - Watermark output is checked for validity and page count only; the
//   stamp itself is covered by the pdfops tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// ---------------------------------------------------------------------------
// TestRunMerge
// ---------------------------------------------------------------------------

func TestRunMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 40, 50)
	b := writePDF(t, dir, "b.pdf", 60)
	out := filepath.Join(dir, "merged", "all.pdf")
	env := newTestEnv(t)

	if err := runMerge([]string{a, b, "-o", out}, env.Environment); err != nil {
		t.Fatalf("runMerge() error = %v", err)
	}
	if got := widthsOf(t, out); !equalInts(got, []int{40, 50, 60}) {
		t.Errorf("page widths = %v, want [40 50 60]", got)
	}
	if !strings.Contains(env.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRunMerge_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 40)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no inputs", []string{"-o", "x.pdf"}, ErrNoInput},
		{"no output", []string{a}, ErrMissingArgument},
		{"missing file", []string{filepath.Join(dir, "nope.pdf"), "-o", filepath.Join(dir, "x.pdf")}, ErrReadInput},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := runMerge(tt.args, newTestEnv(t).Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runMerge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunSplit
// ---------------------------------------------------------------------------

func TestRunSplit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50, 60)
	out := filepath.Join(dir, "pages")
	env := newTestEnv(t)

	if err := runSplit([]string{in, "-o", out, "-q"}, env.Environment); err != nil {
		t.Fatalf("runSplit() error = %v", err)
	}
	for i, w := range []int{40, 50, 60} {
		path := filepath.Join(out, pdfdesk.SplitName("doc", i+1))
		if got := widthsOf(t, path); !equalInts(got, []int{w}) {
			t.Errorf("%s widths = %v, want [%d]", path, got, w)
		}
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet split printed %q", env.stdout.String())
	}
}

func TestRunSplit_DefaultsToInputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50)

	if err := runSplit([]string{in}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runSplit() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, pdfdesk.SplitName("doc", 2))); err != nil {
		t.Errorf("expected page 2 next to input: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunExtract / TestRunOrganize
// ---------------------------------------------------------------------------

func TestRunExtract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50, 60, 70)

	if err := runExtract([]string{in, "--pages", "4,1-2"}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runExtract() error = %v", err)
	}
	if got := widthsOf(t, filepath.Join(dir, "doc_extracted.pdf")); !equalInts(got, []int{70, 40, 50}) {
		t.Errorf("widths = %v, want [70 40 50]", got)
	}
}

func TestRunOrganize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50, 60)
	out := filepath.Join(dir, "reordered.pdf")

	if err := runOrganize([]string{in, "--pages", "3,1", "-o", out}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runOrganize() error = %v", err)
	}
	if got := widthsOf(t, out); !equalInts(got, []int{60, 40}) {
		t.Errorf("widths = %v, want [60 40]", got)
	}
}

func TestRunSelection_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50)

	err := runExtract([]string{in}, newTestEnv(t).Environment)
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("missing --pages: error = %v, want ErrMissingArgument", err)
	}

	err = runOrganize([]string{in, "--pages", "5"}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrInvalidPageSelection) {
		t.Fatalf("error = %v, want ErrInvalidPageSelection", err)
	}
	if !strings.Contains(err.Error(), "the document has 2 pages") {
		t.Errorf("error should carry the page count hint: %q", err.Error())
	}

	err = runExtract([]string{in, "--pages", "1", filepath.Join(dir, "other.pdf")}, newTestEnv(t).Environment)
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("two inputs: error = %v, want ErrMissingArgument", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunRotate
// ---------------------------------------------------------------------------

func TestRunRotate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40)

	if err := runRotate([]string{in}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runRotate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc_rotated.pdf")); err != nil {
		t.Errorf("expected doc_rotated.pdf: %v", err)
	}

	err := runRotate([]string{in, "--degrees", "45"}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrInvalidRotation) {
		t.Errorf("error = %v, want ErrInvalidRotation", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunWatermark
// ---------------------------------------------------------------------------

func TestRunWatermark(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 200, 200)

	err := runWatermark([]string{in, "--text", "DRAFT", "--opacity", "0.5", "--color", "#ff0000"}, newTestEnv(t).Environment)
	if err != nil {
		t.Fatalf("runWatermark() error = %v", err)
	}
	if got := widthsOf(t, filepath.Join(dir, "doc_watermarked.pdf")); len(got) != 2 {
		t.Errorf("pages = %d, want 2", len(got))
	}
}

func TestRunWatermark_TextFromEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 200)
	env := newTestEnv(t)
	env.vars["PDFDESK_WATERMARK_TEXT"] = "CONFIDENTIAL"

	if err := runWatermark([]string{in}, env.Environment); err != nil {
		t.Fatalf("runWatermark() error = %v", err)
	}
}

func TestRunWatermark_NoText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 200)

	err := runWatermark([]string{in}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrEmptyWatermark) {
		t.Errorf("error = %v, want ErrEmptyWatermark", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunImages
// ---------------------------------------------------------------------------

func TestRunImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	if err := os.WriteFile(a, pngImage(t, 30, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, pngImage(t, 45, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "album.pdf")

	if err := runImages([]string{a, b, "-o", out}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runImages() error = %v", err)
	}
	if got := widthsOf(t, out); !equalInts(got, []int{30, 45}) {
		t.Errorf("widths = %v, want [30 45]", got)
	}

	notImage := writeFile(t, dir, "notes.txt", "text")
	err := runImages([]string{notImage, "-o", out}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrUnsupportedImage) {
		t.Errorf("error = %v, want ErrUnsupportedImage", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunCompress
// ---------------------------------------------------------------------------

func TestRunCompress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50)
	env := newTestEnv(t)

	if err := runCompress([]string{in, "-v"}, env.Environment); err != nil {
		t.Fatalf("runCompress() error = %v", err)
	}
	if got := widthsOf(t, filepath.Join(dir, "doc_compressed.pdf")); !equalInts(got, []int{40, 50}) {
		t.Errorf("widths = %v, want [40 50]", got)
	}
	if !strings.Contains(env.stderr.String(), "Size:") {
		t.Errorf("verbose compress should report sizes, got %q", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunLockUnlock
// ---------------------------------------------------------------------------

func TestRunLockUnlock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50)

	if err := runLock([]string{in, "--password", "s3cret"}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runLock() error = %v", err)
	}
	locked := filepath.Join(dir, "doc_locked.pdf")

	err := runUnlock([]string{locked, "--password", "wrong"}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrWrongPassword) {
		t.Fatalf("error = %v, want ErrWrongPassword", err)
	}
	if !strings.Contains(err.Error(), "--password") {
		t.Errorf("error should carry the password hint: %q", err.Error())
	}

	if err := runUnlock([]string{locked, "--password", "s3cret"}, newTestEnv(t).Environment); err != nil {
		t.Fatalf("runUnlock() error = %v", err)
	}
	if got := widthsOf(t, filepath.Join(dir, "doc_locked_unlocked.pdf")); !equalInts(got, []int{40, 50}) {
		t.Errorf("widths = %v, want [40 50]", got)
	}
}

func TestRunLock_EmptyPassword(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40)

	err := runLock([]string{in}, newTestEnv(t).Environment)
	if !errors.Is(err, pdfdesk.ErrEmptyPassword) {
		t.Errorf("error = %v, want ErrEmptyPassword", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunInfo
// ---------------------------------------------------------------------------

func TestRunInfo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40, 50)
	env := newTestEnv(t)

	if err := runInfo([]string{in}, env.Environment); err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"Pages:    2", "page 1: 40x20 pt", "page 2: 50x20 pt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInfo_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writePDF(t, dir, "doc.pdf", 40)
	env := newTestEnv(t)

	if err := runInfo([]string{in, "--json"}, env.Environment); err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}

	var info pdfdesk.PDFInfo
	if err := json.Unmarshal(env.stdout.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, env.stdout.String())
	}
	if info.Pages != 1 || len(info.Sizes) != 1 || info.Sizes[0].Width != 40 {
		t.Errorf("info = %+v", info)
	}
}

func TestRunInfo_NoInput(t *testing.T) {
	t.Parallel()

	if err := runInfo(nil, newTestEnv(t).Environment); !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
}
