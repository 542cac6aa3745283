package main

// Notes:
// - poolAdapter: we test Size and the panic on a foreign Converter. Acquire
//   needs a browser and is covered by the root package integration tests.
// - runMain: we test dispatch and exit codes with the in-memory environment.
// - notifyContext: we only test that the returned context is live; signal
//   delivery is not exercised.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// ---------------------------------------------------------------------------
// TestPoolAdapter - Pool adapter behavior
// ---------------------------------------------------------------------------

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := pdfdesk.NewConverterPool(1)
	defer pool.Close()
	adapter := &poolAdapter{pool: pool}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message should contain 'unexpected type', got %q", msg)
		}
	}()

	adapter.Release(&fakeConverter{})
}

func TestPoolAdapter_Size(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(3)
	defer pool.Close()

	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"html", true},
		{"merge", true},
		{"info", true},
		{"mcp", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"convert", false},
		{"page.html", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.name); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeDocument - Shorthand detection
// ---------------------------------------------------------------------------

func TestLooksLikeDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"page.html", true},
		{"page.HTM", true},
		{"notes.md", true},
		{"notes.markdown", true},
		{"dir/page.html", true},
		{"report.pdf", false},
		{"html", false},
		{"--output", false},
		{"-v", false},
		{"noext", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			if got := looksLikeDocument(tt.arg); got != tt.want {
				t.Errorf("looksLikeDocument(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short", []string{"pdfdesk", "html", "-v", "a.html"}, true},
		{"long", []string{"pdfdesk", "--verbose"}, true},
		{"absent", []string{"pdfdesk", "html", "a.html"}, false},
		{"after terminator", []string{"pdfdesk", "html", "--", "-v"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNotifyContext - Signal context
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	ctx, stop := notifyContext(context.Background())
	if ctx.Err() != nil {
		t.Fatalf("context should be live, got %v", ctx.Err())
	}
	stop()
	if ctx.Err() == nil {
		t.Error("context should be canceled after stop")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       []string{"pdfdesk"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: pdfdesk",
		},
		{
			name:       "unknown command",
			args:       []string{"pdfdesk", "frobnicate"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: frobnicate",
		},
		{
			name:       "version",
			args:       []string{"pdfdesk", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "pdfdesk dev",
		},
		{
			name:       "--version",
			args:       []string{"pdfdesk", "--version"},
			wantCode:   ExitSuccess,
			wantStdout: "pdfdesk dev",
		},
		{
			name:       "help",
			args:       []string{"pdfdesk", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: pdfdesk",
		},
		{
			name:     "flag help",
			args:     []string{"pdfdesk", "merge", "--help"},
			wantCode: ExitSuccess,
		},
		{
			name:       "bad flag",
			args:       []string{"pdfdesk", "html", "--nope"},
			wantCode:   ExitGeneral,
			wantStderr: "error:",
		},
		{
			name:       "missing input file",
			args:       []string{"pdfdesk", "html", filepath.Join(t.TempDir(), "missing.html")},
			wantCode:   ExitIO,
			wantStderr: "error:",
		},
		{
			name:       "html without inputs",
			args:       []string{"pdfdesk", "html"},
			wantCode:   ExitIO,
			wantStderr: "no input specified",
		},
		{
			name:       "invalid workers",
			args:       []string{"pdfdesk", "html", "-w", "99", "a.html"},
			wantCode:   ExitUsage,
			wantStderr: "invalid worker count",
		},
		{
			name:       "unsupported shell",
			args:       []string{"pdfdesk", "completion", "tcsh"},
			wantCode:   ExitUsage,
			wantStderr: "unsupported shell",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			code := runMain(context.Background(), tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", env.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_DocumentShorthand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "page.html", "<h1>Hello</h1>")
	env := newTestEnv(t)

	code := runMain(context.Background(), []string{"pdfdesk", input}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, ExitSuccess, env.stderr.String())
	}
	want := filepath.Join(dir, "page.pdf")
	if !strings.Contains(env.stdout.String(), "Created "+want) {
		t.Errorf("stdout = %q, want to report %s", env.stdout.String(), want)
	}
}

func TestRunMain_ConvertAlias(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "page.htm", "<p>x</p>")
	env := newTestEnv(t)

	code := runMain(context.Background(), []string{"pdfdesk", "convert", "-q", input}, env.Environment)

	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, ExitSuccess, env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run should print nothing, got %q", env.stdout.String())
	}
}

func TestRunMain_ConversionFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "page.html", "<p>x</p>")
	env := newTestEnv(t)
	env.conv.err = &pdfdesk.ConversionError{State: pdfdesk.StateSandboxing, Kind: pdfdesk.ErrRenderEnvironment, Err: errFake}

	code := runMain(context.Background(), []string{"pdfdesk", "html", input}, env.Environment)

	if code != ExitBrowser {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitBrowser, env.stderr.String())
	}
	if !strings.Contains(env.stderr.String(), "1 conversion(s) failed") {
		t.Errorf("stderr = %q, want failure summary", env.stderr.String())
	}
}
