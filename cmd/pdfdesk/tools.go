package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/fileutil"
	"github.com/alnah/go-pdfdesk/internal/hints"
)

// runMerge concatenates the input PDFs into -o.
func runMerge(args []string, env *Environment) error {
	flags, positional, err := parseToolFlags("merge", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass the PDF files to merge", ErrNoInput)
	}
	if flags.output == "" {
		return fmt.Errorf("%w: -o/--output is required", ErrMissingArgument)
	}

	inputs, err := readInputs(positional)
	if err != nil {
		return err
	}
	out, err := env.Toolkit.Merge(inputs)
	if err != nil {
		return err
	}
	return writeOutput(flags, flags.output, out, env)
}

// runSplit writes one PDF per page into -o, or next to the input.
func runSplit(args []string, env *Environment) error {
	flags, input, err := singleInput("split", args, env)
	if err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	parts, err := env.Toolkit.Split(data)
	if err != nil {
		return err
	}

	dir := flags.output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	for i, part := range parts {
		if err := writeOutput(flags, filepath.Join(dir, pdfdesk.SplitName(base, i+1)), part, env); err != nil {
			return err
		}
	}
	return nil
}

// runExtract copies the --pages selection into a new PDF.
func runExtract(args []string, env *Environment) error {
	return runSelection("extract", "extracted", args, env, env.Toolkit.ExtractPages)
}

// runOrganize rewrites the page order given by --pages.
func runOrganize(args []string, env *Environment) error {
	return runSelection("organize", "organized", args, env, env.Toolkit.Organize)
}

// runSelection runs a command driven by a --pages expression.
func runSelection(name, suffix string, args []string, env *Environment, fn func([]byte, string) ([]byte, error)) error {
	flags, input, err := singleInput(name, args, env)
	if err != nil {
		return err
	}
	if flags.pages == "" {
		return fmt.Errorf("%w: --pages is required", ErrMissingArgument)
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	out, err := fn(data, flags.pages)
	if err != nil {
		if errors.Is(err, pdfdesk.ErrInvalidPageSelection) {
			n, _ := env.Toolkit.PageCount(data)
			return fmt.Errorf("%w%s", err, hints.ForPageSelection(n))
		}
		return err
	}
	return writeOutput(flags, outputPath(flags, input, suffix), out, env)
}

// runRotate rotates every page by --degrees.
func runRotate(args []string, env *Environment) error {
	return runTransform("rotate", "rotated", args, env, func(data []byte, flags *toolFlags) ([]byte, error) {
		return env.Toolkit.Rotate(data, flags.degrees)
	})
}

// runWatermark stamps a text watermark on every page. Flags override the
// watermark section of the config file.
func runWatermark(args []string, env *Environment) error {
	return runTransform("watermark", "watermarked", args, env, func(data []byte, flags *toolFlags) ([]byte, error) {
		cfg, err := loadConfig(flags.common.config, env)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		w := flags.watermark
		opts := pdfdesk.WatermarkOptions{
			Text:     cfg.Watermark.Text,
			FontSize: cfg.Watermark.FontSize,
			Opacity:  cfg.Watermark.Opacity,
			Rotation: cfg.Watermark.Rotation,
			Color:    cfg.Watermark.Color,
		}
		setFlag(&opts.Text, w.text)
		setFlag(&opts.Color, w.color)
		if w.fontSize != 0 {
			opts.FontSize = w.fontSize
		}
		if w.opacity != 0 {
			opts.Opacity = w.opacity
		}
		if w.rotation != 0 {
			opts.Rotation = w.rotation
		}
		return env.Toolkit.Watermark(data, opts)
	})
}

// runCompress re-saves the document losslessly and reports the size change.
func runCompress(args []string, env *Environment) error {
	return runTransform("compress", "compressed", args, env, func(data []byte, flags *toolFlags) ([]byte, error) {
		out, err := env.Toolkit.Compress(data)
		if err != nil {
			return nil, err
		}
		if flags.common.verbose {
			fmt.Fprintf(env.Stderr, "Size: %d -> %d bytes\n", len(data), len(out))
		}
		return out, nil
	})
}

// runLock encrypts the document with --password.
func runLock(args []string, env *Environment) error {
	return runTransform("lock", "locked", args, env, func(data []byte, flags *toolFlags) ([]byte, error) {
		return env.Toolkit.Lock(data, flags.password)
	})
}

// runUnlock removes encryption using --password.
func runUnlock(args []string, env *Environment) error {
	return runTransform("unlock", "unlocked", args, env, func(data []byte, flags *toolFlags) ([]byte, error) {
		out, err := env.Toolkit.Unlock(data, flags.password)
		if errors.Is(err, pdfdesk.ErrWrongPassword) || errors.Is(err, pdfdesk.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w%s", err, hints.ForPassword())
		}
		return out, err
	})
}

// runTransform runs a one-in one-out command.
func runTransform(name, suffix string, args []string, env *Environment, fn func([]byte, *toolFlags) ([]byte, error)) error {
	flags, input, err := singleInput(name, args, env)
	if err != nil {
		return err
	}
	data, err := readInput(input)
	if err != nil {
		return err
	}
	out, err := fn(data, flags)
	if err != nil {
		if errors.Is(err, pdfdesk.ErrEncrypted) {
			return fmt.Errorf("%w%s", err, hints.ForPassword())
		}
		return err
	}
	return writeOutput(flags, outputPath(flags, input, suffix), out, env)
}

// runImages builds one PDF page per PNG or JPEG image.
func runImages(args []string, env *Environment) error {
	flags, positional, err := parseToolFlags("images", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass PNG or JPEG images", ErrNoInput)
	}
	if flags.output == "" {
		return fmt.Errorf("%w: -o/--output is required", ErrMissingArgument)
	}

	images, err := readInputs(positional)
	if err != nil {
		return err
	}
	out, err := env.Toolkit.ImagesToPDF(images)
	if err != nil {
		return err
	}
	return writeOutput(flags, flags.output, out, env)
}

// runInfo prints page count, page sizes and metadata.
func runInfo(args []string, env *Environment) error {
	flags, input, err := singleInput("info", args, env)
	if err != nil {
		return err
	}
	data, err := readInput(input)
	if err != nil {
		return err
	}
	info, err := env.Toolkit.Info(data)
	if err != nil {
		if errors.Is(err, pdfdesk.ErrEncrypted) {
			return fmt.Errorf("%w%s", err, hints.ForPassword())
		}
		return err
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	printInfo(env, input, info)
	return nil
}

// printInfo writes info in human-readable form.
func printInfo(env *Environment, path string, info *pdfdesk.PDFInfo) {
	fmt.Fprintf(env.Stdout, "File:     %s\n", path)
	fmt.Fprintf(env.Stdout, "Pages:    %d\n", info.Pages)
	fmt.Fprintf(env.Stdout, "Size:     %d bytes\n", info.Bytes)
	if info.Version != "" {
		fmt.Fprintf(env.Stdout, "Version:  %s\n", info.Version)
	}
	if info.Title != "" {
		fmt.Fprintf(env.Stdout, "Title:    %s\n", info.Title)
	}
	if info.Producer != "" {
		fmt.Fprintf(env.Stdout, "Producer: %s\n", info.Producer)
	}
	for i, s := range info.Sizes {
		fmt.Fprintf(env.Stdout, "  page %d: %gx%g pt\n", i+1, s.Width, s.Height)
	}
}

// singleInput parses flags and requires exactly one positional PDF.
func singleInput(name string, args []string, env *Environment) (*toolFlags, string, error) {
	flags, positional, err := parseToolFlags(name, args, env.Stderr)
	if err != nil {
		return nil, "", err
	}
	switch len(positional) {
	case 0:
		return nil, "", fmt.Errorf("%w: pass a PDF file", ErrNoInput)
	case 1:
		return flags, positional[0], nil
	default:
		return nil, "", fmt.Errorf("%w: %s takes one PDF, got %d", ErrMissingArgument, name, len(positional))
	}
}

// outputPath returns -o, or the input path with a suffix.
func outputPath(flags *toolFlags, input, suffix string) string {
	if flags.output != "" {
		return flags.output
	}
	return fileutil.AddSuffix(input, suffix)
}

// readInput reads one input file.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return data, nil
}

// readInputs reads input files in order.
func readInputs(paths []string) ([][]byte, error) {
	out := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := readInput(p)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// writeOutput writes a result file and reports it unless quiet.
func writeOutput(flags *toolFlags, path string, data []byte, env *Environment) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return nil
}
