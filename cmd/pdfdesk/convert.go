package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/config"
	"github.com/alnah/go-pdfdesk/internal/hints"
	"github.com/alnah/go-pdfdesk/internal/render"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput              = errors.New("no input specified")
	ErrReadInput            = errors.New("failed to read input file")
	ErrReadCSS              = errors.New("failed to read CSS file")
	ErrWriteOutput          = errors.New("failed to write output file")
	ErrUnsupportedExtension = errors.New("file must have .html, .htm, .md or .markdown extension")
	ErrInvalidWorkerCount   = errors.New("invalid worker count")
	ErrOutputNotDir         = errors.New("output must be a directory when converting several files")
	ErrMissingArgument      = errors.New("missing required argument")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	input     pdfdesk.Input // options applied to every file
	markdown  bool          // treat every file as Markdown
	writeHTML bool          // also write the rendered HTML
}

// runHTML orchestrates the html command.
func runHTML(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseHTMLFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration, then merge CLI flags into it (CLI wins)
	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(positional) == 0 {
		return fmt.Errorf("%w: pass HTML or Markdown files or directories", ErrNoInput)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverAll(positional, outputDir, flags.markdown)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no HTML or Markdown files found", ErrNoInput)
	}
	if len(files) > 1 && isPDFPath(outputDir) {
		return fmt.Errorf("%w: %s (%d files found)", ErrOutputNotDir, outputDir, len(files))
	}

	css, err := readCSS(flags.render.css)
	if err != nil {
		return err
	}
	input, err := buildInput(cfg, css, flags.render.title)
	if err != nil {
		return err
	}

	stderr := &syncWriter{w: env.Stderr}
	opts := converterOptions(cfg, flags.common.verbose, stderr)

	poolSize := pdfdesk.ResolvePoolSize(cfg.Render.Workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	params := &conversionParams{
		input:     input,
		markdown:  flags.markdown,
		writeHTML: flags.html,
	}
	results := convertBatch(ctx, pool, files, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return batchError(results, failed)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *htmlFlags, cfg *config.Config) {
	setFlag(&cfg.Page.Format, flags.page.format)
	setFlag(&cfg.Page.Orientation, flags.page.orientation)
	setFlag(&cfg.Page.Mode, flags.page.mode)
	setFlag(&cfg.Render.Style, flags.render.style)
	setFlag(&cfg.Render.Timeout, flags.render.timeout)
	setFlag(&cfg.Assets.BasePath, flags.render.assetPath)

	if flags.render.scale != 0 {
		cfg.Render.Scale = flags.render.scale
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
}

// setFlag overrides *dst when the flag was given.
func setFlag(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// resolveOutputDir picks -o, then output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readCSS reads the --css file, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// buildInput creates the per-file input template from the merged config.
func buildInput(cfg *config.Config, css, title string) (pdfdesk.Input, error) {
	mode, err := pdfdesk.ParseMode(cfg.Page.Mode)
	if err != nil {
		return pdfdesk.Input{}, err
	}
	in := pdfdesk.Input{
		Format:      pdfdesk.PaperFormat(cfg.Page.Format),
		Orientation: pdfdesk.Orientation(cfg.Page.Orientation),
		Mode:        mode,
		CSS:         css,
		Title:       title,
	}
	if err := in.Validate(); err != nil {
		return pdfdesk.Input{}, err
	}
	return in, nil
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config, verbose bool, log io.Writer) []pdfdesk.Option {
	var opts []pdfdesk.Option

	if cfg.Render.Scale > 0 {
		opts = append(opts, pdfdesk.WithScale(cfg.Render.Scale))
	}
	if cfg.Render.Style != "" {
		opts = append(opts, pdfdesk.WithStyle(cfg.Render.Style))
	}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, pdfdesk.WithTimeout(d))
	}
	if cfg.SettleInterval() > 0 || cfg.SettleTimeout() > 0 {
		opts = append(opts, pdfdesk.WithSettle(cfg.SettleInterval(), 0, cfg.SettleTimeout()))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, pdfdesk.WithAssetPath(cfg.Assets.BasePath))
	}
	if verbose {
		opts = append(opts, pdfdesk.WithStateObserver(func(s pdfdesk.State) {
			fmt.Fprintf(log, "  state: %s\n", s)
		}))
	}

	return opts
}

// withHint appends an actionable hint to known conversion failures.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, pdfdesk.ErrRenderEnvironment):
		hint = hints.ForBrowserConnect(os.Getenv)
	case errors.Is(err, render.ErrEmptyContent):
		hint = hints.ForEmptyRender()
	case errors.Is(err, pdfdesk.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(pdfdesk.Styles())
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// batchFailure reports how many conversions failed. Failures were already
// printed per file; it unwraps to the first one so the exit code reflects
// its kind.
type batchFailure struct {
	failed int
	first  error
}

func (e *batchFailure) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchFailure) Unwrap() error {
	return e.first
}

// batchError summarizes failed conversions.
func batchError(results []ConversionResult, failed int) error {
	for _, r := range results {
		if r.Err != nil {
			return &batchFailure{failed: failed, first: r.Err}
		}
	}
	return nil
}

// syncWriter serializes writes from concurrent conversions.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
