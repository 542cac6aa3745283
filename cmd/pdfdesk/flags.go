package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	format      string
	orientation string
	mode        string
}

// renderFlags holds rendering flags.
type renderFlags struct {
	scale     float64
	style     string
	css       string
	title     string
	timeout   string
	assetPath string
}

// htmlFlags holds all flags for the html command.
type htmlFlags struct {
	common   commonFlags
	page     pageFlags
	render   renderFlags
	output   string
	workers  int
	markdown bool
	html     bool // write the rendered sandbox HTML alongside the PDF
}

// toolFlags holds flags for the page-level PDF commands.
// Each command registers only the fields it uses.
type toolFlags struct {
	common   commonFlags
	output   string
	pages    string
	degrees  int
	password string
	json     bool

	watermark watermarkFlags
}

// watermarkFlags holds watermark flags.
type watermarkFlags struct {
	text     string
	fontSize int
	opacity  float64
	rotation int
	color    string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline states and timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "format", "p", "", "paper format: a4, letter")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.StringVar(&f.mode, "mode", "", "pagination: slice, fit-page")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.Float64Var(&f.scale, "scale", 0, "capture scale (0 = default 2, max 4)")
	fs.StringVar(&f.style, "style", "", "base style name: default, document")
	fs.StringVar(&f.css, "css", "", "extra CSS file applied after the style")
	fs.StringVar(&f.title, "title", "", "PDF title (default: document <title>)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addWatermarkFlags adds watermark flags to a FlagSet.
func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "text", "", "watermark text")
	fs.IntVar(&f.fontSize, "font-size", 0, "font size in points (default 48)")
	fs.Float64Var(&f.opacity, "opacity", 0, "opacity 0.0-1.0 (default 0.3)")
	fs.IntVar(&f.rotation, "rotation", 0, "rotation in degrees (default -45)")
	fs.StringVar(&f.color, "color", "", "hex color (default #808080)")
}

// buildHTMLFlagSet creates the html command FlagSet bound to f.
func buildHTMLFlagSet(f *htmlFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("html", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.markdown, "markdown", false, "treat every input as Markdown")
	fs.BoolVar(&f.html, "html", false, "also write the rendered HTML")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addRenderFlags(fs, &f.render)

	return fs
}

// parseHTMLFlags parses html command flags and returns positional args.
func parseHTMLFlags(args []string, usage io.Writer) (*htmlFlags, []string, error) {
	f := &htmlFlags{}
	fs := buildHTMLFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printHTMLUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// toolFlagSpec names the optional flag groups of a tool command.
type toolFlagSpec struct {
	output    bool
	pages     bool
	degrees   bool
	password  bool
	watermark bool
	json      bool
}

// toolSpecs lists the flags each page-level command accepts.
var toolSpecs = map[string]toolFlagSpec{
	"merge":     {output: true},
	"split":     {output: true},
	"extract":   {output: true, pages: true},
	"rotate":    {output: true, degrees: true},
	"organize":  {output: true, pages: true},
	"watermark": {output: true, watermark: true},
	"images":    {output: true},
	"compress":  {output: true},
	"lock":      {output: true, password: true},
	"unlock":    {output: true, password: true},
	"info":      {json: true},
}

// buildToolFlagSet creates the FlagSet of a page-level command bound to f.
func buildToolFlagSet(name string, f *toolFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	spec := toolSpecs[name]

	if spec.output {
		desc := "output file"
		if name == "split" {
			desc = "output directory"
		}
		fs.StringVarP(&f.output, "output", "o", "", desc)
	}
	if spec.pages {
		desc := `pages and ranges, e.g. "1,3-5,end"`
		if name == "organize" {
			desc = `new page order, e.g. "3,1,2"`
		}
		fs.StringVar(&f.pages, "pages", "", desc)
	}
	if spec.degrees {
		fs.IntVar(&f.degrees, "degrees", 90, "page rotation clockwise, a multiple of 90")
	}
	if spec.password {
		fs.StringVar(&f.password, "password", "", "document password")
	}
	if spec.watermark {
		addWatermarkFlags(fs, &f.watermark)
	}
	if spec.json {
		fs.BoolVar(&f.json, "json", false, "print JSON")
	}
	addCommonFlags(fs, &f.common)

	return fs
}

// parseToolFlags parses the flags of a page-level command.
func parseToolFlags(name string, args []string, usage io.Writer) (*toolFlags, []string, error) {
	f := &toolFlags{}
	fs := buildToolFlagSet(name, f)
	fs.SetOutput(usage)
	fs.Usage = func() { printToolUsage(usage, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
