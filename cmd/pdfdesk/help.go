package main

import (
	"fmt"
	"io"
	"sort"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfdesk <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert:")
	fmt.Fprintln(w, "  html        Convert HTML or Markdown files to PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	names := make([]string, 0, len(toolDescriptions))
	for name := range toolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, toolDescriptions[name])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  mcp         Serve the tools over MCP on stdio")
	fmt.Fprintln(w, "  doctor      Check the rendering environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfdesk help <command>' for details on a specific command.")
}

// printHTMLUsage prints usage for the html command.
func printHTMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfdesk html <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render HTML or Markdown files in a headless browser and paginate them into PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html, .htm, .md or .markdown file, or a directory to scan")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --markdown            Treat every input as Markdown")
	fmt.Fprintln(w, "      --html                Also write the rendered HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --format <s>          Paper format: a4, letter")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --mode <s>            Pagination: slice (default), fit-page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --scale <f>           Capture scale (default 2, max 4)")
	fmt.Fprintln(w, "      --style <name>        Base style: default, document")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file applied after the style")
	fmt.Fprintln(w, "      --title <s>           PDF title (default: document <title>)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pipeline states and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PDFDESK_* variables fill settings not given as flags, e.g. PDFDESK_FORMAT=letter.")
}

// printToolUsage prints usage for a page-level command from its FlagSet.
func printToolUsage(w io.Writer, name string) {
	args := "<input.pdf>"
	switch name {
	case "merge":
		args = "<input.pdf>... -o <output.pdf>"
	case "images":
		args = "<image>... -o <output.pdf>"
	}
	fmt.Fprintf(w, "Usage: pdfdesk %s %s [flags]\n", name, args)
	fmt.Fprintln(w)
	fmt.Fprintln(w, toolDescriptions[name]+".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs := buildToolFlagSet(name, &toolFlags{})
	fmt.Fprint(w, fs.FlagUsages())
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	name := args[0]
	if _, ok := toolSpecs[name]; ok {
		printToolUsage(env.Stdout, name)
		return
	}

	switch name {
	case "html", "convert":
		printHTMLUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "mcp":
		fmt.Fprintln(env.Stdout, "Usage: pdfdesk mcp")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Serve the conversion and page tools to MCP clients over stdin/stdout.")
		fmt.Fprintln(env.Stdout, "Rendering settings come from the config file and PDFDESK_* variables.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: pdfdesk doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the browser, the environment and the PDF pipeline.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdfdesk version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdfdesk help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", name)
		printUsage(env.Stderr)
	}
}
