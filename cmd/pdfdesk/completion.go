package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	flag "github.com/spf13/pflag"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// Shell is a shell completion scripts can be generated for.
type Shell string

// Supported shells.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType is the completion type of a flag.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagFloat
	flagEnum // predefined values
	flagFile // file matching a glob
	flagDir  // directory
)

// flagDef describes a flag for completion.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool
	FilePattern string
}

// completionMeta holds completion hints for a flag. Names, types and
// descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion hints.
var flagCompletionMeta = map[string]completionMeta{
	"format":      {Values: []string{"a4", "letter"}},
	"orientation": {Values: []string{"portrait", "landscape"}},
	"mode":        {Values: []string{"slice", "fit-page"}},
	"degrees":     {Values: []string{"90", "180", "270", "-90"}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"css":    {FileGlob: "*.css"},

	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet builds flag definitions from a FlagSet, enriched
// with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}
		if f.Name == "style" {
			fd.Type = flagEnum
			fd.Values = pdfdesk.Styles()
		}

		flags = append(flags, fd)
	})

	return flags
}

// toolDescriptions describes the page-level commands.
var toolDescriptions = map[string]string{
	"merge":     "Merge PDF files into one",
	"split":     "Split a PDF into one file per page",
	"extract":   "Extract pages into a new PDF",
	"rotate":    "Set the rotation of every page",
	"organize":  "Reorder or drop pages",
	"watermark": "Stamp a text watermark on every page",
	"images":    "Build a PDF from PNG or JPEG images",
	"compress":  "Re-save a PDF losslessly",
	"lock":      "Encrypt a PDF with a password",
	"unlock":    "Remove a PDF password",
	"info":      "Show page count, sizes and metadata",
}

// getCommands returns the command registry. Flags come from the same
// FlagSets the commands parse with.
func getCommands() []commandDef {
	cmds := []commandDef{{
		Name:        "html",
		Desc:        "Convert HTML or Markdown files to PDF",
		Flags:       extractFlagsFromFlagSet(buildHTMLFlagSet(&htmlFlags{})),
		TakesFiles:  true,
		FilePattern: "*.html,*.htm,*.md,*.markdown",
	}}

	names := make([]string, 0, len(toolSpecs))
	for name := range toolSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pattern := "*.pdf"
		if name == "images" {
			pattern = "*.png,*.jpg,*.jpeg"
		}
		cmds = append(cmds, commandDef{
			Name:        name,
			Desc:        toolDescriptions[name],
			Flags:       extractFlagsFromFlagSet(buildToolFlagSet(name, &toolFlags{})),
			TakesFiles:  true,
			FilePattern: pattern,
		})
	}

	return append(cmds,
		commandDef{Name: "mcp", Desc: "Serve the tools over MCP on stdio"},
		commandDef{Name: "doctor", Desc: "Check the rendering environment", Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print JSON"}}},
		commandDef{Name: "completion", Desc: "Generate shell completion script"},
		commandDef{Name: "version", Desc: "Show version information"},
		commandDef{Name: "help", Desc: "Show help for a command"},
	)
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfdesk completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(pdfdesk completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(pdfdesk completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    pdfdesk completion fish > ~/.config/fish/completions/pdfdesk.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    pdfdesk completion powershell | Out-String | Invoke-Expression")
}
