package main

import (
	"fmt"
	"io"
	"strings"
)

// commandNames returns the names of every command, space separated.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns the long and short forms of a command's flags.
func flagWords(c commandDef) string {
	var words []string
	for _, f := range c.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.md,*.markdown" into ["md", "markdown"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for pdfdesk\n\n")
	b.WriteString("_pdfdesk_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	// Flag values
	b.WriteString("    case \"$prev\" in\n")
	seen := make(map[string]bool)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            return\n            ;;\n",
					pattern, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\"))\n            return\n            ;;\n",
					pattern, strings.Join(globExtensions(f.FileGlob), "|"))
			case flagDir:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return\n            ;;\n", pattern)
			default:
				continue
			}
			seen[f.Long] = true
		}
	}
	b.WriteString("    esac\n\n")

	// Flags and files per command
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            if [[ \"$cur\" == -* ]]; then\n                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords(c))
		if c.TakesFiles {
			fmt.Fprintf(&b, "            else\n                COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		}
		b.WriteString("            fi\n            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _pdfdesk_completions pdfdesk\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes text for use inside a zsh _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef pdfdesk\n\n")
	b.WriteString("_pdfdesk() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
			case flagFile:
				exts := globExtensions(f.FileGlob)
				action = fmt.Sprintf(":%s:_files -g '*.(%s)'", f.Long, strings.Join(exts, "|"))
			case flagDir:
				action = fmt.Sprintf(":%s:_files -/", f.Long)
			case flagString, flagInt, flagFloat:
				action = fmt.Sprintf(":%s:", f.Long)
			}
			spec := fmt.Sprintf("--%s[%s]%s", f.Long, zshEscape(f.Desc), action)
			if f.Short != "" {
				spec = fmt.Sprintf("{-%s,--%s}'[%s]%s'", f.Short, f.Long, zshEscape(f.Desc), action)
				fmt.Fprintf(&b, "                %s \\\n", spec)
				continue
			}
			fmt.Fprintf(&b, "                '%s' \\\n", spec)
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "                '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		} else {
			b.WriteString("                '*: :'\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _pdfdesk pdfdesk\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for pdfdesk\n\n")
	b.WriteString("function __fish_pdfdesk_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_pdfdesk_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c pdfdesk -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c pdfdesk -n __fish_pdfdesk_needs_command -a %s -d %q\n", c.Name, c.Desc)
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_pdfdesk_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c pdfdesk -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
			case flagFile, flagDir:
				line += " -r -F"
			case flagString, flagInt, flagFloat:
				line += " -x"
			}
			line += fmt.Sprintf(" -d %q", f.Desc)
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c pdfdesk -n %s -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// generatePowerShell writes a PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# PowerShell completion for pdfdesk\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName pdfdesk -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", "''"))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = @(", c.Name)
		words := strings.Fields(flagWords(c))
		for i, word := range words {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "'%s'", word)
		}
		b.WriteString(")\n")
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    if ($elements.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1].ToString()\n")
	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
