package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS before the pool is sized.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// runMain dispatches the command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error

	switch cmd {
	case "html", "convert":
		err = runHTML(ctx, rest, env)
	case "merge":
		err = runMerge(rest, env)
	case "split":
		err = runSplit(rest, env)
	case "extract":
		err = runExtract(rest, env)
	case "rotate":
		err = runRotate(rest, env)
	case "organize":
		err = runOrganize(rest, env)
	case "watermark":
		err = runWatermark(rest, env)
	case "images":
		err = runImages(rest, env)
	case "compress":
		err = runCompress(rest, env)
	case "lock":
		err = runLock(rest, env)
	case "unlock":
		err = runUnlock(rest, env)
	case "info":
		err = runInfo(rest, env)
	case "mcp":
		err = runMCP(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pdfdesk %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		// Shorthand: pdfdesk page.html
		if looksLikeDocument(cmd) {
			err = runHTML(ctx, args[1:], env)
			break
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	for _, c := range getCommands() {
		if c.Name == name {
			return true
		}
	}
	return false
}

// looksLikeDocument reports whether arg names an HTML or Markdown file.
func looksLikeDocument(arg string) bool {
	if strings.HasPrefix(arg, "-") || isCommand(arg) {
		return false
	}
	_, ok := documentExtensions[strings.ToLower(filepath.Ext(arg))]
	return ok
}

// hasVerboseFlag scans raw arguments for -v or --verbose.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
// SIGTERM is never delivered on Windows; registering it there is harmless.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
