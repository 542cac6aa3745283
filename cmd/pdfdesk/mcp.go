package main

import (
	"context"
	"fmt"
	"io"
	"log"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdfdesk/internal/mcp"
)

// runMCP serves the tools over MCP on stdin/stdout until ctx is canceled
// or the client disconnects. Logs go to stderr; stdout carries the protocol.
func runMCP(ctx context.Context, args []string, env *Environment) error {
	var common commonFlags
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(common.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOut := env.Stderr
	if common.quiet {
		logOut = io.Discard
	}
	logger := log.New(logOut, "pdfdesk-mcp: ", log.LstdFlags)
	conv, err := env.NewConverter(converterOptions(cfg, common.verbose, env.Stderr)...)
	if err != nil {
		return fmt.Errorf("starting converter: %w", err)
	}
	defer func() { _ = conv.Close() }()

	srv, err := mcp.NewServer(Version, conv, env.Toolkit, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx, env.Stdin, env.Stdout)
}
