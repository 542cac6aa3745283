package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pdfdesk/internal/config"
	"github.com/alnah/go-pdfdesk/internal/fileutil"
	"github.com/alnah/go-pdfdesk/internal/hints"
)

// envPrefix is the prefix of every pdfdesk environment variable.
const envPrefix = "PDFDESK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // PDFDESK_CONFIG: config file name or path
	Format        string        // PDFDESK_FORMAT: a4, letter
	Orientation   string        // PDFDESK_ORIENTATION: portrait, landscape
	Mode          string        // PDFDESK_MODE: slice, fit-page
	Scale         float64       // PDFDESK_SCALE: capture scale
	Style         string        // PDFDESK_STYLE: base style name
	Timeout       time.Duration // PDFDESK_TIMEOUT: per-document timeout
	Workers       int           // PDFDESK_WORKERS: parallel browsers
	OutputDir     string        // PDFDESK_OUTPUT_DIR: default output directory
	AssetPath     string        // PDFDESK_ASSET_PATH: custom asset directory
	WatermarkText string        // PDFDESK_WATERMARK_TEXT: default watermark text
}

// knownEnvVars lists valid PDFDESK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDFDESK_CONFIG":         true,
	"PDFDESK_FORMAT":         true,
	"PDFDESK_ORIENTATION":    true,
	"PDFDESK_MODE":           true,
	"PDFDESK_SCALE":          true,
	"PDFDESK_STYLE":          true,
	"PDFDESK_TIMEOUT":        true,
	"PDFDESK_WORKERS":        true,
	"PDFDESK_OUTPUT_DIR":     true,
	"PDFDESK_ASSET_PATH":     true,
	"PDFDESK_WATERMARK_TEXT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:    getenv("PDFDESK_CONFIG"),
		Format:        getenv("PDFDESK_FORMAT"),
		Orientation:   getenv("PDFDESK_ORIENTATION"),
		Mode:          getenv("PDFDESK_MODE"),
		Style:         getenv("PDFDESK_STYLE"),
		OutputDir:     getenv("PDFDESK_OUTPUT_DIR"),
		AssetPath:     getenv("PDFDESK_ASSET_PATH"),
		WatermarkText: getenv("PDFDESK_WATERMARK_TEXT"),
	}

	if timeout := getenv("PDFDESK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := getenv("PDFDESK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if scale := getenv("PDFDESK_SCALE"); scale != "" {
		if s, err := strconv.ParseFloat(scale, 64); err == nil && s > 0 {
			cfg.Scale = s
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PDFDESK_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setFlag(&cfg.Page.Format, env.Format)
	setFlag(&cfg.Page.Orientation, env.Orientation)
	setFlag(&cfg.Page.Mode, env.Mode)
	setFlag(&cfg.Render.Style, env.Style)
	setFlag(&cfg.Output.DefaultDir, env.OutputDir)
	setFlag(&cfg.Assets.BasePath, env.AssetPath)
	setFlag(&cfg.Watermark.Text, env.WatermarkText)

	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.Scale > 0 {
		cfg.Render.Scale = env.Scale
	}
}

// loadConfig resolves the config file (flag, then PDFDESK_CONFIG), applies
// the environment and returns the merged configuration.
func loadConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}
