// Package config loads and validates the pdfdesk YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-pdfdesk/internal/fileutil"
	"github.com/alnah/go-pdfdesk/internal/pagination"
	"github.com/alnah/go-pdfdesk/internal/paper"
	"github.com/alnah/go-pdfdesk/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched for configs.
const appDir = "go-pdfdesk"

// Field length limits.
const (
	MaxFormatLength         = 10   // "letter", "a4"
	MaxOrientationLength    = 10   // "portrait", "landscape"
	MaxModeLength           = 10   // "slice", "fit-page"
	MaxStyleLength          = 100  // style name
	MaxDurationLength       = 20   // "30s", "1m30s"
	MaxPathLength           = 4096 // PATH_MAX
	MaxWatermarkTextLength  = 50   // "DRAFT", "CONFIDENTIAL"
	MaxWatermarkColorLength = 7    // "#808080"
)

// Value bounds.
const (
	MaxScale    = 4.0
	MaxWorkers  = 8
	MaxFontSize = 500
)

// Config holds the CLI defaults. Flags override these values.
type Config struct {
	Page      PageConfig      `yaml:"page"`
	Render    RenderConfig    `yaml:"render"`
	Output    OutputConfig    `yaml:"output"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// PageConfig defines the output page.
type PageConfig struct {
	Format      string `yaml:"format"`      // "a4" (default), "letter"
	Orientation string `yaml:"orientation"` // "portrait" (default), "landscape"
	Mode        string `yaml:"mode"`        // "slice" (default), "fit-page"
}

// RenderConfig defines how HTML is rendered and captured.
type RenderConfig struct {
	Scale          float64 `yaml:"scale"`          // capture scale (default 2)
	Style          string  `yaml:"style"`          // base style name (default "default")
	Timeout        string  `yaml:"timeout"`        // per-document timeout, e.g. "30s"
	SettleInterval string  `yaml:"settleInterval"` // layout poll interval, e.g. "50ms"
	SettleTimeout  string  `yaml:"settleTimeout"`  // layout wait bound, e.g. "5s"
	Workers        int     `yaml:"workers"`        // parallel browsers (0 = auto)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// WatermarkConfig defines defaults for the watermark command.
type WatermarkConfig struct {
	Text     string  `yaml:"text"`
	FontSize int     `yaml:"fontSize"` // points (default 48)
	Opacity  float64 `yaml:"opacity"`  // 0.0 to 1.0 (default 0.3)
	Rotation int     `yaml:"rotation"` // degrees (default -45)
	Color    string  `yaml:"color"`    // hex (default "#808080")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns a configuration where every value selects the
// library default.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"page.format", c.Page.Format, MaxFormatLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"page.mode", c.Page.Mode, MaxModeLength},
		{"render.style", c.Render.Style, MaxStyleLength},
		{"render.timeout", c.Render.Timeout, MaxDurationLength},
		{"render.settleInterval", c.Render.SettleInterval, MaxDurationLength},
		{"render.settleTimeout", c.Render.SettleTimeout, MaxDurationLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"watermark.text", c.Watermark.Text, MaxWatermarkTextLength},
		{"watermark.color", c.Watermark.Color, MaxWatermarkColorLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	// Page
	if _, err := paper.ParseFormat(c.Page.Format); err != nil {
		return fmt.Errorf("page.format: %w", err)
	}
	if _, err := paper.ParseOrientation(c.Page.Orientation); err != nil {
		return fmt.Errorf("page.orientation: %w", err)
	}
	if !pagination.Mode(c.Page.Mode).Valid() {
		return fmt.Errorf("%w: page.mode %q (must be slice or fit-page)", ErrInvalidValue, c.Page.Mode)
	}

	// Render
	if c.Render.Scale < 0 || c.Render.Scale > MaxScale {
		return fmt.Errorf("%w: render.scale must be between 0 and %g, got %g", ErrInvalidValue, MaxScale, c.Render.Scale)
	}
	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	for name, value := range map[string]string{
		"render.timeout":        c.Render.Timeout,
		"render.settleInterval": c.Render.SettleInterval,
		"render.settleTimeout":  c.Render.SettleTimeout,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
	}

	// Watermark
	if c.Watermark.FontSize < 0 || c.Watermark.FontSize > MaxFontSize {
		return fmt.Errorf("%w: watermark.fontSize must be between 0 and %d, got %d", ErrInvalidValue, MaxFontSize, c.Watermark.FontSize)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 1 {
		return fmt.Errorf("%w: watermark.opacity must be between 0 and 1, got %.2f", ErrInvalidValue, c.Watermark.Opacity)
	}
	if c.Watermark.Rotation < -180 || c.Watermark.Rotation > 180 {
		return fmt.Errorf("%w: watermark.rotation must be between -180 and 180, got %d", ErrInvalidValue, c.Watermark.Rotation)
	}
	if c.Watermark.Color != "" && !isHexColor(c.Watermark.Color) {
		return fmt.Errorf("%w: watermark.color must be #RRGGBB, got %q", ErrInvalidValue, c.Watermark.Color)
	}

	return nil
}

// Timeout returns render.timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	d, _ := parseDuration(c.Render.Timeout)
	return d
}

// SettleInterval returns render.settleInterval, or zero when unset.
func (c *Config) SettleInterval() time.Duration {
	d, _ := parseDuration(c.Render.SettleInterval)
	return d
}

// SettleTimeout returns render.settleTimeout, or zero when unset.
func (c *Config) SettleTimeout() time.Duration {
	d, _ := parseDuration(c.Render.SettleTimeout)
	return d
}

// parseDuration parses a positive duration; empty means zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

// isHexColor reports whether s is #RRGGBB.
func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the files tried for a config name, in order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
