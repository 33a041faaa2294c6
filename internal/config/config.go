package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Config is the complete configuration for the textpost application. It
// covers all commands (text, batch, dict, serve) and is loaded from
// configuration files, environment variables and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Correction dictionary settings
	Dictionary DictionaryConfig `mapstructure:"dictionary" yaml:"dictionary" json:"dictionary"`

	// OCR engine settings
	Engine EngineConfig `mapstructure:"engine" yaml:"engine" json:"engine"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Output settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server settings (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DictionaryConfig locates the user correction layer.
type DictionaryConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// EngineConfig configures the external OCR engine.
type EngineConfig struct {
	Languages []string `mapstructure:"languages" yaml:"languages" json:"languages"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
	ShowProgress    bool     `mapstructure:"show_progress" yaml:"show_progress" json:"show_progress"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultDictionaryPath returns the default user dictionary location under
// the user's config directory, falling back to the working directory.
func DefaultDictionaryPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "textpost", "corrections.json")
	}
	return "corrections.json"
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Dictionary: DictionaryConfig{
			Path: DefaultDictionaryPath(),
		},
		Engine: EngineConfig{
			Languages: []string{"eng"},
		},
		Batch: BatchConfig{
			IncludePatterns: []string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff", "*.tif"},
			ShowProgress:    true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

var validFormats = []string{"text", "json", "csv"}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q (must be one of %v)", c.LogLevel, validLogLevels)
	}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (must be one of %v)", c.Output.Format, validFormats)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout %d (must be positive)", c.Server.TimeoutSec)
	}
	return nil
}
