// Package config loads hierquery settings from YAML.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/hierquery/errors"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "HIERQUERY_LOG_LEVEL"
	EnvLogFormat = "HIERQUERY_LOG_FORMAT"
)

// Config holds all hierquery configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Browse BrowseConfig `yaml:"browse"`

	// Designs loaded when a command is given no design argument.
	Designs []string `yaml:"designs,omitempty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// BrowseConfig configures hierarchy output.
type BrowseConfig struct {
	ShowVariables bool `yaml:"show_variables"`
	MaxDepth      int  `yaml:"max_depth"` // 0 means unlimited
}

var validFormats = []string{"console", "json"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Browse: BrowseConfig{
			ShowVariables: true,
		},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.IO(errors.PhaseConfig, "read config", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config "+path)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IO(errors.PhaseConfig, "create config directory", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseConfig, "write config", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.Log.Format = format
	}
}

// Validate checks the configuration for values no command can use.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log", "level").
			Value(c.Log.Level).
			Detail("unknown log level %q", c.Log.Level).
			Build()
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log", "format").
			Value(c.Log.Format).
			Detail("unknown log format %q (valid: %v)", c.Log.Format, validFormats).
			Build()
	}
	if c.Browse.MaxDepth < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("browse", "max_depth").
			Value(c.Browse.MaxDepth).
			Detail("max_depth must not be negative").
			Build()
	}
	return nil
}

// NewLogger builds a logger writing to stderr.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}

	zc := zap.NewProductionConfig()
	if c.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Format
	zc.Sampling = nil
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build logger")
	}
	return l, nil
}
