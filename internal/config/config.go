// Package config loads gdlint settings from .gdlint.toml and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/jward/gdlint/internal/logging"
)

// FileName is the configuration file looked up in the project root.
const FileName = ".gdlint.toml"

// EnvPrefix prefixes environment overrides, e.g. GDLINT_OUTPUT_FORMAT=json.
const EnvPrefix = "GDLINT"

type Config struct {
	Lint   LintConfig   `mapstructure:"lint" toml:"lint"`
	Rules  RulesConfig  `mapstructure:"rules" toml:"rules"`
	Output OutputConfig `mapstructure:"output" toml:"output"`
	Store  StoreConfig  `mapstructure:"store" toml:"store"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `mapstructure:"-" toml:"-"`
}

type LintConfig struct {
	Extensions []string `mapstructure:"extensions" toml:"extensions"`
	Exclude    []string `mapstructure:"exclude" toml:"exclude"`
	// Jobs bounds parallel file checks; 0 means one per CPU.
	Jobs int `mapstructure:"jobs" toml:"jobs"`
}

type RulesConfig struct {
	Disable     []string `mapstructure:"disable" toml:"disable"`
	BannedCalls []string `mapstructure:"banned_calls" toml:"banned_calls"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" toml:"format"`
	Color  string `mapstructure:"color" toml:"color"`
}

type StoreConfig struct {
	// Path of the sqlite report database; empty disables recording.
	Path string `mapstructure:"path" toml:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

var (
	formats = []string{"pretty", "json"}
	colors  = []string{"auto", "always", "never"}
	levels  = []string{"debug", "info", "warn", "warning", "error", "silent", "off"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Lint: LintConfig{
			Extensions: []string{".gd"},
			Exclude:    []string{"addons", ".godot"},
		},
		Rules: RulesConfig{
			Disable:     []string{},
			BannedCalls: []string{"print"},
		},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
		Log:    LogConfig{Level: "warn"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("lint.extensions", d.Lint.Extensions)
	v.SetDefault("lint.exclude", d.Lint.Exclude)
	v.SetDefault("lint.jobs", d.Lint.Jobs)
	v.SetDefault("rules.disable", d.Rules.Disable)
	v.SetDefault("rules.banned_calls", d.Rules.BannedCalls)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads the configuration. An explicit path must exist; otherwise
// FileName is looked up in dir and its absence means defaults. Environment
// variables override both.
func Load(dir, explicit string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.SetConfigType("toml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return &Error{Field: "output.format", Message: fmt.Sprintf("%q is not one of %s", c.Output.Format, strings.Join(formats, ", "))}
	}
	if !slices.Contains(colors, c.Output.Color) {
		return &Error{Field: "output.color", Message: fmt.Sprintf("%q is not one of %s", c.Output.Color, strings.Join(colors, ", "))}
	}
	if !slices.Contains(levels, strings.ToLower(c.Log.Level)) {
		return &Error{Field: "log.level", Message: fmt.Sprintf("%q is not one of %s", c.Log.Level, strings.Join(levels, ", "))}
	}
	if c.Lint.Jobs < 0 {
		return &Error{Field: "lint.jobs", Message: "must not be negative"}
	}
	if len(c.Lint.Extensions) == 0 {
		return &Error{Field: "lint.extensions", Message: "must list at least one extension"}
	}
	return nil
}

// LogLevel returns the configured level as a slog.Level.
func (c *Config) LogLevel() slog.Level {
	return logging.LevelFromString(c.Log.Level)
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Error is a configuration value that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Message
}
