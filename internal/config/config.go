// Package config manages application configuration from various sources.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/sst/piechart/internal/chart"
	"github.com/sst/piechart/internal/format"
	"github.com/sst/piechart/internal/style"
)

// Config is the main configuration structure for the application.
type Config struct {
	Radius  int      `mapstructure:"radius" json:"radius"`
	Aspect  int      `mapstructure:"aspect" json:"aspect"`
	Legend  bool     `mapstructure:"legend" json:"legend"`
	Format  string   `mapstructure:"format" json:"format,omitempty"`
	Color   string   `mapstructure:"color" json:"color,omitempty"`
	Palette []string `mapstructure:"palette" json:"palette,omitempty"`
	Fills   []string `mapstructure:"fills" json:"fills,omitempty"`
	Debug   bool     `mapstructure:"debug" json:"debug,omitempty"`
}

// Application constants
const (
	defaultRadius = 7
	defaultAspect = 3
	appName       = "piechart"
)

var (
	ErrInvalidRadius = chart.ErrInvalidRadius
	ErrInvalidAspect = chart.ErrInvalidAspectRatio
)

// Options controls where Load looks for configuration.
type Options struct {
	// WorkingDir is searched for a local config file merged over the global one.
	WorkingDir string
	// File, when set, replaces the global config file lookup.
	File string
	// Flags are bound to their config keys; a flag that was set on the
	// command line wins over every other source. Flag names match keys,
	// except "no-legend" which negates "legend".
	Flags *pflag.FlagSet
}

// Load builds the configuration from defaults, config files, PIECHART_*
// environment variables and flags, in increasing order of precedence.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	configureViper(v, opts.File)
	setDefaults(v)

	// Read global config
	if err := readConfig(v.ReadInConfig(), opts.File != ""); err != nil {
		return nil, err
	}

	// Load and merge local config
	if opts.WorkingDir != "" && opts.File == "" {
		mergeLocalConfig(v, opts.WorkingDir)
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if opts.Flags != nil {
		if f := opts.Flags.Lookup("no-legend"); f != nil && f.Changed {
			noLegend, _ := opts.Flags.GetBool("no-legend")
			cfg.Legend = !noLegend
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	slog.Debug("Configuration loaded", "file", v.ConfigFileUsed(), "radius", cfg.Radius, "aspect", cfg.Aspect, "legend", cfg.Legend)
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fmt.Sprintf(".%s", appName))
		v.SetConfigType("json")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
		v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("radius", defaultRadius)
	v.SetDefault("aspect", defaultAspect)
	v.SetDefault("legend", true)
	v.SetDefault("format", string(format.TextFormat))
	v.SetDefault("color", string(style.ColorAuto))
	v.SetDefault("palette", style.DefaultPalette)
	v.SetDefault("fills", []string{"•", "▪", "▴"})
	v.SetDefault("debug", false)
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error, explicit bool) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist, unless it was asked for
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && !explicit {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig loads and merges configuration from the local directory.
func mergeLocalConfig(v *viper.Viper, workingDir string) {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.SetConfigType("json")
	local.AddConfigPath(workingDir)

	// Merge local config if it exists
	if err := local.ReadInConfig(); err == nil {
		if err := v.MergeConfigMap(local.AllSettings()); err != nil {
			slog.Warn("Failed to merge local config", "file", local.ConfigFileUsed(), "error", err)
		}
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{"radius", "aspect", "format", "color", "debug"} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, c.Radius)
	}
	if c.Aspect <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAspect, c.Aspect)
	}
	if f := format.OutputFormat(c.Format); !f.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if _, err := style.ParseColorMode(c.Color); err != nil {
		return err
	}
	for _, fill := range c.Fills {
		if utf8.RuneCountInString(fill) != 1 {
			return fmt.Errorf("invalid fill %q, should be a single char", fill)
		}
	}
	return nil
}
