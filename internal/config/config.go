// Package config loads fudgeschema CLI settings from defaults, an optional
// fudgeschema.yaml, FUDGESCHEMA_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fudge-schema/naming"
)

// EnvPrefix prefixes every environment variable, e.g. FUDGESCHEMA_FORMAT.
const EnvPrefix = "FUDGESCHEMA"

// Formats lists the output formats of the resolve command.
var Formats = []string{"tree", "yaml", "json", "dump"}

// Config is the resolved CLI configuration.
type Config struct {
	ConventionName string `mapstructure:"convention"`
	Format         string `mapstructure:"format"`
	Color          bool   `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`
	Parallelism    int    `mapstructure:"parallelism"`

	// Convention is ConventionName parsed.
	Convention naming.Convention `mapstructure:"-"`
}

// Load reads the configuration. An empty file looks for fudgeschema.yaml in
// the working directory and ignores its absence; an explicit file must
// exist. flags may be nil.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("convention", naming.Identity.String())
	v.SetDefault("format", "tree")
	v.SetDefault("color", true)
	v.SetDefault("verbose", false)
	v.SetDefault("parallelism", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fudgeschema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateConfig checks the values and parses the convention.
func validateConfig(cfg *Config) error {
	c, err := naming.Parse(cfg.ConventionName)
	if err != nil {
		return fmt.Errorf("convention: %w", err)
	}
	cfg.Convention = c

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if !slices.Contains(Formats, cfg.Format) {
		return fmt.Errorf("format must be one of %s, got: %q", strings.Join(Formats, ", "), cfg.Format)
	}

	if cfg.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got: %d", cfg.Parallelism)
	}

	return nil
}
