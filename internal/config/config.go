// Package config loads CLI settings from defaults, an optional YAML file,
// a .env file, OPENHOURS_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. OPENHOURS_LOG_LEVEL.
const EnvPrefix = "OPENHOURS"

// ErrUnknownSchedule is returned by Resolve for names missing from the config.
var ErrUnknownSchedule = errors.New("unknown schedule")

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"env" validate:"oneof=development production"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// Timezone is used to read --at values without an offset and to print
	// results. Empty means the local zone.
	Timezone string `mapstructure:"timezone" validate:"omitempty,timezone"`
	// Schedule is the expression used when no name is given.
	Schedule string `mapstructure:"schedule"`
	// Schedules maps names to expressions. Names are case-insensitive.
	Schedules map[string]string `mapstructure:"schedules"`
}

// flagKeys binds config keys to the flag names that may override them.
var flagKeys = map[string]string{
	"env":       "env",
	"log_level": "log-level",
	"timezone":  "timezone",
	"schedule":  "schedule",
}

var validate = validator.New()

// Load reads the configuration. path selects an explicit config file; when
// empty, openhours.yaml is looked up in the working directory and in
// $HOME/.config/openhours, and its absence is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("timezone", "")
	v.SetDefault("schedule", "")
	v.SetDefault("schedules", map[string]string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("openhours")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "openhours"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values against their constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Resolve returns the expression to evaluate: the named schedule when name
// is set, the default schedule otherwise.
func (c *Config) Resolve(name string) (string, error) {
	if name == "" {
		return c.Schedule, nil
	}
	expr, ok := c.Schedules[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownSchedule, name, strings.Join(c.Names(), ", "))
	}
	return expr, nil
}

// Names returns the configured schedule names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Schedules))
	for name := range c.Schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
