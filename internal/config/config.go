// Package config loads the urlparse command settings from a TOML file,
// URLPARSE_* environment variables and command line flags.
package config

//go:generate go tool errtrace -w .

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/viper"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/log"
)

const (
	Name      = "urlparse"
	EnvPrefix = "URLPARSE"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type IDNAConfig struct {
	// Strict enables DNS length checks of domains.
	Strict bool `mapstructure:"strict"`
}

type BulkConfig struct {
	Workers   int `mapstructure:"workers"`
	BatchSize int `mapstructure:"batch_size"`
}

type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	IDNA IDNAConfig `mapstructure:"idna"`
	Bulk BulkConfig `mapstructure:"bulk"`
}

const ErrInvalidConfig errorutil.Error = "invalid config"

// Dir returns the per-user config directory of urlparse.
// Checks XDG_CONFIG_HOME, then ~/.config.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, Name)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", Name)
	}
	return ""
}

// Init sets defaults, config paths and environment bindings of v.
// When file is not empty it is the only config file read.
func Init(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("idna.strict", false)
	v.SetDefault("bulk.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("bulk.batch_size", 4096)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config file and decodes all settings. A missing config file
// is not an error unless file names it explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	Init(v, file)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &cfg, nil
}

// Validate checks every setting and reports all bad ones at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, errorutil.Errorf("log.level: %v", err))
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, errorutil.Errorf("log.format: %v", err))
	}
	if c.Bulk.Workers < 1 {
		errs = append(errs, errorutil.Errorf("bulk.workers: must be positive, got %d", c.Bulk.Workers))
	}
	if c.Bulk.BatchSize < 1 {
		errs = append(errs, errorutil.Errorf("bulk.batch_size: must be positive, got %d", c.Bulk.BatchSize))
	}
	if err := errorutil.JoinPrefix("bad settings:", errs...); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
	}
	return nil
}
