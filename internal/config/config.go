// Package config loads CLI settings from flags, environment and an optional
// schemaform.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (SCHEMAFORM_LOG_LEVEL, ...).
const EnvPrefix = "SCHEMAFORM"

// Keys shared by flags and the config file.
const (
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
	KeyAllowHTTP     = "input.allow_http"
	KeyTimeout       = "input.timeout"
	KeyIndent        = "output.indent"
)

// Config is the resolved CLI configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig selects level, encoding and an optional rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// InputConfig controls how documents are loaded.
type InputConfig struct {
	AllowHTTP bool          `mapstructure:"allow_http"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// OutputConfig controls how documents are written.
type OutputConfig struct {
	Indent string `mapstructure:"indent"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSizeMB, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyAllowHTTP, false)
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeyIndent, "  ")
}

// Load reads file when set, otherwise searches for schemaform.yaml in the
// working directory and $HOME/.config/schemaform. A missing config file is
// not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("schemaform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "schemaform"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
