package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultLocale   = "zh_TW"
	DefaultTimeZone = "Local"
	DefaultLogLevel = "info"
)

// Config represents application configuration
type Config struct {
	Locale   string            `mapstructure:"locale"`
	TimeZone string            `mapstructure:"time_zone"` // IANA name or "Local"
	Labels   map[string]string `mapstructure:"labels"`    // overrides for TODAY/TOMORROW/YESTERDAY
	Log      LogConfig         `mapstructure:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // empty logs to stderr
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error when configPath is empty; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("locale", DefaultLocale)
	v.SetDefault("time_zone", DefaultTimeZone)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.datetimes")
		v.AddConfigPath("/etc/datetimes")
	}

	// Read environment variables, e.g. DATETIMES_LOG_LEVEL
	v.SetEnvPrefix("datetimes")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("locale is required")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

// Location returns the configured time zone
func (c *Config) Location() (*time.Location, error) {
	name := c.TimeZone
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", name, err)
	}
	return loc, nil
}

// GetLogLevel returns the zap level, defaulting to info
func (c *LogConfig) GetLogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		return zapcore.InfoLevel
	}
	return level
}
