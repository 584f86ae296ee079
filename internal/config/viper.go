// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/nabtrade-xero/internal/fileutils"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"
	"fjacquet/nabtrade-xero/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "NABXERO"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Convert struct {
		SignConvention  string `mapstructure:"sign_convention" yaml:"sign_convention"`
		StrictExtension bool   `mapstructure:"strict_extension" yaml:"strict_extension"`
		ContinueOnError bool   `mapstructure:"continue_on_error" yaml:"continue_on_error"`
		BackupSuffix    string `mapstructure:"backup_suffix" yaml:"backup_suffix"`
	} `mapstructure:"convert" yaml:"convert"`

	Report struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"report" yaml:"report"`
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":         "log.level",
	"log-format":        "log.format",
	"delimiter":         "csv.delimiter",
	"sign-convention":   "convert.sign_convention",
	"strict-extension":  "convert.strict_extension",
	"continue-on-error": "convert.continue_on_error",
	"backup-suffix":     "convert.backup_suffix",
	"report":            "report.path",
}

// InitializeConfig loads the configuration. Later sources override earlier ones:
// defaults, the config file, environment variables, then any flag in flags that
// was set on the command line. An empty configFile searches for config.yaml in
// the working directory and in $HOME/.nabtrade-xero; a missing file is fine.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.nabtrade-xero")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unprefixed names kept for .env files shared with other tools
	for key, env := range map[string]string{
		"log.level":     "LOG_LEVEL",
		"log.format":    "LOG_FORMAT",
		"csv.delimiter": "CSV_DELIMITER",
	} {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Command-line flags
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Conversion defaults
	v.SetDefault("convert.sign_convention", string(models.DefaultSignConvention))
	v.SetDefault("convert.strict_extension", false)
	v.SetDefault("convert.continue_on_error", false)
	v.SetDefault("convert.backup_suffix", fileutils.DefaultBackupSuffix)

	// Report defaults
	v.SetDefault("report.path", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if strings.ContainsAny(config.CSV.Delimiter, "\"\r\n") || config.CSV.Delimiter == string(utf8.RuneError) {
		return fmt.Errorf("CSV delimiter cannot be a quote or line break, got: %q", config.CSV.Delimiter)
	}

	// Validate conversion settings
	if _, err := models.ParseSignConvention(config.Convert.SignConvention); err != nil {
		return err
	}
	if config.Convert.BackupSuffix == "" || strings.ContainsAny(config.Convert.BackupSuffix, `/\`) {
		return fmt.Errorf("convert.backup_suffix must be a non-empty file name suffix, got: %q", config.Convert.BackupSuffix)
	}

	// Validate report path
	if config.Report.Path != "" {
		if err := validation.IsValidReportFormat(strings.TrimPrefix(filepath.Ext(config.Report.Path), ".")); err != nil {
			return fmt.Errorf("report.path: %w", err)
		}
	}

	return nil
}

// Delimiter returns the configured CSV delimiter.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// SignConvention returns the configured sign convention. An invalid name,
// which validateConfig rejects, yields the default.
func (c *Config) SignConvention() models.SignConvention {
	convention, err := models.ParseSignConvention(c.Convert.SignConvention)
	if err != nil {
		return models.DefaultSignConvention
	}
	return convention
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// NewLogger builds the application logger described by config.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLoggingFromConfig(config))
}
