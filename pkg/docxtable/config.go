package docxtable

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config contains all configuration options for docxtable
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// LogFormat selects the log formatter (text, json)
	LogFormat string
	// DefaultTableStyle is reported by tables without an explicit style when
	// the document declares no default table style
	DefaultTableStyle string
	// DefaultTextWidth is the width new tables are spread across when the
	// document has no page layout
	DefaultTextWidth Length
}

// EnvPrefix is the prefix of environment variables read by ConfigFromEnvironment
const EnvPrefix = "DOCXTABLE"

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	// Initialize global config from environment on first use
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		DefaultTableStyle: "TableNormal",
		DefaultTextWidth:  Inches(6),
	}
}

func newViper() *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("default_table_style", defaults.DefaultTableStyle)
	v.SetDefault("default_text_width", int64(defaults.DefaultTextWidth))
	return v
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		LogLevel:          strings.ToLower(v.GetString("log_level")),
		LogFormat:         strings.ToLower(v.GetString("log_format")),
		DefaultTableStyle: v.GetString("default_table_style"),
		DefaultTextWidth:  Length(v.GetInt64("default_text_width")),
	}
}

// ConfigFromEnvironment creates a configuration from environment variables:
// DOCXTABLE_LOG_LEVEL, DOCXTABLE_LOG_FORMAT, DOCXTABLE_DEFAULT_TABLE_STYLE and
// DOCXTABLE_DEFAULT_TEXT_WIDTH (EMU).
func ConfigFromEnvironment() *Config {
	return configFromViper(newViper())
}

// LoadConfigFile reads a YAML, TOML or JSON config file. Environment
// variables take precedence over values from the file.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config := configFromViper(v)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	// Create a copy of the overrides
	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.LogFormat == "" {
		config.LogFormat = defaults.LogFormat
	}
	if config.DefaultTableStyle == "" {
		config.DefaultTableStyle = defaults.DefaultTableStyle
	}
	if config.DefaultTextWidth == 0 {
		config.DefaultTextWidth = defaults.DefaultTextWidth
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("invalid log format: " + c.LogFormat)
	}

	if c.DefaultTableStyle == "" {
		return errors.New("default table style cannot be empty")
	}

	if c.DefaultTextWidth <= 0 {
		return errors.New("default text width must be positive")
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}
