package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the schoolcomp server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// CORS holds the cross-origin policy applied to every route.
	CORS *CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CORSConfig holds the cross-origin policy.
// The portal frontend is served from a different origin, so the default
// policy allows everything, including credentials.
type CORSConfig struct {
	// AllowAllOrigins reflects any request origin back in the preflight response.
	AllowAllOrigins bool `yaml:"allow_all_origins" mapstructure:"allow_all_origins"`
	// AllowCredentials indicates whether cookies may be sent cross-origin.
	AllowCredentials bool `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	// MaxAgeSeconds is the preflight cache duration in seconds.
	MaxAgeSeconds int `yaml:"max_age_seconds" mapstructure:"max_age_seconds"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// If no config file is found, defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("SCHOOLCOMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.schoolcomp")
		v.AddConfigPath("/etc/schoolcomp")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the SCHOOLCOMP_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")

	// Database defaults
	v.SetDefault("database.path", "./data/schoolcomp.db")

	// CORS defaults mirror the portal's blanket-permissive policy.
	v.SetDefault("cors.allow_all_origins", true)
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age_seconds", 3600)
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}
