package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

const (
	// DefaultMaxBodyBytes caps HTTP request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultListenAddr is the default HTTP API listen address.
	DefaultListenAddr = ":8080"
)

// Config holds all configuration for safemarkup.
type Config struct {
	Escape  EscapeConfig  `mapstructure:"escape"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`
}

// EscapeConfig selects escaping behaviour for the CLI, API and MCP server.
type EscapeConfig struct {
	// Apostrophe is one of hex, named, decimal.
	Apostrophe string `mapstructure:"apostrophe"`
	// Strict rejects control characters; false selects silent escaping.
	Strict bool `mapstructure:"strict"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr   string `mapstructure:"listen_addr"`
	AuthToken    string `mapstructure:"auth_token"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// String returns a safe representation of APIConfig with the token masked.
func (c APIConfig) String() string {
	return fmt.Sprintf("APIConfig{ListenAddr:%s, AuthToken:%s, MaxBodyBytes:%d}",
		c.ListenAddr, maskToken(c.AuthToken), c.MaxBodyBytes)
}

// maskToken shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskToken(token string) string {
	const visible = 4
	if token == "" {
		return ""
	}
	if len(token) <= visible*2 {
		return "***"
	}
	return token[:visible] + "****" + token[len(token)-visible:]
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("escape.apostrophe", markup.ApostropheHex.String())
	v.SetDefault("escape.strict", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", DefaultListenAddr)
	v.SetDefault("api.auth_token", "")
	v.SetDefault("api.max_body_bytes", DefaultMaxBodyBytes)

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".safemarkup"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("SAFEMARKUP")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("escape.apostrophe", "SAFEMARKUP_ESCAPE_APOSTROPHE")
	_ = v.BindEnv("escape.strict", "SAFEMARKUP_ESCAPE_STRICT")
	_ = v.BindEnv("logging.level", "SAFEMARKUP_LOGGING_LEVEL")
	_ = v.BindEnv("api.listen_addr", "SAFEMARKUP_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "SAFEMARKUP_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK: use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if _, err := markup.ParseApostrophe(c.Escape.Apostrophe); err != nil {
		return fmt.Errorf("escape.apostrophe: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("api.max_body_bytes must be greater than 0")
	}
	return nil
}

// Escaper builds the escaper described by the escape section.
func (c *Config) Escaper() (*markup.Escaper, error) {
	apos, err := markup.ParseApostrophe(c.Escape.Apostrophe)
	if err != nil {
		return nil, fmt.Errorf("escape.apostrophe: %w", err)
	}
	return markup.NewEscaper(markup.WithApostrophe(apos)), nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
