// Package config loads service settings from defaults, an optional YAML
// file and SUMERO_* environment variables, in increasing precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SUMERO_HTTP_ADDR.
const EnvPrefix = "SUMERO"

// Config holds service settings.
type Config struct {
	DBPath         string `mapstructure:"db_path" yaml:"db_path"`
	HTTPAddr       string `mapstructure:"http_addr" yaml:"http_addr"`
	GRPCAddr       string `mapstructure:"grpc_addr" yaml:"grpc_addr"`
	JournalEnabled bool   `mapstructure:"journal_enabled" yaml:"journal_enabled"`
	GinMode        string `mapstructure:"gin_mode" yaml:"gin_mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:         "sumero.db",
		HTTPAddr:       ":8080",
		GRPCAddr:       ":50051",
		JournalEnabled: true,
		GinMode:        "release",
	}
}

// Load reads path if non-empty and applies environment overrides. A missing
// file is an error when a path was given explicitly.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("http_addr", def.HTTPAddr)
	v.SetDefault("grpc_addr", def.GRPCAddr)
	v.SetDefault("journal_enabled", def.JournalEnabled)
	v.SetDefault("gin_mode", def.GinMode)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		return fmt.Errorf("config: at least one of http_addr, grpc_addr is required")
	}
	if c.JournalEnabled && c.DBPath == "" {
		return fmt.Errorf("config: db_path is required when journal_enabled is true")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: gin_mode %q must be debug, release or test", c.GinMode)
	}
	return nil
}
