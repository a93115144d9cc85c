package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joeshaw/envdecode"

	"github.com/lox/cubebluff/internal/room"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Rooms  RoomSettings   `hcl:"rooms,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomSettings contains room-store configuration.
type RoomSettings struct {
	DefaultTokens int    `hcl:"default_tokens,optional"`
	IdleTimeout   string `hcl:"idle_timeout,optional"` // Go duration string
}

// envOverrides are applied on top of whatever the config file said, so
// deployments can tweak a shared file per instance.
type envOverrides struct {
	Address  string `env:"CUBEBLUFF_ADDR"`
	Port     int    `env:"CUBEBLUFF_PORT"`
	LogLevel string `env:"CUBEBLUFF_LOG_LEVEL"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Rooms: RoomSettings{
			DefaultTokens: 5,
			IdleTimeout:   "2h",
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist, then applies env overrides.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filename); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}

		var loaded Config
		if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
		config = &loaded

		if config.Server.Address == "" {
			config.Server.Address = "localhost"
		}
		if config.Server.Port == 0 {
			config.Server.Port = 8080
		}
		if config.Server.LogLevel == "" {
			config.Server.LogLevel = "info"
		}
		if config.Rooms.DefaultTokens == 0 {
			config.Rooms.DefaultTokens = 5
		}
		if config.Rooms.IdleTimeout == "" {
			config.Rooms.IdleTimeout = "2h"
		}
	}

	var env envOverrides
	if err := envdecode.Decode(&env); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.Address != "" {
		config.Server.Address = env.Address
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		config.Server.LogLevel = env.LogLevel
	}

	return config, config.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if !room.ValidTokens(c.Rooms.DefaultTokens) {
		return fmt.Errorf("invalid default_tokens: %d (valid: 3, 5, 7, 10)", c.Rooms.DefaultTokens)
	}
	if _, err := time.ParseDuration(c.Rooms.IdleTimeout); err != nil {
		return fmt.Errorf("invalid idle_timeout: %w", err)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns the parsed room idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Rooms.IdleTimeout)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}
