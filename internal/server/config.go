package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"

	"doubleklondike/internal/session"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings bounds the session registry and its idle sweep
type GameSettings struct {
	SessionTTLMinutes    int  `hcl:"session_ttl_minutes,optional"`
	SweepIntervalSeconds int  `hcl:"sweep_interval_seconds,optional"`
	MaxSessions          int  `hcl:"max_sessions,optional"`
	ValidateAfterMove    bool `hcl:"validate_after_move,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			SessionTTLMinutes:    60,
			SweepIntervalSeconds: 60,
			MaxSessions:          1000,
			ValidateAfterMove:    false,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Both blocks are optional; a partial file keeps the defaults for
	// whatever it leaves out.
	var raw struct {
		Server *ServerSettings `hcl:"server,block"`
		Game   *GameSettings   `hcl:"game,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if raw.Server != nil {
		config.Server = *raw.Server
	}
	if raw.Game != nil {
		config.Game = *raw.Game
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.SessionTTLMinutes == 0 {
		config.Game.SessionTTLMinutes = defaults.Game.SessionTTLMinutes
	}
	if config.Game.SweepIntervalSeconds == 0 {
		config.Game.SweepIntervalSeconds = defaults.Game.SweepIntervalSeconds
	}
	if config.Game.MaxSessions == 0 {
		config.Game.MaxSessions = defaults.Game.MaxSessions
	}

	return config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if _, err := zerolog.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Server.LogLevel, err)
	}

	if c.Game.SessionTTLMinutes < 1 {
		return fmt.Errorf("session_ttl_minutes must be positive, got %d", c.Game.SessionTTLMinutes)
	}
	if c.Game.SweepIntervalSeconds < 1 {
		return fmt.Errorf("sweep_interval_seconds must be positive, got %d", c.Game.SweepIntervalSeconds)
	}

	return nil
}

// ManagerConfig converts the game settings into session manager limits.
// A negative max_sessions lifts the cap entirely.
func (c *Config) ManagerConfig() session.ManagerConfig {
	maxSessions := c.Game.MaxSessions
	if maxSessions < 0 {
		maxSessions = 0
	}
	return session.ManagerConfig{
		TTL:           time.Duration(c.Game.SessionTTLMinutes) * time.Minute,
		SweepInterval: time.Duration(c.Game.SweepIntervalSeconds) * time.Second,
		MaxSessions:   maxSessions,
	}
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
