package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Game.SessionTTLMinutes)
	assert.Equal(t, 60, cfg.Game.SweepIntervalSeconds)
	assert.Equal(t, 1000, cfg.Game.MaxSessions)
	assert.False(t, cfg.Game.ValidateAfterMove)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := writeConfigFile(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

game {
  session_ttl_minutes    = 30
  sweep_interval_seconds = 10
  max_sessions           = 50
  validate_after_move    = true
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Game.SessionTTLMinutes)
	assert.Equal(t, 10, cfg.Game.SweepIntervalSeconds)
	assert.Equal(t, 50, cfg.Game.MaxSessions)
	assert.True(t, cfg.Game.ValidateAfterMove)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server {
  port = 9191
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Game.SessionTTLMinutes)
	assert.Equal(t, 1000, cfg.Game.MaxSessions)
}

func TestLoadConfigBadHCL(t *testing.T) {
	path := writeConfigFile(t, `server { address = `)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoadConfigUnknownAttribute(t *testing.T) {
	path := writeConfigFile(t, `
server {
  addresss = "typo"
}
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid port",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Server.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "zero ttl",
			mutate:  func(c *Config) { c.Game.SessionTTLMinutes = 0 },
			wantErr: "session_ttl_minutes must be positive",
		},
		{
			name:    "zero sweep interval",
			mutate:  func(c *Config) { c.Game.SweepIntervalSeconds = 0 },
			wantErr: "sweep_interval_seconds must be positive",
		},
		{
			name:   "negative max sessions lifts the cap",
			mutate: func(c *Config) { c.Game.MaxSessions = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestManagerConfigConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.SessionTTLMinutes = 15
	cfg.Game.SweepIntervalSeconds = 30
	cfg.Game.MaxSessions = 5

	mc := cfg.ManagerConfig()
	assert.Equal(t, 15*time.Minute, mc.TTL)
	assert.Equal(t, 30*time.Second, mc.SweepInterval)
	assert.Equal(t, 5, mc.MaxSessions)

	cfg.Game.MaxSessions = -1
	assert.Equal(t, 0, cfg.ManagerConfig().MaxSessions, "negative cap becomes unlimited")
}
