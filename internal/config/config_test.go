package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kasino.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Shuffle())
	assert.Nil(t, cfg.Seed())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game {
  seed    = 42
  shuffle = false
}

log {
  level = "debug"
}

player "Alice" {}
player "Bob" {
  bot = true
}
player "Carol" {
  bot      = true
  strategy = "trail"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.Seed())
	assert.Equal(t, int64(42), *cfg.Seed())
	assert.False(t, cfg.Shuffle())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, DefaultLogFile, cfg.Log.File)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, cfg.PlayerNames())
	assert.False(t, cfg.Players[0].Bot)
	assert.Equal(t, DefaultStrategy, cfg.Players[1].Strategy)
	assert.Equal(t, "trail", cfg.Players[2].Strategy)
}

func TestLoadEmptyFileAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `game {`))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `game { seed = "soon" }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"one player", func(c *Config) { c.Players = c.Players[:1] }, "player count"},
		{"thirteen players", func(c *Config) {
			for i := range 11 {
				c.Players = append(c.Players, PlayerConfig{Name: string(rune('A' + i))})
			}
		}, "player count"},
		{"duplicate name", func(c *Config) { c.Players[1].Name = c.Players[0].Name }, "duplicate player"},
		{"empty name", func(c *Config) { c.Players[0].Name = "" }, "must not be empty"},
		{"bad strategy", func(c *Config) { c.Players[1].Strategy = "shark" }, "invalid strategy"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
