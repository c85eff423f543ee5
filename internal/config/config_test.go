package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sumero.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "db_path: /var/lib/sumero/journal.db\nhttp_addr: 127.0.0.1:9090\njournal_enabled: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/sumero/journal.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
	assert.False(t, cfg.JournalEnabled)
	assert.Equal(t, ":50051", cfg.GRPCAddr, "unset keys keep defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "http_addr: 127.0.0.1:9090\n")
	t.Setenv("SUMERO_HTTP_ADDR", ":7070")
	t.Setenv("SUMERO_JOURNAL_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.False(t, cfg.JournalEnabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no listeners", func(c *Config) { c.HTTPAddr, c.GRPCAddr = "", "" }, true},
		{"grpc only", func(c *Config) { c.HTTPAddr = "" }, false},
		{"journal without db", func(c *Config) { c.DBPath = "" }, true},
		{"no db when journal off", func(c *Config) { c.DBPath, c.JournalEnabled = "", false }, false},
		{"bad gin mode", func(c *Config) { c.GinMode = "verbose" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "gin_mode: loud\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "gin_mode")
}
