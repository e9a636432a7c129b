package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"cc_regexp_main"}, cfg.Analysis.EntryRecordTypes)
	assert.True(t, cfg.Loader.FilterExpired)
	assert.Equal(t, 25.0, cfg.Risk.Critical)
	assert.NotEmpty(t, cfg.Analysis.SubtypeRules)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
loader:
  max_records: 500
  filter_expired: false
risk_weights:
  critical: 50
redis:
  addr: localhost:6379
  ttl_hours: 24
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500, cfg.Loader.MaxRecords)
	assert.False(t, cfg.Loader.FilterExpired)
	assert.Equal(t, 50.0, cfg.Risk.Critical)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
