package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelnet/mt/rudp"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":30000", cfg.Listen)
	assert.Equal(t, rudp.DefaultConfig().WindowSize, cfg.Conn.WindowSize)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dial: localhost:30001
listen: :40000
log_level: debug
conn:
  window_size: 64
  retransmit_interval: 250ms
  split_timeout: 30s
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:30001", cfg.Dial)
	assert.Equal(t, ":40000", cfg.Listen)
	assert.Equal(t, 64, cfg.Conn.WindowSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Conn.RetransmitInterval)
	assert.Equal(t, 30*time.Second, cfg.Conn.SplitTimeout)
	// Fields not in the file keep their defaults.
	assert.Equal(t, rudp.DefaultConfig().MaxRetransmits, cfg.Conn.MaxRetransmits)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conn: [\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, cfg.Validate(), "no dial address")

	cfg.Dial = "localhost:30001"
	assert.NoError(t, cfg.Validate())

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg.LogLevel = "WARN"
	cfg.Conn.WindowSize = rudp.MaxWindowSize + 1
	assert.Error(t, cfg.Validate())
}
