package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := `
server:
  host: 10.0.0.5
  port: 6380
pool:
  initial_size: 2
  max_size: 16
  dial_timeout: 2s
  read_timeout: 1s
checkpoint:
  path: /tmp/positions.yaml
`
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.5:6380", cfg.Addr())
	assert.Equal(t, 2, cfg.Pool.InitialSize)
	assert.Equal(t, 16, cfg.Pool.MaxSize)
	assert.Equal(t, 2*time.Second, cfg.Pool.DialTimeout.Std())
	assert.Equal(t, time.Second, cfg.Pool.ReadTimeout.Std())
	assert.Equal(t, "/tmp/positions.yaml", cfg.Checkpoint.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:6379", cfg.Addr())
	assert.NotZero(t, cfg.Pool.MaxSize)
}
