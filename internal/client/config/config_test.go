package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Equal(t, "clipstream.db", cfg.HistoryDBPath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseJson(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	body, err := json.Marshal(map[string]any{
		"server_url":      "https://clipstream.example.com",
		"history_db_path": "/tmp/history.db",
		"request_timeout": "30s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	origArgs := os.Args
	os.Args = []string{"cli", "-c", path}
	defer func() { os.Args = origArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://clipstream.example.com", cfg.ServerURL)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryDBPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	os.Args = []string{"cli", "-a", "http://10.0.0.1:9090", "-t", "5"}
	defer func() { os.Args = origArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://10.0.0.1:9090", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "clipstream.db", cfg.HistoryDBPath)
}
