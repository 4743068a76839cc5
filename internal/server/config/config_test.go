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

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, time.Hour, cfg.UploadURLValidityDuration)
	assert.Equal(t, 60*time.Minute, cfg.AccessTokenValidityDuration)
	assert.NotEmpty(t, cfg.S3Bucket)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseJsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	jc := map[string]any{
		"endpoint_addr_http":              ":9090",
		"database_dsn":                    "postgres://x",
		"secret_key":                      "k",
		"access_token_validity_duration":  "30m",
		"refresh_token_validity_duration": "24h",
		"upload_url_validity_duration":    "1h",
		"s3_access_key":                   "ak",
		"s3_secret_key":                   "sk",
		"s3_bucket":                       "b",
		"s3_region":                       "eu-west-1",
		"s3_base_endpoint":                "http://minio:9000",
	}
	b, err := json.Marshal(jc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, time.Hour, cfg.UploadURLValidityDuration)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
}

func TestParseFlagsOverride(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":7070", "-b", "videos", "-w", "30"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "videos", cfg.S3Bucket)
	assert.Equal(t, 30*time.Minute, cfg.UploadURLValidityDuration)
}
