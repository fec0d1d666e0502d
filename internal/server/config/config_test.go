package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenLifetime)
	assert.True(t, c.SeedDemo)
	require.NoError(t, c.Validate())
}

func TestLoad_Flags(t *testing.T) {
	cfg := Load([]string{"-a", ":9090", "-k", "s3cret", "-e", "2", "-admin", "root@example.com", "-demo=false", "-s", "ignored"})

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.False(t, cfg.SeedDemo)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLFileThenFlags(t *testing.T) {
	path := writeFile(t, "server.yaml", `
listen_addr: ":7000"
token_lifetime: 90m
seed_demo: false
google_client_id: client-id
`)

	cfg := Load([]string{"-c", path, "-a", ":7001"})

	assert.Equal(t, ":7001", cfg.ListenAddr)
	assert.Equal(t, 90*time.Minute, cfg.TokenLifetime)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, "client-id", cfg.GoogleClientID)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "server.json", `{"secret_key": "from-file", "token_lifetime": "1h"}`)

	cfg := Load([]string{"-config", path})
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.TokenLifetime)
}

func TestLoad_MalformedFilePanics(t *testing.T) {
	path := writeFile(t, "server.json", `{`)
	assert.Panics(t, func() { Load([]string{"-c", path}) })
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.TokenLifetime = 0
	assert.Error(t, c.Validate())

	c.LoadDefaults()
	c.AdminPassword = ""
	assert.Error(t, c.Validate())
}
