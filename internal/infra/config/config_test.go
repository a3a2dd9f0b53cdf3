package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "memory", cfg.Tiles.Storage.Driver)
	require.Equal(t, "America/New_York", cfg.Solunar.Timezone)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
http:
  address: ":9090"
solunar:
  latitude: 44.97
  longitude: -93.26
  timezone: America/Chicago
tiles:
  retention: 48h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.InDelta(t, 44.97, cfg.Solunar.Latitude, 1e-9)
	require.Equal(t, "America/Chicago", cfg.Solunar.Timezone)
	require.Equal(t, 48*time.Hour, cfg.Tiles.Retention)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "latitude out of range", mutate: func(c *Config) { c.Solunar.Latitude = 91 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Solunar.Timezone = "Mars/Olympus" }},
		{name: "unknown storage driver", mutate: func(c *Config) { c.Tiles.Storage.Driver = "ftp" }},
		{name: "r2 without endpoint", mutate: func(c *Config) { c.Tiles.Storage.Driver = "r2" }},
		{name: "valkey without addr", mutate: func(c *Config) { c.Tiles.Valkey.Enabled = true }},
		{name: "template without y", mutate: func(c *Config) { c.Tiles.URLTemplate = "https://tiles.example/{z}/{x}.png" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestMissingAccessTokenDisablesDownloads(t *testing.T) {
	cfg := defaultConfig()
	cfg.Tiles.AccessToken = ""
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.Tiles.DownloadsEnabled())

	cfg.Tiles.AccessToken = "pk.test"
	require.True(t, cfg.Tiles.DownloadsEnabled())

	cfg.Tiles.AccessToken = ""
	cfg.Tiles.URLTemplate = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	require.True(t, cfg.Tiles.DownloadsEnabled())
}
