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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "12h30m00s", cfg.Region.RA)
	assert.Equal(t, "+12d00m00s", cfg.Region.Dec)
	assert.Equal(t, 10.0, cfg.Region.RadiusDeg)
	assert.Equal(t, "J2000", cfg.Region.Equinox)
	assert.Equal(t, 2000, cfg.Region.MaxResults)
	assert.Equal(t, 0.02, cfg.Cluster.Eps)
	assert.Equal(t, 10, cfg.Cluster.MinSamples)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyclust.yaml")
	content := `
catalog:
  base_url: http://localhost:9000
  timeout: 5s
region:
  radius_deg: 2.5
  max_results: 100
cluster:
  eps: 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 2.5, cfg.Region.RadiusDeg)
	assert.Equal(t, 100, cfg.Region.MaxResults)
	assert.Equal(t, 0.01, cfg.Cluster.Eps)
	// Untouched sections keep their defaults.
	assert.Equal(t, "12h30m00s", cfg.Region.RA)
	assert.Equal(t, 10, cfg.Cluster.MinSamples)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyclust.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  eps: 0.01\n"), 0644))

	t.Setenv("SKYCLUST_CLUSTER_EPS", "0.05")
	t.Setenv("SKYCLUST_REGION_TABLE", "qsos")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Cluster.Eps)
	assert.Equal(t, "qsos", cfg.Region.Table)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Cluster.Eps)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty catalog URL", func(c *Config) { c.Catalog.BaseURL = "" }},
		{"non-positive radius", func(c *Config) { c.Region.RadiusDeg = 0 }},
		{"non-positive eps", func(c *Config) { c.Cluster.Eps = -1 }},
		{"zero min samples", func(c *Config) { c.Cluster.MinSamples = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
