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
	for _, k := range []string{"PORT", "NAVITIA_BASE_URL", "NAVITIA_COVERAGE", "NAVITIA_TOKEN", "NAVITIA_TIMEOUT", "DEPARTURES_COUNT", "STATION_TIMEZONE", "CORS_ORIGINS", "DELAY_POLICY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, 4934, cfg.Port)
	assert.Equal(t, "https://api.sncf.com/v1", cfg.BaseURL)
	assert.Equal(t, "sncf", cfg.Coverage)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 200, cfg.DeparturesCount)
	assert.Equal(t, "Europe/Paris", cfg.TimeZone)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "timestamps", cfg.DelayPolicy)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NAVITIA_TIMEOUT", "2s")
	t.Setenv("DEPARTURES_COUNT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 200, cfg.DeparturesCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadEnvFilesOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(base, []byte("NAVITIA_COVERAGE=fr-idf\nNAVITIA_TOKEN=base\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("NAVITIA_TOKEN=local\n"), 0o600))
	t.Setenv("NAVITIA_COVERAGE", "")
	t.Setenv("NAVITIA_TOKEN", "")
	os.Unsetenv("NAVITIA_COVERAGE")
	os.Unsetenv("NAVITIA_TOKEN")

	LoadEnvFiles(base, local, filepath.Join(dir, "missing.env"))

	cfg := Load()
	assert.Equal(t, "fr-idf", cfg.Coverage)
	assert.Equal(t, "local", cfg.Token)
}
