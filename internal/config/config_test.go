package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dexview/internal/source"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "RECORD_SOURCE_URL", "SERVER", "CATALOG_ENDPOINT", "FETCH_TIMEOUT",
		"BATCH_CONCURRENCY", "BATCH_RPS", "CORS_ORIGINS", "DEXVIEW_DEBUG",
	} {
		t.Setenv(key, "")
	}
	// keep a stray .env in the package dir from leaking in
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, source.DefaultBaseURL, cfg.SourceURL)
	assert.Equal(t, EndpointFull, cfg.Endpoint)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, source.DefaultConcurrency, cfg.BatchConcurrency)
	assert.Zero(t, cfg.BatchRPS)
	assert.Equal(t, []string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("SERVER", "http://legacy:8000/")
	t.Setenv("CATALOG_ENDPOINT", "simple")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("BATCH_CONCURRENCY", "8")
	t.Setenv("BATCH_RPS", "2.5")
	t.Setenv("DEXVIEW_DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "http://legacy:8000/", cfg.SourceURL)
	assert.Equal(t, EndpointSimple, cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, 2.5, cfg.BatchRPS)
	assert.True(t, cfg.Debug)

	t.Setenv("RECORD_SOURCE_URL", "http://api:8000/")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api:8000/", cfg.SourceURL, "RECORD_SOURCE_URL wins over SERVER")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"endpoint":    {"CATALOG_ENDPOINT", "items"},
		"timeout":     {"FETCH_TIMEOUT", "soon"},
		"concurrency": {"BATCH_CONCURRENCY", "0"},
		"rps":         {"BATCH_RPS", "-1"},
		"not a float": {"BATCH_RPS", "fast"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
