package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.HTTP.Port)
	assert.Equal(t, config.CatalogSourceJSON, cfg.Catalog.Source)
	assert.Equal(t, config.AgentProviderWebhook, cfg.Agent.Provider)
	assert.Equal(t, 90*time.Second, cfg.Agent.Timeout)
	assert.Equal(t, 3, cfg.TryOn.MaxRetries)
	assert.Equal(t, time.Duration(0), cfg.TryOn.RetryBackoff)
	assert.Equal(t, 120*time.Second, cfg.TryOn.Timeout)
	assert.Equal(t, config.UploaderImgbb, cfg.Upload.Provider)
	assert.Equal(t, 600, cfg.Upload.ImgbbExpiration)
	assert.Empty(t, cfg.TryOn.APIKeys)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TRYON_API_KEYS", " SG_a, ,SG_b,SG_c ")
	t.Setenv("TRYON_RETRY_BACKOFF", "250ms")
	t.Setenv("AGENT_TIMEOUT", "30")
	t.Setenv("AGENT_PROVIDER", "Perplexity")
	t.Setenv("GCS_PUBLIC_READ", "true")
	t.Setenv("AGENT_MEMO_MAX_ENTRIES", "-1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, []string{"SG_a", "SG_b", "SG_c"}, cfg.TryOn.APIKeys)
	assert.Equal(t, 250*time.Millisecond, cfg.TryOn.RetryBackoff)
	assert.Equal(t, 30*time.Second, cfg.Agent.Timeout, "un entero se interpreta en segundos")
	assert.Equal(t, config.AgentProviderPerplexity, cfg.Agent.Provider)
	assert.True(t, cfg.Upload.GCSPublicRead)
	assert.Equal(t, -1, cfg.Agent.MemoMaxEntries)
}

func TestLoad_ProveedorInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_SOURCE", "redis")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/shop?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
