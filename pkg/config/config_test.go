package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://www.wikidata.org/w/api.php", cfg.Wikidata.BaseURL)
	assert.Equal(t, "en", cfg.Wikidata.Language)

	assert.Equal(t, 12, cfg.Search.Limit)
	assert.Equal(t, 250, cfg.Search.SettleMillis)
	assert.Equal(t, 3, cfg.Tree.MaxDepth)

	assert.True(t, cfg.CircuitBreaker.Enabled)
	assert.InDelta(t, 0.6, cfg.CircuitBreaker.ReadyToTripRatio, 0.001)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// With no config file and no env overrides, Load and Default agree.
	assert.Equal(t, Default().Search, cfg.Search)
	assert.Equal(t, Default().Tree, cfg.Tree)
	assert.Equal(t, Default().Wikidata.BaseURL, cfg.Wikidata.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WIKIDATA_BASE_URL", "http://localhost:9999/api.php")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api.php", cfg.Wikidata.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}
