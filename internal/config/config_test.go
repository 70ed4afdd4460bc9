package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.Addr)
	assert.Equal(t, "MXN", cfg.Currency)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "database/app.db", cfg.Database.Path)
	assert.Equal(t, "https://api.wise.com", cfg.Wise.BaseURL)
	assert.Equal(t, 10, cfg.Wise.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CENTAVO_CURRENCY", "EUR")
	t.Setenv("CENTAVO_TIMEZONE", "Europe/Madrid")
	t.Setenv("CENTAVO_WISE_APIKEY", "test-key")
	t.Setenv("CENTAVO_DB_DRIVER", "postgres")

	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "Europe/Madrid", cfg.Timezone)
	assert.Equal(t, "test-key", cfg.Wise.APIKey)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}
