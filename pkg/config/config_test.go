package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3", cfg.Ollama.DefaultModel)
	assert.Equal(t, 120*time.Second, cfg.Ollama.GenerateTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Places.NominatimURL)
	assert.Equal(t, 30*time.Second, cfg.Places.OverpassTimeout)
	assert.Equal(t, "wanderplan", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OLLAMA_DEFAULT_MODEL", "mistral")
	t.Setenv("OLLAMA_GENERATE_TIMEOUT", "60")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mistral", cfg.Ollama.DefaultModel)
	assert.Equal(t, 60*time.Second, cfg.Ollama.GenerateTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
