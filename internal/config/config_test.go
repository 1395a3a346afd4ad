package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir()+"/missing.yaml")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gemini-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListingTTL)
	assert.Equal(t, "file://migrations", cfg.Database.MigrationsURL)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir()+"/missing.yaml")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Database: "tourism", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/tourism?sslmode=disable", c.DSN())
}
