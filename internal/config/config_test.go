package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"TZ", "LOG_LEVEL", "DB_HOST", "DB_NAME", "REWARD_BACKFILL_SCHEDULE"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("AI_HTTP_TIMEOUT", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, BackendPostgres, c.StorageBackend)
	assert.Equal(t, 120*time.Second, c.AITimeout)
	assert.Contains(t, c.DSN(), "dbname=")
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AI_HTTP_TIMEOUT", "15s")
	t.Setenv("REWARD_BACKFILL_SCHEDULE", "")
	t.Setenv("OPENAI_API_KEY", "sk-x")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, c.StorageBackend)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 15*time.Second, c.AITimeout)
	assert.Equal(t, "", c.BackfillSchedule)
	assert.Equal(t, "sk-x", c.OpenAIAPIKey)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_HTTP_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "AI_HTTP_TIMEOUT")
}

func TestValidate(t *testing.T) {
	valid := Config{
		StorageBackend: BackendMemory,
		LogLevel:       "debug",
		TimeZone:       "UTC",
		AITimeout:      time.Second,
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"backend":  func(c *Config) { c.StorageBackend = "sqlite" },
		"level":    func(c *Config) { c.LogLevel = "chatty" },
		"zone":     func(c *Config) { c.TimeZone = "Mars/Olympus" },
		"timeout":  func(c *Config) { c.AITimeout = 0 },
		"postgres": func(c *Config) { c.StorageBackend = BackendPostgres },
	}
	for name, mutate := range cases {
		c := valid
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
