package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kaiwa/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		RequestTimeout:   time.Minute,
		GeminiAPIKey:     "key",
		GeminiModel:      "gemini-2.5-flash",
		VertexAILocation: "asia-northeast1",
		AITimeout:        30 * time.Second,
		AIMaxAttempts:    3,
		AbandonAfter:     24 * time.Hour,
		SweepInterval:    15 * time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = " " }, "DB_PATH cannot be empty"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"zero request timeout", func(c *config.Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"no ai credentials", func(c *config.Config) { c.GeminiAPIKey = ""; c.GoogleProjectID = "" }, "GEMINI_API_KEY"},
		{"empty model", func(c *config.Config) { c.GeminiModel = "" }, "GEMINI_MODEL"},
		{"zero ai timeout", func(c *config.Config) { c.AITimeout = 0 }, "AI_TIMEOUT"},
		{"too many attempts", func(c *config.Config) { c.AIMaxAttempts = 11 }, "AI_MAX_ATTEMPTS"},
		{"zero attempts", func(c *config.Config) { c.AIMaxAttempts = 0 }, "AI_MAX_ATTEMPTS"},
		{"zero abandon age", func(c *config.Config) { c.AbandonAfter = 0 }, "ABANDON_AFTER"},
		{"negative sweep interval", func(c *config.Config) { c.SweepInterval = -time.Second }, "SWEEP_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "GEMINI_MODEL", "VERTEX_AI_LOCATION", "AI_MAX_ATTEMPTS", "AI_TIMEOUT", "SPEECH_ENABLED", "ABANDON_AFTER", "SWEEP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:kaiwa.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "asia-northeast1", cfg.VertexAILocation)
	assert.Equal(t, 3, cfg.AIMaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.AITimeout)
	assert.True(t, cfg.SpeechEnabled)
	assert.Equal(t, 24*time.Hour, cfg.AbandonAfter)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("AI_MAX_ATTEMPTS", "5")
	t.Setenv("AI_TIMEOUT", "10s")
	t.Setenv("SPEECH_ENABLED", "false")
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "kaiwa-prod")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.AIMaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.False(t, cfg.SpeechEnabled)
	assert.True(t, cfg.UseVertexAI())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AI_MAX_ATTEMPTS", "many")
	t.Setenv("AI_TIMEOUT", "soon")
	t.Setenv("LOG_COLORS", "perhaps")

	cfg := config.Load()

	assert.Equal(t, 3, cfg.AIMaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.AITimeout)
	assert.True(t, cfg.LogColors)
}
