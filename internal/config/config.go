package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	DBPath         string
	LogLevel       string
	LogColors      bool
	RequestTimeout time.Duration

	GeminiAPIKey     string
	GeminiModel      string
	GoogleProjectID  string
	VertexAILocation string
	AITimeout        time.Duration
	AIMaxAttempts    int

	SpeechEnabled   bool
	CredentialsFile string
	CredentialsJSON string

	AbandonAfter  time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:kaiwa.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		LogColors:        envBoolOr("LOG_COLORS", true),
		RequestTimeout:   envDurationOr("REQUEST_TIMEOUT", 60*time.Second),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GoogleProjectID:  os.Getenv("GOOGLE_CLOUD_PROJECT_ID"),
		VertexAILocation: envOr("VERTEX_AI_LOCATION", "asia-northeast1"),
		AITimeout:        envDurationOr("AI_TIMEOUT", 45*time.Second),
		AIMaxAttempts:    envIntOr("AI_MAX_ATTEMPTS", 3),
		SpeechEnabled:    envBoolOr("SPEECH_ENABLED", true),
		CredentialsFile:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsJSON:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		AbandonAfter:     envDurationOr("ABANDON_AFTER", 24*time.Hour),
		SweepInterval:    envDurationOr("SWEEP_INTERVAL", 15*time.Minute),
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.GeminiAPIKey == "" && c.GoogleProjectID == "" {
		return fmt.Errorf("either GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT_ID must be set")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.AIMaxAttempts < 1 || c.AIMaxAttempts > 10 {
		return fmt.Errorf("AI_MAX_ATTEMPTS must be between 1 and 10, got %d", c.AIMaxAttempts)
	}
	if c.AbandonAfter <= 0 {
		return fmt.Errorf("ABANDON_AFTER must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	return nil
}

// UseVertexAI reports whether the generative model is reached through Vertex AI
// rather than the Gemini API.
func (c Config) UseVertexAI() bool {
	return c.GeminiAPIKey == "" && c.GoogleProjectID != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
