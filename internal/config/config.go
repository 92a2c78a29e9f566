package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port     string
	TimeZone string
	LogLevel string

	StorageBackend string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIChatModel  string
	OpenAIImageModel string
	AITimeout        time.Duration

	BackfillSchedule string
	ExplorerTxURL    string
}

// Load reads the environment, optionally seeded from a .env file in the
// working directory, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("AI_HTTP_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("AI_HTTP_TIMEOUT: %w", err)
	}

	c := &Config{
		Port:     getEnv("APP_PORT", "5000"),
		TimeZone: getEnv("TZ", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendPostgres),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "dream_alchemy"),
		DBPort:         getEnv("DB_PORT", "5432"),

		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		AnthropicModel:   os.Getenv("ANTHROPIC_MODEL"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIChatModel:  os.Getenv("OPENAI_CHAT_MODEL"),
		OpenAIImageModel: os.Getenv("OPENAI_IMAGE_MODEL"),
		AITimeout:        timeout,

		BackfillSchedule: lookupEnv("REWARD_BACKFILL_SCHEDULE", "@every 1h"),
		ExplorerTxURL:    getEnv("EXPLORER_TX_URL", "https://testnet.bscscan.com/tx/"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.StorageBackend != BackendPostgres && c.StorageBackend != BackendMemory {
		return errors.New("STORAGE_BACKEND must be one of: postgres, memory")
	}
	if c.StorageBackend == BackendPostgres && (c.DBHost == "" || c.DBName == "") {
		return errors.New("DB_HOST and DB_NAME are required when STORAGE_BACKEND=postgres")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TZ: %w", err)
	}
	if c.AITimeout <= 0 {
		return errors.New("AI_HTTP_TIMEOUT must be positive")
	}
	return nil
}

// DSN is the postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.TimeZone)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupEnv honours a variable that is set but empty.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
