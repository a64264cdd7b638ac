package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is read from the environment by LoadConfig.
type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8082"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"password"`
	DBName     string `envconfig:"DB_NAME" default:"restaurant"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	Storage    string `envconfig:"STORAGE" default:"postgres"`

	KafkaHost              string `envconfig:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"restaurant.notifications"`

	LLMModel   string `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	LLMToken   string `envconfig:"LLM_TOKEN"`
	LLMBaseURL string `envconfig:"LLM_BASE_URL"`

	CacheTTL             time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	RequestReminderAfter time.Duration `envconfig:"REQUEST_REMINDER_AFTER" default:"5m"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads an optional .env file, then the environment. Values already set in
// the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage != StorageMemory && cfg.Storage != StoragePostgres {
		return Config{}, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage)
	}
	return cfg, nil
}

// ServerDSN points at the maintenance database used to create DBName.
func (c Config) ServerDSN() string {
	return c.dsn("postgres")
}

// DatabaseDSN points at the service database.
func (c Config) DatabaseDSN() string {
	return c.dsn(c.DBName)
}

func (c Config) dsn(database string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, database, c.DBSslMode)
}

// SlogLevel parses LOG_LEVEL, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
