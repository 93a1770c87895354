package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	LOG_MODE  string `env:"LOG_MODE"`

	STORE_BACKEND        string `env:"STORE_BACKEND"`
	STORE_FILE_DIR       string `env:"STORE_FILE_DIR"`
	STORE_COLLECTION_KEY string `env:"STORE_COLLECTION_KEY"`
	DB_STRING            string `env:"DB_STRING"`

	KAFKA_BROKERS        string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC          string `env:"KAFKA_TOPIC"`
	KAFKA_COMMANDS_TOPIC string `env:"KAFKA_COMMANDS_TOPIC"`
	KAFKA_GROUP_ID       string `env:"KAFKA_GROUP_ID"`
}

// LoadConfig reads the environment. A .env file in the working directory is
// applied first when present; real environment variables take precedence.
// A missing .env is fine, a malformed one is an error.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		HTTP_PORT:            getenv("HTTP_PORT", "8080"),
		LOG_MODE:             getenv("LOG_MODE", "dev"),
		STORE_BACKEND:        getenv("STORE_BACKEND", BackendFile),
		STORE_FILE_DIR:       getenv("STORE_FILE_DIR", "./data"),
		STORE_COLLECTION_KEY: getenv("STORE_COLLECTION_KEY", "orders"),
		DB_STRING:            os.Getenv("DB_STRING"),
		KAFKA_BROKERS:        os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:          getenv("KAFKA_TOPIC", "order-events"),
		KAFKA_COMMANDS_TOPIC: getenv("KAFKA_COMMANDS_TOPIC", "order-commands"),
		KAFKA_GROUP_ID:       getenv("KAFKA_GROUP_ID", "parcel-orders"),
	}

	switch cfg.STORE_BACKEND {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		if cfg.DB_STRING == "" {
			return nil, errors.New("DB_STRING is required for postgres backend")
		}
	default:
		return nil, errors.New("unknown STORE_BACKEND: " + cfg.STORE_BACKEND)
	}

	return cfg, nil
}

func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
