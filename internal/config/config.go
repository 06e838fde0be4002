package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the bot needs at startup. Values come from the
// environment; a .env file is loaded by main before Load runs.
type Config struct {
	// Chat transport
	TelegramToken    string
	AuthorizedUserID int64

	// Oracle
	GeminiAPIKey  string
	OracleModel   string
	OracleTimeout time.Duration

	// Record store
	DataBackend      string
	SQLiteDBPath     string
	BigQueryProject  string
	BigQueryDataset  string

	// Statement archive (optional)
	StatementArchiveBucket string

	// Turn processing
	TurnWorkers   int
	TurnQueueSize int
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		TelegramToken:    getEnv("TELEGRAM_TOKEN", ""),
		AuthorizedUserID: getEnvInt64("AUTHORIZED_USER_ID", 0),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		OracleModel:   getEnv("ORACLE_MODEL", "gemini-2.5-flash"),
		OracleTimeout: getEnvDuration("ORACLE_TIMEOUT", 45*time.Second),

		DataBackend:     getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/budgetbuddy.db"),
		BigQueryProject: getEnv("BIGQUERY_PROJECT_ID", ""),
		BigQueryDataset: getEnv("BIGQUERY_DATASET", "finance"),

		StatementArchiveBucket: getEnv("STATEMENT_ARCHIVE_BUCKET", ""),

		TurnWorkers:   getEnvInt("TURN_WORKERS", 4),
		TurnQueueSize: getEnvInt("TURN_QUEUE_SIZE", 64),
	}
}

// Validate checks the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errs []string

	if c.TelegramToken == "" {
		errs = append(errs, "TELEGRAM_TOKEN is required")
	}
	if c.AuthorizedUserID == 0 {
		errs = append(errs, "AUTHORIZED_USER_ID is required")
	}
	if c.GeminiAPIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required")
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	case "bigquery":
		if c.BigQueryProject == "" {
			errs = append(errs, "BIGQUERY_PROJECT_ID is required when using the bigquery backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend %q: must be one of [memory sqlite bigquery]", c.DataBackend))
	}

	if c.OracleTimeout <= 0 {
		errs = append(errs, "ORACLE_TIMEOUT must be positive")
	}
	if c.TurnWorkers < 1 {
		errs = append(errs, "TURN_WORKERS must be at least 1")
	}
	if c.TurnQueueSize < 1 {
		errs = append(errs, "TURN_QUEUE_SIZE must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
