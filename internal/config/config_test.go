package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.OracleModel != "gemini-2.5-flash" {
		t.Errorf("OracleModel = %q", cfg.OracleModel)
	}
	if cfg.OracleTimeout != 45*time.Second {
		t.Errorf("OracleTimeout = %v", cfg.OracleTimeout)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.TurnWorkers != 4 || cfg.TurnQueueSize != 64 {
		t.Errorf("turn defaults = %d/%d", cfg.TurnWorkers, cfg.TurnQueueSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("AUTHORIZED_USER_ID", "1234567890")
	t.Setenv("ORACLE_TIMEOUT", "10s")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("TURN_WORKERS", "2")

	cfg := Load()

	if cfg.TelegramToken != "tok" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
	if cfg.AuthorizedUserID != 1234567890 {
		t.Errorf("AuthorizedUserID = %d", cfg.AuthorizedUserID)
	}
	if cfg.OracleTimeout != 10*time.Second {
		t.Errorf("OracleTimeout = %v", cfg.OracleTimeout)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.TurnWorkers != 2 {
		t.Errorf("TurnWorkers = %d", cfg.TurnWorkers)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		TelegramToken:    "tok",
		AuthorizedUserID: 1,
		GeminiAPIKey:     "key",
		DataBackend:      "memory",
		OracleTimeout:    time.Second,
		TurnWorkers:      1,
		TurnQueueSize:    1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missing := &Config{DataBackend: "memory", OracleTimeout: time.Second, TurnWorkers: 1, TurnQueueSize: 1}
	err := missing.Validate()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	for _, want := range []string{"TELEGRAM_TOKEN", "AUTHORIZED_USER_ID", "GEMINI_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	badBackend := *valid
	badBackend.DataBackend = "mongo"
	if err := badBackend.Validate(); err == nil || !strings.Contains(err.Error(), "invalid data backend") {
		t.Errorf("bad backend error = %v", err)
	}

	bqNoProject := *valid
	bqNoProject.DataBackend = "bigquery"
	if err := bqNoProject.Validate(); err == nil || !strings.Contains(err.Error(), "BIGQUERY_PROJECT_ID") {
		t.Errorf("bigquery without project error = %v", err)
	}
}
