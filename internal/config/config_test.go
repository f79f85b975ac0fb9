package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "")
	t.Setenv("DB_TYPE", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_TYPE", "mongo")
	t.Setenv("TOKEN_TTL", "3600")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	if cfg.DatabaseType != "mongo" {
		t.Errorf("DatabaseType = %q, want mongo", cfg.DatabaseType)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.RateWindow != 30*time.Second {
		t.Errorf("RateWindow = %v, want 30s", cfg.RateWindow)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SES_FROM_NAME=Daycare Office\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	// t.Setenv restores the variable afterwards; godotenv only fills unset keys
	t.Setenv("SES_FROM_NAME", "")
	os.Unsetenv("SES_FROM_NAME")

	cfg := Load()

	if cfg.SESFromName != "Daycare Office" {
		t.Errorf("SESFromName = %q, want value from env file", cfg.SESFromName)
	}
}
