package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ekaterinavoj/validity-view/internal/config"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "DATABASE_URL", "PORT", "IMPORT_MIN_SIMILARITY", "IMPORT_AUTO_MATCH", "IMPORT_CHUNK_SIZE", "IMPORT_SESSION_TTL")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Import.ChunkSize != 50 || cfg.Import.SessionTTL != time.Hour {
		t.Fatalf("unexpected import defaults: %+v", cfg.Import)
	}

	settings, err := cfg.Import.Settings()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if settings != domain.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", settings)
	}
	if err := cfg.RequireDatabase(); err == nil {
		t.Fatal("expected missing DATABASE_URL error")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "DATABASE_URL=postgres://localhost/trainings\nIMPORT_AUTO_MATCH=85\nIMPORT_SESSION_TTL=30m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	unsetEnv(t, "DATABASE_URL", "IMPORT_MIN_SIMILARITY", "IMPORT_AUTO_MATCH", "IMPORT_SESSION_TTL")

	cfg, err := config.Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/trainings" {
		t.Fatalf("unexpected database url: %s", cfg.DatabaseURL)
	}
	if cfg.Import.AutoMatch != 85 || cfg.Import.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected import options: %+v", cfg.Import)
	}
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	t.Setenv("IMPORT_MIN_SIMILARITY", "95")
	t.Setenv("IMPORT_AUTO_MATCH", "90")

	_, err := config.Load()
	if !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}
