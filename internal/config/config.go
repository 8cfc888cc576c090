package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/joho/godotenv"
)

var DefaultEnvFiles = []string{".env", ".env.local"}

type ImportOptions struct {
	MinSimilarity int           `env:"IMPORT_MIN_SIMILARITY" envDefault:"60"`
	AutoMatch     int           `env:"IMPORT_AUTO_MATCH" envDefault:"90"`
	ChunkSize     int           `env:"IMPORT_CHUNK_SIZE" envDefault:"50"`
	SessionTTL    time.Duration `env:"IMPORT_SESSION_TTL" envDefault:"1h"`
	MaxUpload     string        `env:"IMPORT_MAX_UPLOAD" envDefault:"10M"`
}

func (o ImportOptions) Settings() (domain.Settings, error) {
	return domain.NewSettings(o.MinSimilarity, o.AutoMatch)
}

type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	Import ImportOptions
}

// LoadEnv loads the env files that exist and returns how many were found.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the optional env files and parses the environment.
func Load(envFiles ...string) (Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Import.Settings(); err != nil {
		return Config{}, err
	}
	if cfg.Import.ChunkSize <= 0 {
		return Config{}, fmt.Errorf("IMPORT_CHUNK_SIZE must be positive, got %d", cfg.Import.ChunkSize)
	}
	return cfg, nil
}

// RequireDatabase fails when DATABASE_URL is not configured.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}
