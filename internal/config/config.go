// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Narrative backends.
const (
	BackendNone   = "none"
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Endpoint is the S3-compatible endpoint of the account.
func (r R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

type Config struct {
	DBURL       string
	RabbitMQURL string
	R2          R2Config

	NarrativeBackend string
	NarrativeTimeout time.Duration
	GoogleAPIKey     string
	GeminiModel      string
	OllamaURL        string
	OllamaModel      string

	TaxonomyFile string
	Locale       string
	Port         string
	LogLevel     slog.Level
	Workers      int
}

// FromEnv reads the configuration, applying defaults for optional values. Malformed values
// are errors; missing required values are reported by the Require methods.
func FromEnv() (Config, error) {
	cfg := Config{
		DBURL:       os.Getenv("DB_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		R2: R2Config{
			AccountID: firstEnv("R2_ACCOUNT_ID", "R2_ACCCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},
		NarrativeBackend: strings.ToLower(envOr("NARRATIVE_BACKEND", BackendNone)),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		OllamaURL:        os.Getenv("OLLAMA_URL"),
		OllamaModel:      os.Getenv("OLLAMA_MODEL"),
		TaxonomyFile:     os.Getenv("TAXONOMY_FILE"),
		Locale:           envOr("LOCALE", "pt-BR"),
		Port:             envOr("PORT", "8080"),
	}

	switch cfg.NarrativeBackend {
	case BackendNone, BackendOllama, BackendGemini:
	default:
		return Config{}, fmt.Errorf("invalid NARRATIVE_BACKEND %q", cfg.NarrativeBackend)
	}

	timeout, err := time.ParseDuration(envOr("NARRATIVE_TIMEOUT", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid NARRATIVE_TIMEOUT: %w", err)
	}
	cfg.NarrativeTimeout = timeout

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	workers, err := strconv.Atoi(envOr("WORKERS", "3"))
	if err != nil || workers < 1 {
		return Config{}, fmt.Errorf("invalid WORKERS %q", os.Getenv("WORKERS"))
	}
	cfg.Workers = workers

	return cfg, nil
}

// RequireWorker checks everything the queue worker needs.
func (c Config) RequireWorker() error {
	return errors.Join(
		required("DB_URL", c.DBURL),
		required("RABBITMQ_URL", c.RabbitMQURL),
		required("R2_ACCOUNT_ID", c.R2.AccountID),
		required("R2_BUCKET", c.R2.Bucket),
		required("R2_ACCESS_KEY", c.R2.AccessKey),
		required("R2_SECRET_KEY", c.R2.SecretKey),
		c.RequireNarrative(),
	)
}

// RequireNarrative checks the settings of the selected narrative backend.
func (c Config) RequireNarrative() error {
	if c.NarrativeBackend == BackendGemini {
		return required("GOOGLE_API_KEY", c.GoogleAPIKey)
	}
	return nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("empty %s in environment", name)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
