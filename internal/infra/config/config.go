// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup;
// with no provider key the AI endpoint answers with a placeholder reply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matiasleandrokruk/promptrelay/internal/infra/llm"
)

// Config holds runtime configuration for promptrelay. Built once at startup.
type Config struct {
	// HTTP
	Host string // HOST, default "0.0.0.0"
	Port int    // PORT, default 8080

	// LLM
	OpenAIKey       string        // OPENAI_API_KEY
	GroqKey         string        // GROQ_API_KEY
	OpenAIModel     string        // OPENAI_MODEL, default "gpt-4o-mini"
	GroqModel       string        // GROQ_MODEL, default "gemma2-9b-it"
	OpenAIBaseURL   string        // OPENAI_BASE_URL
	GroqBaseURL     string        // GROQ_BASE_URL
	ProviderTimeout time.Duration // PROVIDER_TIMEOUT, default 30s

	// Edge
	RateLimitMax       int           // RATE_LIMIT_MAX, default 60
	RateLimitWindow    time.Duration // RATE_LIMIT_WINDOW, default 1m
	CORSAllowedOrigins []string      // CORS_ALLOWED_ORIGINS, default "*"
	StaticDir          string        // STATIC_DIR: empty disables static serving

	// Content / storage / auth
	QuotesFile    string // QUOTES_FILE: empty uses the built-in pool
	AuditDBPath   string // AUDIT_DB_PATH: empty disables the usage log
	AuthJWTSecret string // AUTH_JWT_SECRET: empty leaves /api/ai public
}

const (
	envKeyHost               = "HOST"
	envKeyPort               = "PORT"
	envKeyOpenAIKey          = "OPENAI_API_KEY"
	envKeyGroqKey            = "GROQ_API_KEY"
	envKeyOpenAIModel        = "OPENAI_MODEL"
	envKeyGroqModel          = "GROQ_MODEL"
	envKeyOpenAIBaseURL      = "OPENAI_BASE_URL"
	envKeyGroqBaseURL        = "GROQ_BASE_URL"
	envKeyProviderTimeout    = "PROVIDER_TIMEOUT"
	envKeyRateLimitMax       = "RATE_LIMIT_MAX"
	envKeyRateLimitWindow    = "RATE_LIMIT_WINDOW"
	envKeyCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	envKeyStaticDir          = "STATIC_DIR"
	envKeyQuotesFile         = "QUOTES_FILE"
	envKeyAuditDBPath        = "AUDIT_DB_PATH"
	envKeyAuthJWTSecret      = "AUTH_JWT_SECRET"
)

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	return Config{
		Host:               envOr(envKeyHost, "0.0.0.0"),
		Port:               envIntOr(envKeyPort, 8080),
		OpenAIKey:          os.Getenv(envKeyOpenAIKey),
		GroqKey:            os.Getenv(envKeyGroqKey),
		OpenAIModel:        envOr(envKeyOpenAIModel, llm.DefaultOpenAIModel),
		GroqModel:          envOr(envKeyGroqModel, llm.DefaultGroqModel),
		OpenAIBaseURL:      envOr(envKeyOpenAIBaseURL, llm.DefaultOpenAIBaseURL),
		GroqBaseURL:        envOr(envKeyGroqBaseURL, llm.DefaultGroqBaseURL),
		ProviderTimeout:    envDurationOr(envKeyProviderTimeout, 30*time.Second),
		RateLimitMax:       envIntOr(envKeyRateLimitMax, 60),
		RateLimitWindow:    envDurationOr(envKeyRateLimitWindow, time.Minute),
		CORSAllowedOrigins: splitList(envOr(envKeyCORSAllowedOrigins, "*")),
		StaticDir:          os.Getenv(envKeyStaticDir),
		QuotesFile:         os.Getenv(envKeyQuotesFile),
		AuditDBPath:        os.Getenv(envKeyAuditDBPath),
		AuthJWTSecret:      os.Getenv(envKeyAuthJWTSecret),
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Credentials returns the provider key set used by the llm router.
func (c Config) Credentials() llm.Credentials {
	return llm.Credentials{OpenAIKey: c.OpenAIKey, GroqKey: c.GroqKey}
}

// RouterOptions returns the non-secret provider settings.
func (c Config) RouterOptions() llm.RouterOptions {
	return llm.RouterOptions{
		OpenAIBaseURL: c.OpenAIBaseURL,
		OpenAIModel:   c.OpenAIModel,
		GroqBaseURL:   c.GroqBaseURL,
		GroqModel:     c.GroqModel,
		Timeout:       c.ProviderTimeout,
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr parses a positive integer env var; invalid or non-positive values use fallback.
func envIntOr(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// envDurationOr parses a Go duration ("30s", "1m"); invalid or non-positive values use fallback.
func envDurationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
