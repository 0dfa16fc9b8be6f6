// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/meur/dexview/internal/source"
)

// Endpoint names accepted by CATALOG_ENDPOINT
const (
	EndpointSimple = "simple"
	EndpointFull   = "pokemon"
)

// Config holds the application settings
type Config struct {
	Port             string
	SourceURL        string
	Endpoint         string
	FetchTimeout     time.Duration
	BatchConcurrency int
	BatchRPS         float64
	CORSOrigins      []string
	Debug            bool
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	timeout, err := getEnvDuration("FETCH_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("BATCH_CONCURRENCY", source.DefaultConcurrency)
	if err != nil {
		return nil, err
	}
	rps, err := getEnvFloat("BATCH_RPS", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		SourceURL:        getEnv("RECORD_SOURCE_URL", getEnv("SERVER", source.DefaultBaseURL)),
		Endpoint:         getEnv("CATALOG_ENDPOINT", EndpointFull),
		FetchTimeout:     timeout,
		BatchConcurrency: concurrency,
		BatchRPS:         rps,
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:*,http://127.0.0.1:*")),
		Debug:            getEnvBool("DEXVIEW_DEBUG", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Endpoint {
	case EndpointSimple, EndpointFull:
	default:
		return fmt.Errorf("CATALOG_ENDPOINT must be %q or %q, got %q", EndpointSimple, EndpointFull, c.Endpoint)
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("BATCH_CONCURRENCY must be at least 1, got %d", c.BatchConcurrency)
	}
	if c.BatchRPS < 0 {
		return fmt.Errorf("BATCH_RPS must not be negative, got %v", c.BatchRPS)
	}
	return nil
}

// Addr is the listen address for Port
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
