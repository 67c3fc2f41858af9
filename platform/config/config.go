// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
// The host platform issues the tokens; this service only verifies them.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// CacheConfig provides settings for the Redis metadata cache.
type CacheConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetMetadataCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetMetadataRefreshInterval() time.Duration
}

// SeedConfig provides settings for the metadata catalog seed loader.
type SeedConfig interface {
	GetSeedFile() string
}

// RateLimitConfig provides settings for the public search rate limiter.
type RateLimitConfig interface {
	GetSearchRatePerSecond() float64
	GetSearchRateBurst() int
}

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env         string
	HTTPAddr    string
	DatabaseURL string

	JWTAccessSecret string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RedisURL         string
	RedisTLSInsecure bool
	MetadataCacheTTL time.Duration

	AsynqQueueName          string
	AsynqConcurrency        int
	MetadataRefreshInterval time.Duration

	SeedFile string

	SearchRatePerSecond float64
	SearchRateBurst     int

	// SearchDebugQuery echoes the canonical query text in search responses.
	// Off by default; meant for local development only.
	SearchDebugQuery bool
}

// GetDatabaseURL returns the database connection URL.
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// GetJWTAccessSecret returns the access token signing secret.
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// GetCORSAllowAll reports whether all origins are allowed.
func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }

// GetCORSOrigins returns the allowed CORS origins.
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// GetCORSAllowCreds reports whether credentials are allowed cross-origin.
func (c *Config) GetCORSAllowCreds() bool { return c.CORSAllowCreds }

// GetRedisURL returns the Redis connection URL.
func (c *Config) GetRedisURL() string { return c.RedisURL }

// GetRedisTLSInsecure reports whether Redis TLS verification is skipped.
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// GetMetadataCacheTTL returns the TTL for cached metadata entries.
func (c *Config) GetMetadataCacheTTL() time.Duration { return c.MetadataCacheTTL }

// GetAsynqQueueName returns the asynq queue name.
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }

// GetAsynqConcurrency returns the asynq worker concurrency.
func (c *Config) GetAsynqConcurrency() int { return c.AsynqConcurrency }

// GetMetadataRefreshInterval returns how often the metadata cache is re-warmed.
func (c *Config) GetMetadataRefreshInterval() time.Duration { return c.MetadataRefreshInterval }

// GetSeedFile returns the path to the metadata catalog seed file.
func (c *Config) GetSeedFile() string { return c.SeedFile }

// GetSearchRatePerSecond returns the per-IP search request rate.
func (c *Config) GetSearchRatePerSecond() float64 { return c.SearchRatePerSecond }

// GetSearchRateBurst returns the per-IP search request burst.
func (c *Config) GetSearchRateBurst() int { return c.SearchRateBurst }

// Load reads configuration from the environment, applying defaults.
// A .env file is honored when present (local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		JWTAccessSecret:         getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		CORSAllowCreds:          strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:                getEnv("REDIS_URL", ""),
		RedisTLSInsecure:        strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		MetadataCacheTTL:        mustDuration(getEnv("METADATA_CACHE_TTL", "10m")),
		AsynqQueueName:          getEnv("ASYNQ_QUEUE", "lookup"),
		AsynqConcurrency:        mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		MetadataRefreshInterval: mustDuration(getEnv("METADATA_REFRESH_INTERVAL", "15m")),
		SeedFile:                getEnv("METADATA_SEED_FILE", ""),
		SearchRatePerSecond:     mustFloat(getEnv("SEARCH_RATE_PER_SECOND", "10")),
		SearchRateBurst:         mustInt(getEnv("SEARCH_RATE_BURST", "20")),
		SearchDebugQuery:        strings.EqualFold(getEnv("SEARCH_DEBUG_QUERY", "false"), "true"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" && !strings.EqualFold(cfg.Env, "development") {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required outside development")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid duration %q: %v", raw, err))
	}
	return d
}

func mustInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid integer %q: %v", raw, err))
	}
	return n
}

func mustFloat(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid number %q: %v", raw, err))
	}
	return f
}
