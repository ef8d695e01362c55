// Package config builds runtime configuration from the environment so main
// stays lean. Every knob has a development default; production deployments
// override via TALENTRY_* variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all subsystem configuration.
type Config struct {
	Server    Server
	Auth      Auth
	Postgres  Postgres
	Redis     RedisConfig
	Kafka     Kafka
	RateLimit RateLimit
	Matching  Matching
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminTokenHash  string
	ShutdownTimeout time.Duration
}

// Auth configures access token issuance and validation.
type Auth struct {
	JWTSigningKey      string
	Issuer             string
	Audience           string
	AccessTokenTTL     time.Duration
	DeviceFingerprints bool
}

// Postgres holds the connection string for the registry database.
// Empty means Postgres is not configured and stores fall back to memory.
type Postgres struct {
	URL string
}

// RedisConfig holds Redis connection settings for the compatibility cache.
// Empty URL means Redis is not configured.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds broker settings for the audit event sink.
// Empty broker list means Kafka is not configured.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// RateLimit configures the sliding-window request limiter.
type RateLimit struct {
	Disabled   bool
	ReadLimit  int
	WriteLimit int
	Window     time.Duration
}

// Matching configures compatibility evaluation.
type Matching struct {
	CacheTTL time.Duration
}

// FromEnv builds the full configuration from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("TALENTRY_ADDR", ":8080"),
			AdminTokenHash:  os.Getenv("TALENTRY_ADMIN_TOKEN_HASH"),
			ShutdownTimeout: envDuration("TALENTRY_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey:      envOr("TALENTRY_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:             envOr("TALENTRY_JWT_ISSUER", "talentry"),
			Audience:           envOr("TALENTRY_JWT_AUDIENCE", "talentry-api"),
			AccessTokenTTL:     envDuration("TALENTRY_ACCESS_TOKEN_TTL", time.Hour),
			DeviceFingerprints: envOr("TALENTRY_DEVICE_FINGERPRINTS", "true") == "true",
		},
		Postgres: Postgres{
			URL: os.Getenv("TALENTRY_POSTGRES_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("TALENTRY_REDIS_URL"),
			PoolSize:     envInt("TALENTRY_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("TALENTRY_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("TALENTRY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("TALENTRY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("TALENTRY_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:    splitList(os.Getenv("TALENTRY_KAFKA_BROKERS")),
			AuditTopic: envOr("TALENTRY_AUDIT_TOPIC", "talentry.audit"),
		},
		RateLimit: RateLimit{
			Disabled:   os.Getenv("TALENTRY_RATE_LIMIT_DISABLED") == "true",
			ReadLimit:  envInt("TALENTRY_RATE_LIMIT_READS", 300),
			WriteLimit: envInt("TALENTRY_RATE_LIMIT_WRITES", 60),
			Window:     envDuration("TALENTRY_RATE_LIMIT_WINDOW", time.Minute),
		},
		Matching: Matching{
			CacheTTL: envDuration("TALENTRY_MATCH_CACHE_TTL", 5*time.Minute),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
