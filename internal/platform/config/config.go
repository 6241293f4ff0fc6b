package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Loaded once at startup and
// treated as read-only afterwards.
type Server struct {
	Addr        string
	DatabaseURL string
	JWT         JWTConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
}

// JWTConfig configures bearer token verification against the identity
// provider's shared signing secret.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// RedisConfig configures the optional Redis connection for rate limiting.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event stream.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// UploadConfig configures résumé upload URL minting.
type UploadConfig struct {
	SigningSecret  string
	StorageBaseURL string
	URLTTL         time.Duration
}

// RateLimitConfig configures the public endpoint limiter.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SHOPTRACK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}
	jwtAudience := os.Getenv("JWT_AUDIENCE")
	if jwtAudience == "" {
		jwtAudience = "authenticated"
	}

	uploadSecret := os.Getenv("UPLOAD_SIGNING_SECRET")
	if uploadSecret == "" {
		uploadSecret = jwtSigningKey
	}
	storageBaseURL := os.Getenv("STORAGE_BASE_URL")
	if storageBaseURL == "" {
		storageBaseURL = "http://localhost:8080/storage"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "shoptrack.audit"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWT: JWTConfig{
			SigningKey: jwtSigningKey,
			Issuer:     os.Getenv("JWT_ISSUER"),
			Audience:   jwtAudience,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
		Upload: UploadConfig{
			SigningSecret:  uploadSecret,
			StorageBaseURL: storageBaseURL,
			URLTTL:         envDuration("UPLOAD_URL_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
			Limit:    envInt("RATE_LIMIT_PUBLIC_LIMIT", 30),
			Window:   envDuration("RATE_LIMIT_PUBLIC_WINDOW", time.Minute),
		},
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
