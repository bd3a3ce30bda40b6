package config

import (
	"os"
	"time"

	"agencyhub-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// Billing API
	BillingAPIURL  string
	BillingAPIKey  string
	BillingTimeout time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "redis-agencyhub:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			PubPath:  getEnv("JWT_PUBLIC_KEY_PATH", "/app/secrets/jwt_public.pem"),
			Issuer:   getEnv("JWT_ISSUER", "agencyhub-identity"),
			Audience: getEnv("JWT_AUDIENCE", "agencyhub-dashboard"),
		},

		BillingAPIURL:  getEnv("BILLING_API_URL", "https://billing.agencyhub.internal"),
		BillingAPIKey:  getEnv("BILLING_API_KEY", ""),
		BillingTimeout: getEnvDuration("BILLING_TIMEOUT", 15*time.Second),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
