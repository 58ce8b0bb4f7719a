package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string

	// RedisURL enables the Redis notification transport and idempotency-key
	// support when set; empty disables both.
	RedisURL            string
	IdempotencyTTL      time.Duration
	NotifyChannelPrefix string

	// RateLimit uses the ulule/limiter formatted notation, e.g. "60-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("NOTIFY_CHANNEL_PREFIX", "users")
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.NotifyChannelPrefix = viper.GetString("NOTIFY_CHANNEL_PREFIX")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	ttlStr := viper.GetString("IDEMPOTENCY_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 24 * time.Hour
		log.Printf("Warning: Invalid value for IDEMPOTENCY_TTL (%q). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.IdempotencyTTL = ttl

	return cfg, nil
}
