package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Hub backend configuration (wallet, events and invite APIs)
	HubAPIURL string
	HubAPIKey string

	// Redis configuration (events calendar cache)
	RedisURL      string
	RedisPassword string

	// Session token configuration
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Events calendar cache TTL
	EventsCacheTTL time.Duration
}

// Load loads configuration from the environment. A .env file in the working
// directory is read first when present, real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		HubAPIURL:      getEnv("HUB_API_URL", ""),
		HubAPIKey:      getEnv("HUB_API_KEY", ""),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		EventsCacheTTL: getEnvAsDuration("EVENTS_CACHE_TTL", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.HubAPIURL == "" {
		return fmt.Errorf("HUB_API_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// The hub API key is required in production but optional in development
	if c.HubAPIKey == "" && c.IsProduction() {
		return fmt.Errorf("HUB_API_KEY is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitEnv gets a comma-separated environment variable as a slice
func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
