package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the binary reads from the environment. Values come
// from the process environment, optionally seeded from a .env file.
type Config struct {
	ListenAddr   string
	DatabaseDSN  string
	JWTSecret    string
	SessionTTL   time.Duration
	GeminiAPIKey string
}

// Load reads .env if present, then the environment. A missing .env is not an
// error; running with exported variables only is fine in production.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:   getenv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:  getenv("DATABASE_DSN", "host=localhost user=postgres password=password dbname=careercompass port=5432 sslmode=disable"),
		JWTSecret:    getenv("JWT_SECRET", "development-secret-change-in-production"),
		SessionTTL:   getduration("SESSION_TTL", 24*time.Hour),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
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
