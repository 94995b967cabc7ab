package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	UploadDir string

	GoogleBooksURL    string
	GoogleBooksAPIKey string
	LookupTimeout     time.Duration

	ClassifyRulesPath string

	APIRateLimitRPS   int
	APIRateLimitBurst int

	MaxUploadBytes int64
}

func Load() Config {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		UploadDir: mustEnv("UPLOAD_DIR", "./uploads"),

		GoogleBooksURL:    mustEnv("GOOGLE_BOOKS_URL", "https://www.googleapis.com"),
		GoogleBooksAPIKey: mustEnv("GOOGLE_BOOKS_API_KEY", ""),
		LookupTimeout:     time.Duration(mustEnvInt("LOOKUP_TIMEOUT_SECONDS", 10)) * time.Second,

		ClassifyRulesPath: mustEnv("CLASSIFY_RULES_PATH", ""),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),

		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_MB", 32)) << 20,
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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
