package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	DatabaseDSN  string
	JWTSecret    string
	TokenTTL     time.Duration
	MediaBaseURL string
	MediaAPIKey  string
	MediaTimeout time.Duration
	MediaRetries int
	SMTPAddr     string
	SMTPFrom     string
	SMTPUser     string
	SMTPPassword string
}

var cfg Config

// Init loads the environment (a local .env is honored when present) and
// builds the process configuration. Missing required values panic at
// startup rather than failing on the first request.
func Init() {
	_ = godotenv.Load()

	cfg = Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     getenvDuration("TOKEN_TTL", 24*time.Hour),
		MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),
		MediaAPIKey:  os.Getenv("MEDIA_API_KEY"),
		MediaTimeout: getenvDuration("MEDIA_TIMEOUT", 30*time.Second),
		MediaRetries: getenvInt("MEDIA_RETRIES", 2),
		SMTPAddr:     getenv("SMTP_ADDR", "localhost:25"),
		SMTPFrom:     getenv("SMTP_FROM", "no-reply@learnhub.app"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}

	if cfg.DatabaseDSN == "" {
		panic("DATABASE_DSN is required")
	}
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}
}

func Get() Config { return cfg }

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
