package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port         string
	StoreBackend string // postgres | redis | memory
	DBConn       string
	RedisURL     string
	DataFile     string
	LogLevel     string
	JWTSecret    string

	// SMTP settings for the contact-notification mail; notification is
	// disabled when ContactNotifyEmail is empty.
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SenderEmail        string
	ContactNotifyEmail string

	// Retention purge; disabled when CleanupSchedule is empty.
	CleanupSchedule string
	RetentionDays   int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	retentionDays, err := strconv.Atoi(getEnv("RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("RETENTION_DAYS must be an integer: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "5000"),
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=todo password=todo dbname=todo sslmode=disable"),
		RedisURL:     getEnv("REDIS_URL", ""),
		DataFile:     getEnv("DATA_FILE", ""),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretkey"),

		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SenderEmail:        getEnv("SENDER_EMAIL", ""),
		ContactNotifyEmail: getEnv("CONTACT_NOTIFY_EMAIL", ""),

		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", ""),
		RetentionDays:   retentionDays,
	}

	switch cfg.StoreBackend {
	case "postgres", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want postgres, redis or memory)", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required with STORE_BACKEND=redis")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
