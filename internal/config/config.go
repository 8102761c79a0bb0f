package config

import (
	"errors"
	"os"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	DBSSLMode      string
	JWTSecret      string
	Port           string
	Env            string
	AllowedOrigins string
	PublicBaseURL  string
	LogLevel       string
}

func NewConfigFromEnv() (*Config, error) {
	cfg := &Config{
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPass:         getenv("DB_PASSWORD", "postgres"),
		DBName:         getenv("DB_NAME", "donationdb"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		Port:           getenv("PORT", "4000"),
		Env:            getenv("ENV", "development"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:4000"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
