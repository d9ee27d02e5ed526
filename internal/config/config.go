package config

import (
	"os"
	"time"
)

// Config carries everything the server reads from the environment.
type Config struct {
	// HTTP
	Port        string
	FrontendURL string

	// MongoDB
	MongoURI string
	Database string

	// Auth
	JWTSecret string
	JWTExpiry time.Duration

	// Logging
	LogLevel string
}

// Load reads the configuration from the environment. Callers are expected
// to have loaded a .env file first (godotenv autoload in main).
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:    getEnv("MONGO_DB", "fleet_management"),
		JWTSecret:   getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry:   getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
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
