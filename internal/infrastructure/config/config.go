package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Token configuration
	SigningKeyPath  string
	SessionDuration time.Duration

	// Login surface
	LoginURL string

	// Server configuration
	ServerPort int

	// MigrateOnStart applies pending schema migrations before serving.
	MigrateOnStart bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env from project root
	_ = godotenv.Load()

	sessionDuration, err := time.ParseDuration(getEnv("SESSION_DURATION", "30m"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "minu"),
		DBPassword: getEnv("DB_PASSWORD", "minu"),
		DBName:     getEnv("DB_NAME", "minu_sso"),

		SigningKeyPath:  getEnv("SIGNING_KEY_PATH", ""),
		SessionDuration: sessionDuration,

		LoginURL: getEnv("LOGIN_URL", "/login"),

		ServerPort: getEnvInt("PORT", 8080),

		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
