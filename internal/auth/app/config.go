package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer string // Issuer claim for session tokens (default: gatehouse)

	DatabaseFile string        // Path to SQLite database file (default: ./gatehouse.db)
	PepperFile   string        // Path to pepper file for password hashing (default: ./pepper)
	SessionTTL   time.Duration // Lifetime of issued session tokens (default: jwtx.DefaultSessionTTL)

	BootstrapNickname string // Optional: seed account nickname for a fresh database
	BootstrapPassword string // Optional: seed account password

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Issuer:              getEnvOrDefault("GATEHOUSE_ISSUER", "gatehouse"),
		DatabaseFile:        getEnvOrDefault("GATEHOUSE_DATABASE_FILE", "gatehouse.db"),
		PepperFile:          getEnvOrDefault("GATEHOUSE_PEPPER_FILE", "pepper"),
		SessionTTL:          getEnvDurationOrDefault("GATEHOUSE_SESSION_TTL", 0),
		BootstrapNickname:   os.Getenv("GATEHOUSE_BOOTSTRAP_NICKNAME"),
		BootstrapPassword:   os.Getenv("GATEHOUSE_BOOTSTRAP_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
