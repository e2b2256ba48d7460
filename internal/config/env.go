package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath        string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout int // seconds
	Port          string
	GinMode       string
	CORSOrigins   []string
	OTELEnabled   bool
	OTELEndpoint  string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DBPath:        getEnv("DB_PATH", "aemr_books.db"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout: getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		OTELEnabled:   getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:  getEnv("OTEL_ENDPOINT", "localhost:4317"),
	}

	// GEMINI_API_KEY is intentionally not required here: an unset key
	// disables /generate-mcq at request time instead of failing startup.
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
