package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads environment variables, optionally from .env.local/.env files if
// present. Local overrides take precedence since godotenv never overwrites
// values that are already set.
func Load() Config {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8080"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
