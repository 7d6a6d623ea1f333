package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment.
type Config struct {
	Port    string
	DataDir string
}

// Load reads configuration from a .env file (if present) and the
// environment. An empty DataDir selects the in-memory store.
func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	return Config{
		Port:    getEnv("PORT", "8080"),
		DataDir: getEnv("DATA_DIR", "data"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
