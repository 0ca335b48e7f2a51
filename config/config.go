package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration.
type Config struct {
	Port           string
	Env            string
	BackendURL     string
	RequestTimeout time.Duration

	// RedisURL selects the redis cart/session store when set; the
	// file store under StorageDir is used otherwise.
	RedisURL   string
	StorageDir string

	CartTTL time.Duration
}

// Load reads configuration from the .env file and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8081/api"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		RedisURL:       os.Getenv("REDIS_URL"),
		StorageDir:     getEnv("STORAGE_DIR", "./data"),
		CartTTL:        getDuration("CART_TTL", 7*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default %s", key, value, fallback)
		return fallback
	}
	return d
}
