package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// Load reads the whole configuration from the environment. The two signing
// secrets have no defaults: refusing to boot beats signing tokens with a
// published value.
func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBUser:     getEnv("DB_USER", "nanolink"),
		DBPassword: getEnv("DB_PASSWORD", "nanolink"),
		DBName:     getEnv("DB_NAME", "nanolink"),
		DBPort:     getEnv("DB_PORT", "5432"),

		AccessTokenSecret:  mustGetEnv("JWT_SECRET"),
		RefreshTokenSecret: mustGetEnv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:     time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_MIN", 43200)) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Str("key", key).Msg("missing required environment variable")
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}
