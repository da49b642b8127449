package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	RedisURL    string
	LogLevel    string
	Environment string
	CORSOrigins string

	YouTubeAPIKey     string
	RegionCode        string
	VideosPerCategory int

	RawDataDir       string
	ProcessedDataDir string

	// RefreshInterval of 0 disables the background refresh worker.
	RefreshInterval time.Duration
}

func Load() *Config {
	// Best effort; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		RegionCode:        getEnv("REGION_CODE", "US"),
		VideosPerCategory: getEnvInt("VIDEOS_PER_CATEGORY", 30),

		RawDataDir:       getEnv("RAW_DATA_DIR", "data/raw"),
		ProcessedDataDir: getEnv("PROCESSED_DATA_DIR", "data/processed"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
