package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	DataPath  string // GeoJSON imported when the accidents table is empty
	JWTSecret string

	Timezone     string
	DayStartHour int // first hour counted as Day, inclusive
	DayEndHour   int // last hour counted as Day, inclusive

	DefaultCellSizeM  float64
	KNNK              int
	Alpha             float64
	MinAnomalySamples int

	RateLimit int // requests per minute per client IP
}

// Load 加载配置
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] No .env file found, using environment variables")
	}

	return &Config{
		Port:              getEnv("PORT", ":8080"),
		DBPath:            getEnv("DB_PATH", "./data/accidents.db"),
		DataPath:          getEnv("DATA_PATH", "./data/nehody.geojson"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Timezone:          getEnv("TIMEZONE", "Europe/Prague"),
		DayStartHour:      getEnvInt("DAY_START_HOUR", 6),
		DayEndHour:        getEnvInt("DAY_END_HOUR", 18),
		DefaultCellSizeM:  getEnvFloat("DEFAULT_CELL_SIZE_M", 300),
		KNNK:              getEnvInt("KNN_K", 5),
		Alpha:             getEnvFloat("ALPHA", 0.05),
		MinAnomalySamples: getEnvInt("MIN_ANOMALY_SAMPLES", 5),
		RateLimit:         getEnvInt("RATE_LIMIT", 120),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
		log.Printf("[Config] Invalid integer for %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%g", &floatValue); err == nil {
			return floatValue
		}
		log.Printf("[Config] Invalid number for %s=%q, using %g", key, value, defaultValue)
	}
	return defaultValue
}
