// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCityCodes are the origins crawled when CITY_CODES is unset
var DefaultCityCodes = []string{"bjs", "sha", "can", "ctu", "urc", "hrb"}

// Config holds all configuration for the application
type Config struct {
	// Crawl
	CityCodes   []string
	BaseURL     string
	UserAgent   string
	HTTPTimeout time.Duration
	CityWorkers int
	PairWorkers int
	JitterMin   time.Duration
	JitterMax   time.Duration

	// Output
	OutputPath string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresDSN string

	// SQLite
	SQLitePath string

	// Observability
	LogLevel        string
	MetricsAddr     string
	MetricsTextfile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		CityCodes:   getEnvAsList("CITY_CODES", DefaultCityCodes),
		BaseURL:     getEnv("BASE_URL", "https://flights.ctrip.com"),
		UserAgent:   getEnv("USER_AGENT", ""),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT", 10)) * time.Second,
		CityWorkers: getEnvAsInt("CITY_WORKERS", 3),
		PairWorkers: getEnvAsInt("PAIR_WORKERS", 8),
		JitterMin:   time.Duration(getEnvAsInt("JITTER_MIN_MS", 200)) * time.Millisecond,
		JitterMax:   time.Duration(getEnvAsInt("JITTER_MAX_MS", 800)) * time.Millisecond,

		OutputPath: getEnv("OUTPUT_PATH", "optimized_data.csv"),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "schedules"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		SQLitePath: getEnv("SQLITE_PATH", ""),

		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the crawl settings
func (c *Config) Validate() error {
	var errs []error

	if len(c.CityCodes) == 0 {
		errs = append(errs, errors.New("CITY_CODES must name at least one city"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("BASE_URL must not be empty"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout))
	}
	if c.CityWorkers < 1 {
		errs = append(errs, fmt.Errorf("CITY_WORKERS must be at least 1, got %d", c.CityWorkers))
	}
	if c.PairWorkers < 1 {
		errs = append(errs, fmt.Errorf("PAIR_WORKERS must be at least 1, got %d", c.PairWorkers))
	}
	if c.JitterMin < 0 || c.JitterMax < c.JitterMin {
		errs = append(errs, fmt.Errorf("jitter range [%s, %s] is invalid", c.JitterMin, c.JitterMax))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("OUTPUT_PATH must not be empty"))
	}

	return errors.Join(errs...)
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
