package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// CORS configuration
	CORS CORSConfig

	// Redis configuration (business cache)
	Redis RedisConfig

	// Hotel defaults
	Hotel HotelConfig

	// Background jobs
	Jobs JobsConfig

	// Outbound notifications
	Notify NotifyConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RedisConfig holds the business cache connection. An empty Addr disables the cache.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	BusinessTTL time.Duration
}

// HotelConfig holds the fallbacks used when a business or reservation omits a value
type HotelConfig struct {
	DefaultCountry      string
	DefaultCheckInTime  string // HH:MM
	DefaultCheckOutTime string // HH:MM
}

// JobsConfig holds the cron specs (with seconds field) of the background sweeps
type JobsConfig struct {
	Enabled           bool
	ScheduleSweepSpec string
	OverdueSweepSpec  string
}

// NotifyConfig holds the overdue webhook. An empty URL disables notifications.
type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
	RetryCount int
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"test":        true,
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", ""),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenExpiry:  time.Duration(getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY", 3600)) * time.Second,
			RefreshTokenExpiry: time.Duration(getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY", 604800)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			BusinessTTL: getEnvAsDuration("REDIS_BUSINESS_TTL", 10*time.Minute),
		},
		Hotel: HotelConfig{
			DefaultCountry:      getEnv("HOTEL_DEFAULT_COUNTRY", "chile"),
			DefaultCheckInTime:  getEnv("HOTEL_DEFAULT_CHECK_IN_TIME", "15:00"),
			DefaultCheckOutTime: getEnv("HOTEL_DEFAULT_CHECK_OUT_TIME", "11:00"),
		},
		Jobs: JobsConfig{
			Enabled:           getEnvAsBool("JOBS_ENABLED", true),
			ScheduleSweepSpec: getEnv("JOBS_SCHEDULE_SWEEP_SPEC", "0 5 * * * *"),
			OverdueSweepSpec:  getEnv("JOBS_OVERDUE_SWEEP_SPEC", "0 */15 * * * *"),
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			Timeout:    getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
			RetryCount: getEnvAsInt("NOTIFY_RETRY_COUNT", 2),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}

	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s (must be development, staging, production or test)", c.Server.Environment)
	}

	if !isClock(c.Hotel.DefaultCheckInTime) {
		return fmt.Errorf("HOTEL_DEFAULT_CHECK_IN_TIME must be HH:MM, got %q", c.Hotel.DefaultCheckInTime)
	}

	if !isClock(c.Hotel.DefaultCheckOutTime) {
		return fmt.Errorf("HOTEL_DEFAULT_CHECK_OUT_TIME must be HH:MM, got %q", c.Hotel.DefaultCheckOutTime)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func isClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
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
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
