// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"crewrecovery-service/internal/domain/entity"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Duty rules
	DutyRules           entity.DutyRules
	ReportBufferMinutes int

	// Ops feed
	OpsFeedURL          string
	OpsFeedPollInterval time.Duration

	// Policy advisor
	AdvisorBaseURL             string
	AdvisorTokenURL            string
	AdvisorClientID            string
	AdvisorClientSecret        string
	AdvisorTimeout             time.Duration
	AdvisorConfidenceThreshold float64

	// Notification service
	NotifyServiceURL string
	NotifyToken      string

	// Processing
	ProcessInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "crewops"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=crewops port=5432"),

		DutyRules: entity.DutyRules{
			MaxDutyHours: getEnvAsInt("MAX_DUTY_HOURS", 8),
			MinRestHours: getEnvAsInt("MIN_REST_HOURS", 10),
		},
		ReportBufferMinutes: getEnvAsInt("REPORT_BUFFER_MINUTES", 60),

		OpsFeedURL:          getEnv("OPS_FEED_URL", ""),
		OpsFeedPollInterval: time.Duration(getEnvAsInt("OPS_FEED_POLL_INTERVAL", 60)) * time.Second,

		AdvisorBaseURL:             getEnv("ADVISOR_BASE_URL", ""),
		AdvisorTokenURL:            getEnv("ADVISOR_TOKEN_URL", ""),
		AdvisorClientID:            getEnv("ADVISOR_CLIENT_ID", ""),
		AdvisorClientSecret:        getEnv("ADVISOR_CLIENT_SECRET", ""),
		AdvisorTimeout:             time.Duration(getEnvAsInt("ADVISOR_TIMEOUT", 15)) * time.Second,
		AdvisorConfidenceThreshold: getEnvAsFloat("ADVISOR_CONFIDENCE_THRESHOLD", 0.55),

		NotifyServiceURL: getEnv("NOTIFY_SERVICE_URL", ""),
		NotifyToken:      getEnv("NOTIFY_TOKEN", ""),

		ProcessInterval: time.Duration(getEnvAsInt("PROCESS_INTERVAL", 30)) * time.Second,
	}

	// Reject bad duty limits here so they never reach a legality check
	if err := config.DutyRules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duty rules: %w", err)
	}
	if config.ReportBufferMinutes < 0 {
		return nil, fmt.Errorf("report buffer minutes must not be negative, got %d", config.ReportBufferMinutes)
	}

	return config, nil
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
