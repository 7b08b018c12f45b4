package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all process configuration, loaded from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers        []string
	KafkaTelemetryTopic string
	KafkaConsumerGroup  string

	RedisAddr     string
	RedisPassword string

	RateLimitMaxRequests int
	RateLimitWindowSecs  int

	// APIKeys maps bearer keys to role names ("read", "write", "admin").
	APIKeys map[string]string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads configuration from the environment, with an optional .env
// file for local development.
func LoadConfig() Config {
	// .env is optional; container environments set variables directly.
	_ = godotenv.Load(".env")

	return Config{
		HTTPPort:             envOrDefault("HTTP_PORT", "8000"),
		DBHost:               envOrDefault("DB_HOST", "localhost"),
		DBPort:               envOrDefault("DB_PORT", "5432"),
		DBUser:               envOrDefault("DB_USER", "postgres"),
		DBPassword:           envOrDefault("DB_PASSWORD", "postgres"),
		DBName:               envOrDefault("DB_NAME", "iotstream"),
		DBSslMode:            envOrDefault("DB_SSLMODE", "disable"),
		KafkaBrokers:         strings.Split(envOrDefault("KAFKA_HOST", "localhost:9092"), ","),
		KafkaTelemetryTopic:  envOrDefault("KAFKA_TELEMETRY_TOPIC", "iot_stream_v1"),
		KafkaConsumerGroup:   envOrDefault("KAFKA_CONSUMER_GROUP", "iotstream-persistence"),
		RedisAddr:            envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RateLimitMaxRequests: envIntOrDefault("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindowSecs:  envIntOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		APIKeys:              ParseAPIKeys(os.Getenv("API_KEYS")),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ParseAPIKeys parses the API_KEYS environment value, a comma-separated list
// of key:role pairs, e.g. "k1:read,k2:write,k3:admin".
func ParseAPIKeys(raw string) map[string]string {
	keys := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, role, found := strings.Cut(pair, ":")
		if !found || key == "" {
			continue
		}
		keys[key] = role
	}
	return keys
}
