package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportWebsocket = "websocket"
	TransportRedis     = "redis"
)

// Config holds the application configuration.
type Config struct {
	// REST collaborator
	APIBaseURL string        `env:"API_BASE_URL"`
	APIToken   string        `env:"API_TOKEN"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	// Bulk fetch guard: the upstream contract has no timeout, so one is
	// applied here to avoid an indefinite loading state.
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`

	// Transport
	TransportKind string `env:"TRANSPORT_KIND" envDefault:"websocket"`
	WSURL         string `env:"WS_URL"`

	// Redis transport config
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"roadwatch"`

	// Local presentation API. LocalAPIKeys is optional; when empty the
	// API is open, the usual setup for a daemon bound to localhost.
	HTTPPort     string   `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	LocalAPIKeys []string `env:"LOCAL_API_KEYS"`

	// Session identity, used to recognize echoes of this client's own reports
	UserID   string `env:"USER_ID"`
	Username string `env:"USERNAME"`

	// Transient notification lifetime and self-echo matching tolerances
	NotificationTTL  time.Duration `env:"NOTIFICATION_TTL" envDefault:"3s"`
	EchoWindow       time.Duration `env:"ECHO_WINDOW" envDefault:"60s"`
	EchoRadiusMeters float64       `env:"ECHO_RADIUS_METERS" envDefault:"100"`
}

// LoadConfig reads configuration from environment variables and an
// optional .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		APIBaseURL:       os.Getenv("API_BASE_URL"),
		APIToken:         os.Getenv("API_TOKEN"),
		APITimeout:       getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second),
		TransportKind:    getEnv("TRANSPORT_KIND", TransportWebsocket),
		WSURL:            os.Getenv("WS_URL"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		RedisChannel:     getEnv("REDIS_CHANNEL", "roadwatch"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LocalAPIKeys:     getEnvAsSlice("LOCAL_API_KEYS"),
		UserID:           os.Getenv("USER_ID"),
		Username:         os.Getenv("USERNAME"),
		NotificationTTL:  getEnvAsDuration("NOTIFICATION_TTL", 3*time.Second),
		EchoWindow:       getEnvAsDuration("ECHO_WINDOW", 60*time.Second),
		EchoRadiusMeters: getEnvAsFloat("ECHO_RADIUS_METERS", 100),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}

	switch cfg.TransportKind {
	case TransportWebsocket:
		if cfg.WSURL == "" {
			return nil, fmt.Errorf("WS_URL is required when TRANSPORT_KIND=websocket")
		}
	case TransportRedis:
	default:
		return nil, fmt.Errorf("unknown TRANSPORT_KIND %q", cfg.TransportKind)
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsSlice returns the environment variable value split on commas,
// or nil when unset or empty.
func getEnvAsSlice(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvAsInt returns the environment variable value as int or a default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat returns the environment variable value as float64 or a default.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns the environment variable value as time.Duration or a default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
