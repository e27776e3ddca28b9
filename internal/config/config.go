package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for ticketctl.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Redis  RedisConfig
	Events EventsConfig
	Output OutputConfig
}

// AppConfig carries identifying values.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// RedisConfig holds Redis connection values for event fan-out.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Channel  string
}

// EventsConfig controls event encoding and buffering.
type EventsConfig struct {
	Encoding  string
	QueueSize int
}

// OutputConfig controls how command results are rendered.
type OutputConfig struct {
	Format string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticketctl"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "warn"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "tickets.events"),
		},
		Events: EventsConfig{
			Encoding:  strings.ToLower(getEnv("EVENTS_ENCODING", "json")),
			QueueSize: getEnvAsInt("EVENTS_QUEUE_SIZE", 256),
		},
		Output: OutputConfig{
			Format: strings.ToLower(getEnv("OUTPUT_FORMAT", "text")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Events.Encoding {
	case "json", "cbor":
	default:
		return fmt.Errorf("invalid EVENTS_ENCODING %q: want json or cbor", c.Events.Encoding)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q: want text, json or yaml", c.Output.Format)
	}
	if c.Events.QueueSize <= 0 {
		return fmt.Errorf("invalid EVENTS_QUEUE_SIZE %d: must be positive", c.Events.QueueSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
