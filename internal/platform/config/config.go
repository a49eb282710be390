package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BusMemory = "memory"
	BusKafka  = "kafka"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"orderflow"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort    string `env:"GRPC_PORT" envDefault:"9090"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	EventBus      string   `env:"EVENT_BUS" envDefault:"memory"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"orderflow-activity-cg"`
	RedisAddr     string   `env:"REDIS_ADDR"`

	CustomersGRPCAddr  string        `env:"CUSTOMERS_GRPC_ADDR"`
	DependencyTimeout  time.Duration `env:"DEPENDENCY_TIMEOUT" envDefault:"5s"`
	PublishMaxAttempts int           `env:"PUBLISH_MAX_ATTEMPTS" envDefault:"1"`
	PublishTimeout     time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"10s"`
	SubscriptionsFile  string        `env:"SUBSCRIPTIONS_FILE"`

	EnableActivityConsumer bool `env:"ENABLE_ACTIVITY_CONSUMER" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment, which wins over the file.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.EventBus = strings.ToLower(strings.TrimSpace(cfg.EventBus))
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.EventBus {
	case BusMemory:
	case BusKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when EVENT_BUS=kafka")
		}
	default:
		return fmt.Errorf("unsupported EVENT_BUS %q", c.EventBus)
	}
	if c.PublishMaxAttempts < 1 {
		return errors.New("PUBLISH_MAX_ATTEMPTS must be at least 1")
	}
	if c.DependencyTimeout <= 0 {
		return errors.New("DEPENDENCY_TIMEOUT must be positive")
	}
	return nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	options := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

func compact(values []string) []string {
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
