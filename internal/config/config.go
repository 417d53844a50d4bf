// Package config handles configuration loading for the POS backend.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the API.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisHost     string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// TokenCacheTTL bounds the redis token-resolution cache only; tokens
	// themselves never expire.
	TokenCacheTTL time.Duration `envconfig:"TOKEN_CACHE_TTL" default:"24h"`

	// GoogleClientID validates the aud claim of Google ID tokens. Leaving
	// it empty disables that single check.
	GoogleClientID string `envconfig:"GOOGLE_CLIENT_ID"`

	// AMQPURL enables auth event publishing when set.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"benta.events"`

	// OTLPEndpoint enables tracing when set.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	SwaggerHost string `envconfig:"SWAGGER_HOST"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
