package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	APP struct {
		Name string `env:"SERVICE_NAME" envDefault:"fitback"`
		Host string `env:"SERVICE_HOST" envDefault:"0.0.0.0"`
		Port string `env:"SERVICE_PORT" envDefault:"8080"`
		Env  string `env:"SERVICE_ENV" envDefault:"debug"`
		// TrustedProxies may set X-Forwarded-For; empty means the peer address is the client IP.
		TrustedProxies []string `env:"SERVICE_TRUSTED_PROXIES" envSeparator:","`
	}
	Auth struct {
		// JWTSecret verifies tokens issued by the hosted auth provider.
		JWTSecret   string   `env:"AUTH_JWT_SECRET"`
		AdminEmails []string `env:"AUTH_ADMIN_EMAILS" envSeparator:"," envDefault:"admin@fitback.app,team@fitback.app"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	}
	Blob struct {
		Endpoint        string        `env:"BLOB_ENDPOINT" envDefault:"localhost:9000"`
		AccessKeyID     string        `env:"BLOB_ACCESS_KEY_ID"`
		SecretAccessKey string        `env:"BLOB_SECRET_ACCESS_KEY"`
		Bucket          string        `env:"BLOB_BUCKET" envDefault:"fitback-videos"`
		UseSSL          bool          `env:"BLOB_USE_SSL" envDefault:"false"`
		PublicBaseURL   string        `env:"BLOB_PUBLIC_BASE_URL"`
		UploadTokenTTL  time.Duration `env:"BLOB_UPLOAD_TOKEN_TTL" envDefault:"15m"`
	}
	MQ struct {
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST"`
		Host         string `env:"RABBITMQ_HOST"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" envDefault:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" envDefault:"fitback.errors"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"direct"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" envDefault:"fitback.errors.sink"`
	}
	Logging struct {
		// IngestRate is the sustained client log rate per IP, in entries per second.
		IngestRate  float64 `env:"LOG_INGEST_RATE" envDefault:"5"`
		IngestBurst int     `env:"LOG_INGEST_BURST" envDefault:"50"`
	}

	Config struct {
		App     APP
		Auth    Auth
		DB      DB
		Blob    Blob
		MQ      MQ
		Logging Logging
	}
)

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
