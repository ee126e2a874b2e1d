package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AppOrigin is the public base URL approval links are built against.
	AppOrigin string `env:"APP_ORIGIN, default=http://localhost:8080"`

	// NotificationWorkers sizes the outbound email dispatcher.
	NotificationWorkers int `env:"NOTIFICATION_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	ClickUp ClickUpConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=invoicing_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures outbound mail. An empty host disables SMTP delivery
// and the API falls back to returning mailto links.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// ClickUpConfig carries the OAuth app credentials for the task import picker.
type ClickUpConfig struct {
	ClientID     string `env:"CLICKUP_CLIENT_ID"`
	ClientSecret string `env:"CLICKUP_CLIENT_SECRET"`
	BaseURL      string `env:"CLICKUP_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
