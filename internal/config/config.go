package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/pricing"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // e.g., development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // e.g., debug, info, warn, error
	HttpServer ServerConfig
	Storage    StorageConfig
	Pricing    PricingConfig
	SMTP       SMTPConfig

	// Number that receives the WhatsApp checkout deep links, E.164 without "+".
	WhatsAppNumber string `envconfig:"WHATSAPP_NUMBER" default:"5511999999999"`
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is "memory" (seeded, non-durable) or "postgres".
	Backend  string `envconfig:"STORAGE_BACKEND" default:"memory"`
	Postgres PostgresConfig
}

// PostgresConfig holds PostgreSQL database connection details. The fields are
// not marked required here because the memory backend needs none of them;
// main validates them when STORAGE_BACKEND=postgres.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:""`
	DBName   string `envconfig:"POSTGRES_DBNAME" default:"spoiler"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// PricingConfig holds the shipping rule and the flat customization surcharge
// tiers. Values are parsed as decimals, e.g. "200" or "199.90".
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"FREE_SHIPPING_THRESHOLD" default:"200"`
	ShippingFee           decimal.Decimal `envconfig:"SHIPPING_FEE" default:"15"`
	EngravingFee          decimal.Decimal `envconfig:"ENGRAVING_FEE" default:"25"`
	SizeFee               decimal.Decimal `envconfig:"SIZE_FEE" default:"35"`
	FinishFee             decimal.Decimal `envconfig:"FINISH_FEE" default:"45"`

	// VerifyTotals enables server-side recomputation of submitted order
	// totals. Off by default: legacy clients send their own totals.
	VerifyTotals bool `envconfig:"VERIFY_ORDER_TOTALS" default:"false"`
}

// Engine returns the pricing engine configuration.
func (pc *PricingConfig) Engine() pricing.Config {
	return pricing.Config{
		FreeShippingThreshold: pc.FreeShippingThreshold,
		ShippingFee:           pc.ShippingFee,
		EngravingFee:          pc.EngravingFee,
		SizeFee:               pc.SizeFee,
		FinishFee:             pc.FinishFee,
	}
}

// SMTPConfig holds outbound mail settings. An empty Host disables mail
// entirely and the application falls back to a no-op mailer.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:""`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME" default:""`
	Password string `envconfig:"SMTP_PASSWORD" default:""`
	From     string `envconfig:"SMTP_FROM" default:"pedidos@spoilerdochurrasco.com.br"`
	NotifyTo string `envconfig:"SMTP_NOTIFY_TO" default:"contato@spoilerdochurrasco.com.br"`
}

var cfg Config

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	log.Println("Loading service configuration...")
	err := envconfig.Process("", &cfg) // The first argument is a prefix for env vars, empty means no prefix
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	log.Printf("Configuration loaded successfully for APP_ENV: %s", cfg.AppEnv)
	return &cfg, nil
}

// Get returns the loaded configuration.
// Panics if Load() has not been called successfully.
func Get() *Config {
	if cfg.HttpServer.Port == "" { // Simple check to see if cfg is populated
		log.Fatal("Configuration has not been loaded. Call config.Load() first.")
	}
	return &cfg
}
