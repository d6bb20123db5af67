package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return nil
}

// Config holds the configuration for the exchange application.
type Config struct {
	OrdersPath  string                `env:"ORDERS_PATH" envDefault:"Orders.csv"`
	ReportPath  string                `env:"REPORT_PATH" envDefault:"ExecutionReport.csv"`
	LogLevel    string                `env:"LOG_LEVEL" envDefault:"info"`
	ReportKafka ReportPublisherConfig `envPrefix:"KAFKA_"`
}

// ReportPublisherConfig holds the configuration for the Kafka execution report publisher.
type ReportPublisherConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Topic   string   `env:"TOPIC" envDefault:"execution-reports"`
	Brokers []string `env:"BROKER" envDefault:"localhost:9092"`
}
