package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	LogFile          string
	RedisURL         string
	CartTTL          time.Duration
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	StripeSecretKey  string
	Currency         string
	JWTSecret        string
	KafkaBrokers     string
	OrderEventsTopic string
	OrderSNSTopicARN string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8088"),
		Env:              getEnv("APP_ENV", "development"),
		LogFile:          os.Getenv("LOG_FILE"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:          time.Hour * 24 * 7, // default 7 days
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		StripeSecretKey:  os.Getenv("STRIPE_API_KEY"),
		Currency:         getEnv("CHECKOUT_CURRENCY", "usd"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", "localhost:9092"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order.confirmed"),
		OrderSNSTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("missing required Postgres environment variables")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
