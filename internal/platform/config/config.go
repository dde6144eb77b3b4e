package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	LogLevel          string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	RateLimit         string
	CORSAllowed       []string

	// Currency engine
	BaseCurrency      string
	RatesSourceURL    string
	RatesCachePath    string
	RatesCacheTTL     time.Duration
	RatesFetchTimeout time.Duration
	RatesRetryBackoff time.Duration
	Timezone          *time.Location

	// Budget alerts
	BudgetAlertThreshold decimal.Decimal
	NotifyAMQPURL        string
	NotifyAMQPExchange   string
	NotifyAMQPQueue      string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "savoo")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("BASE_CURRENCY", "PLN")
	v.SetDefault("RATES_SOURCE_URL", "https://api.nbp.pl/api/exchangerates/tables/A?format=json")
	v.SetDefault("RATES_CACHE_PATH", "currency_rates_cache.json")
	v.SetDefault("RATES_CACHE_TTL", "24h")
	v.SetDefault("RATES_FETCH_TIMEOUT", "5s")
	v.SetDefault("RATES_RETRY_BACKOFF", "5m")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("BUDGET_ALERT_THRESHOLD", "0.9")
	v.SetDefault("NOTIFY_AMQP_URL", "")
	v.SetDefault("NOTIFY_AMQP_EXCHANGE", "savoo")
	v.SetDefault("NOTIFY_AMQP_QUEUE", "budget-notifications")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		BaseCurrency:       strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY"))),
		RatesSourceURL:     v.GetString("RATES_SOURCE_URL"),
		RatesCachePath:     v.GetString("RATES_CACHE_PATH"),
		NotifyAMQPURL:      v.GetString("NOTIFY_AMQP_URL"),
		NotifyAMQPExchange: v.GetString("NOTIFY_AMQP_EXCHANGE"),
		NotifyAMQPQueue:    v.GetString("NOTIFY_AMQP_QUEUE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.BaseCurrency == "" {
		return nil, fmt.Errorf("BASE_CURRENCY cannot be empty")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowed = append(cfg.CORSAllowed, o)
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_EXPIRY_DURATION", &cfg.JWTExpiryDuration},
		{"RATES_CACHE_TTL", &cfg.RatesCacheTTL},
		{"RATES_FETCH_TIMEOUT", &cfg.RatesFetchTimeout},
		{"RATES_RETRY_BACKOFF", &cfg.RatesRetryBackoff},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid value for TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	threshold, err := decimal.NewFromString(v.GetString("BUDGET_ALERT_THRESHOLD"))
	if err != nil || !threshold.IsPositive() {
		return nil, fmt.Errorf("invalid value for BUDGET_ALERT_THRESHOLD: %q", v.GetString("BUDGET_ALERT_THRESHOLD"))
	}
	cfg.BudgetAlertThreshold = threshold

	return cfg, nil
}
