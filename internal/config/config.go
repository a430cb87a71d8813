package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store backends
const (
	StoreBackendDynamo = "dynamo"
	StoreBackendMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Store       StoreConfig
	RateLimit   RateLimitConfig
}

// StoreConfig holds key-value store configuration
type StoreConfig struct {
	Backend           string
	TableName         string
	Region            string
	Endpoint          string // local DynamoDB override, empty in production
	MaxRetryAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
}

// RateLimitConfig holds rate limiting configuration for server mode
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	setDefaults()

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Store: StoreConfig{
			Backend:           viper.GetString("STORE_BACKEND"),
			TableName:         viper.GetString("TABLE_NAME"),
			Region:            viper.GetString("AWS_REGION"),
			Endpoint:          viper.GetString("DYNAMODB_ENDPOINT"),
			MaxRetryAttempts:  viper.GetInt("STORE_MAX_RETRY_ATTEMPTS"),
			RetryInitialDelay: viper.GetDuration("STORE_RETRY_INITIAL_DELAY"),
			RetryMaxDelay:     viper.GetDuration("STORE_RETRY_MAX_DELAY"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           viper.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetOptimizedConfig loads configuration tuned for Lambda cold starts:
// no .env lookup, serverless adjustments applied.
func GetOptimizedConfig() (*Config, error) {
	viper.AutomaticEnv()
	setDefaults()

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Store: StoreConfig{
			Backend:           StoreBackendDynamo,
			TableName:         viper.GetString("TABLE_NAME"),
			Region:            viper.GetString("AWS_REGION"),
			Endpoint:          viper.GetString("DYNAMODB_ENDPOINT"),
			MaxRetryAttempts:  viper.GetInt("STORE_MAX_RETRY_ATTEMPTS"),
			RetryInitialDelay: viper.GetDuration("STORE_RETRY_INITIAL_DELAY"),
			RetryMaxDelay:     viper.GetDuration("STORE_RETRY_MAX_DELAY"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_BACKEND", StoreBackendDynamo)
	viper.SetDefault("TABLE_NAME", "user-profiles")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("STORE_MAX_RETRY_ATTEMPTS", 3)
	viper.SetDefault("STORE_RETRY_INITIAL_DELAY", "100ms")
	viper.SetDefault("STORE_RETRY_MAX_DELAY", "2s")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
}

// Validate checks the configuration for contradictions
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendDynamo, StoreBackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q",
			c.Store.Backend, StoreBackendDynamo, StoreBackendMemory)
	}

	if c.Store.Backend == StoreBackendDynamo && c.Store.TableName == "" {
		return fmt.Errorf("TABLE_NAME is required for the dynamo backend")
	}

	if c.Store.MaxRetryAttempts < 1 {
		return fmt.Errorf("STORE_MAX_RETRY_ATTEMPTS must be at least 1")
	}

	return nil
}
