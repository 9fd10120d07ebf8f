package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the booking core
type Config struct {
	// Server-style runtime configuration
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error

	// Billing configuration
	Billing BillingConfig

	// Seat map configuration
	Seating SeatingConfig

	// Pricing configuration
	Pricing PricingConfig
}

// BillingConfig holds the finalization amount constants
type BillingConfig struct {
	Currency         string        // ISO currency code, default NGN
	TaxRate          float64       // VAT rate applied to the subtotal
	ServiceFee       int64         // flat convenience fee in whole currency units
	MinimumLatency   time.Duration // simulated backend round-trip for finalize
	BookingRefPrefix string        // prefix for generated booking references
}

// SeatingConfig holds seat map generation settings
type SeatingConfig struct {
	PriceIncrement int64 // per-tier price step every two rows
}

// PricingConfig holds the pricing rule settings that are environment-tunable
type PricingConfig struct {
	PremiumZones []string // location IDs that trigger the premium route factor
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Billing: BillingConfig{
			Currency:         getEnv("BILLING_CURRENCY", "NGN"),
			TaxRate:          getEnvAsFloat("BILLING_TAX_RATE", 0.075),
			ServiceFee:       int64(getEnvAsInt("BILLING_SERVICE_FEE", 100)),
			MinimumLatency:   time.Duration(getEnvAsInt("BILLING_MIN_LATENCY_MS", 2000)) * time.Millisecond,
			BookingRefPrefix: getEnv("BILLING_BOOKING_REF_PREFIX", "LG"),
		},
		Seating: SeatingConfig{
			PriceIncrement: int64(getEnvAsInt("SEATING_PRICE_INCREMENT", 50)),
		},
		Pricing: PricingConfig{
			PremiumZones: getEnvAsSlice("PRICING_PREMIUM_ZONES", []string{"victoria-island", "ikoyi", "lekki"}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Billing.TaxRate < 0 || c.Billing.TaxRate >= 1 {
		return fmt.Errorf("BILLING_TAX_RATE must be in [0, 1), got %.3f", c.Billing.TaxRate)
	}
	if c.Billing.ServiceFee < 0 {
		return fmt.Errorf("BILLING_SERVICE_FEE cannot be negative")
	}
	if c.Seating.PriceIncrement < 0 {
		return fmt.Errorf("SEATING_PRICE_INCREMENT cannot be negative")
	}
	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s, using default: %g", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
