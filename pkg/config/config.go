package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject        string
	FirebaseApiKey         string
	ServiceAccountJSON     string
	ServiceAccountPath     string
	StorageBucket          string
	StoreBackend           string
	IdentityToolkitBaseURL string

	CurrencyCode   string
	CurrencySymbol string
	PriceLocale    string

	RateLimitRPS       float64
	RateLimitBurst     int
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:        getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:         getEnv("FIREBASE_API_KEY", ""),
		ServiceAccountJSON:     getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath:     getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:          getEnv("STORAGE_BUCKET", ""),
		StoreBackend:           getEnv("STORE_BACKEND", BackendFirestore),
		IdentityToolkitBaseURL: getEnv("IDENTITY_TOOLKIT_URL", "https://identitytoolkit.googleapis.com"),

		CurrencyCode:   getEnv("CURRENCY_CODE", "INR"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		PriceLocale:    getEnv("PRICE_LOCALE", "en-IN"),

		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),
		AuthRateLimitRPS:   getEnvAsFloat("AUTH_RATE_LIMIT_RPS", 0.2),
		AuthRateLimitBurst: getEnvAsInt("AUTH_RATE_LIMIT_BURST", 5),
	}

	if config.StoreBackend != BackendFirestore && config.StoreBackend != BackendMemory {
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendFirestore, BackendMemory, config.StoreBackend)
	}
	if _, err := currency.ParseISO(config.CurrencyCode); err != nil {
		return nil, fmt.Errorf("invalid CURRENCY_CODE %q: %w", config.CurrencyCode, err)
	}
	if _, err := language.Parse(config.PriceLocale); err != nil {
		return nil, fmt.Errorf("invalid PRICE_LOCALE %q: %w", config.PriceLocale, err)
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Locale is the parsed PriceLocale. Load has already validated it.
func (c *Config) Locale() language.Tag {
	return language.Make(c.PriceLocale)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}
