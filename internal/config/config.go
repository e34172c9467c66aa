// Package config loads provider endpoints and runtime settings for apiviews.
//
// Values are resolved in order: built-in defaults, a .env file in the working
// directory (if present), then the process environment. The command layer may
// override individual fields from flags before calling Validate.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default provider base URLs.
const (
	DefaultBankURL     = "https://bank-apis.justinclicks.com/API/V1"
	DefaultCocktailURL = "https://www.thecocktaildb.com/api/json/v1/1"
	DefaultMealURL     = "https://www.themealdb.com/api/json/v1/1"
)

// DefaultHTTPTimeout bounds every provider request.
const DefaultHTTPTimeout = 10 * time.Second

// Config is the resolved runtime configuration.
type Config struct {
	Providers   ProvidersConfig
	HTTPTimeout time.Duration
	Log         LogConfig
	Trace       TraceConfig
}

// ProvidersConfig holds one base URL per upstream API.
type ProvidersConfig struct {
	BankURL     string
	CocktailURL string
	MealURL     string
}

// LogConfig controls where and how logs are written.
// An empty File discards logs; stdout belongs to the TUI.
type LogConfig struct {
	File   string
	Level  string
	Format string
}

// TraceConfig enables OTLP export when Endpoint is set.
type TraceConfig struct {
	Endpoint    string
	ServiceName string
}

// Load reads .env (ignored when missing) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout := DefaultHTTPTimeout
	if raw := os.Getenv("APIVIEWS_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("APIVIEWS_HTTP_TIMEOUT %q: %w", raw, err)
		}
		timeout = d
	}

	return &Config{
		Providers: ProvidersConfig{
			BankURL:     getEnv("APIVIEWS_BANK_URL", DefaultBankURL),
			CocktailURL: getEnv("APIVIEWS_COCKTAIL_URL", DefaultCocktailURL),
			MealURL:     getEnv("APIVIEWS_MEAL_URL", DefaultMealURL),
		},
		HTTPTimeout: timeout,
		Log: LogConfig{
			File:   os.Getenv("APIVIEWS_LOG_FILE"),
			Level:  getEnv("APIVIEWS_LOG_LEVEL", "info"),
			Format: getEnv("APIVIEWS_LOG_FORMAT", "text"),
		},
		Trace: TraceConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "apiviews"),
		},
	}, nil
}

// Validate checks that every provider URL (and the OTLP endpoint, when set)
// is an absolute http(s) URL and that the timeout is positive.
func (c *Config) Validate() error {
	urls := []struct {
		name string
		raw  string
	}{
		{"bank", c.Providers.BankURL},
		{"cocktail", c.Providers.CocktailURL},
		{"meal", c.Providers.MealURL},
	}
	for _, u := range urls {
		if err := validateBaseURL(u.raw); err != nil {
			return fmt.Errorf("%s base URL: %w", u.name, err)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.Trace.Endpoint != "" {
		if err := validateBaseURL(c.Trace.Endpoint); err != nil {
			return fmt.Errorf("otlp endpoint: %w", err)
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q: missing host", raw)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
