package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Site holds the storefront-level settings the checkout maths depend on.
type Site struct {
	SiteName          string
	Currency          string
	ShippingThreshold float64 // subtotal at or above this ships free
	ShippingFlatRate  float64
	PlaceholderImage  string
}

// DefaultSite mirrors the launch configuration of the storefront.
func DefaultSite() Site {
	return Site{
		SiteName:          "SAVZIX",
		Currency:          "GBP",
		ShippingThreshold: 50,
		ShippingFlatRate:  4.99,
		PlaceholderImage:  "/product_bottle.png",
	}
}

// Load reads .env (if present) and returns the site config with any
// environment overrides applied.
func Load() Site {
	_ = godotenv.Load()

	site := DefaultSite()
	if v := os.Getenv("SITE_NAME"); v != "" {
		site.SiteName = v
	}
	if v := os.Getenv("SHIPPING_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			site.ShippingThreshold = f
		}
	}
	if v := os.Getenv("SHIPPING_FLAT_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			site.ShippingFlatRate = f
		}
	}
	if v := os.Getenv("PLACEHOLDER_IMAGE"); v != "" {
		site.PlaceholderImage = v
	}
	return site
}

// DatabaseDSN builds the postgres DSN from DATABASE_URL or the discrete
// DB_* variables.
func DatabaseDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

// RequireEnv returns the value of name or an error naming the missing
// variable. Batch entry points treat a miss as a configuration error.
func RequireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("missing required environment variable: %s", name)
	}
	return value, nil
}
