package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration resolved from the environment.
type Config struct {
	Port               string
	Env                string
	DatabaseURL        string
	GoogleAPIKey       string
	NominatimURL       string
	NominatimUserAgent string
	JWTSecret          string
	JWTTTL             time.Duration
	SeedPath           string
	GeocodeSchedule    string
	MapRouteTimeout    time.Duration
	AdminUsername      string
	AdminPassword      string
}

// Load reads an optional .env file and resolves configuration from the
// environment. It reports whether a .env file was found so callers can log it.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_USER_AGENT", "delivery-route-map/1.0")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("SEED_PATH", "data/seeds/deliveries.json")
	v.SetDefault("GEOCODE_SCHEDULE", "")
	v.SetDefault("MAP_ROUTE_TIMEOUT", "20s")
	v.SetDefault("ADMIN_USERNAME", "admin")

	cfg := &Config{
		Port:               v.GetString("PORT"),
		Env:                v.GetString("APP_ENV"),
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		GoogleAPIKey:       strings.TrimSpace(v.GetString("GOOGLE_API_KEY")),
		NominatimURL:       strings.TrimRight(v.GetString("NOMINATIM_URL"), "/"),
		NominatimUserAgent: v.GetString("NOMINATIM_USER_AGENT"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SeedPath:           v.GetString("SEED_PATH"),
		GeocodeSchedule:    strings.TrimSpace(v.GetString("GEOCODE_SCHEDULE")),
		AdminUsername:      strings.TrimSpace(v.GetString("ADMIN_USERNAME")),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(v.GetString("JWT_TTL")); err != nil {
		return nil, dotenv, fmt.Errorf("load config: JWT_TTL: %w", err)
	}
	if cfg.MapRouteTimeout, err = time.ParseDuration(v.GetString("MAP_ROUTE_TIMEOUT")); err != nil {
		return nil, dotenv, fmt.Errorf("load config: MAP_ROUTE_TIMEOUT: %w", err)
	}
	if cfg.MapRouteTimeout <= 0 {
		return nil, dotenv, fmt.Errorf("load config: MAP_ROUTE_TIMEOUT must be positive, got %s", cfg.MapRouteTimeout)
	}

	if cfg.DatabaseURL == "" {
		return nil, dotenv, errors.New("load config: DATABASE_URL is required")
	}

	return cfg, dotenv, nil
}

// RequireJWTSecret fails when the token signing secret is not configured.
func (c *Config) RequireJWTSecret() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	return nil
}
