package config

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/anyulbade/tbc-checkout/checkout"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel zerolog.Level

	TBCBaseURL      string
	TBCClientID     string
	TBCClientSecret string
	TBCAPIKey       string
	TBCTimeout      time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getLevel("LOG_LEVEL", zerolog.InfoLevel),
		TBCBaseURL:      getEnv("TBC_BASE_URL", checkout.DefaultBaseURL),
		TBCClientID:     getEnv("TBC_CLIENT_ID", ""),
		TBCClientSecret: getEnv("TBC_CLIENT_SECRET", ""),
		TBCAPIKey:       getEnv("TBC_API_KEY", ""),
		TBCTimeout:      getDuration("TBC_TIMEOUT", checkout.DefaultTimeout),
	}
}

func (c *Config) Validate() error {
	if c.TBCClientID == "" || c.TBCClientSecret == "" || c.TBCAPIKey == "" {
		return errors.New("TBC_CLIENT_ID, TBC_CLIENT_SECRET and TBC_API_KEY must be set")
	}
	return nil
}

func (c *Config) Credentials() checkout.Credentials {
	return checkout.Credentials{
		ClientID:     c.TBCClientID,
		ClientSecret: c.TBCClientSecret,
		APIKey:       c.TBCAPIKey,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getLevel(key string, fallback zerolog.Level) zerolog.Level {
	lvl, err := zerolog.ParseLevel(getEnv(key, ""))
	if err != nil || lvl == zerolog.NoLevel {
		return fallback
	}
	return lvl
}
