package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sefazor/ourquotes-backend/pkg/utils"
)

type SessionConfig struct {
	Expiration   time.Duration `validate:"gt=0"`
	CookieSecure bool
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string `validate:"omitempty,email_address"`
	FromName     string
}

type Config struct {
	AppEnv      string `validate:"oneof=development production test"`
	Port        string `validate:"required,numeric"`
	DatabaseURL string `validate:"required"`
	LogLevel    string `validate:"omitempty,oneof=debug info warn error"`
	Session     SessionConfig
	Email       EmailConfig
}

// MailEnabled reports whether a mail provider is configured.
func (c *Config) MailEnabled() bool {
	return c.Email.ResendAPIKey != ""
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	// Session config
	expiration, err := time.ParseDuration(getEnv("SESSION_EXPIRATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION: %w", err)
	}
	cfg.Session.Expiration = expiration

	secure, err := strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE: %w", err)
	}
	cfg.Session.CookieSecure = secure

	// Email config
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "OurQuotes")

	if cfg.MailEnabled() && cfg.Email.FromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when RESEND_API_KEY is set")
	}

	if err := utils.NewValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
