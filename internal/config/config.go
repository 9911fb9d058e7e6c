package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingAPIKey indicates the generative backend credential is absent.
// This is a fatal configuration problem, distinct from the backend being
// unreachable at request time.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// Config aggregates all environment-sourced settings. It is built once at
// startup and injected into the components that need it, so core logic
// never reads the environment directly.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string

	GeminiAPIKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FrontendURL string

	DiscordWebhookURL string

	// Cloudflare R2 settings. All five must be present for uploads to be
	// mirrored to object storage; otherwise R2 is disabled.
	R2AccountID       string
	R2BucketName      string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2PublicURL       string
}

// Load reads the configuration from the process environment. Call
// godotenv.Load before this if a .env file should be honored.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               os.Getenv("PORT"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		FrontendURL:        os.Getenv("FRONTEND_URL"),
		DiscordWebhookURL:  os.Getenv("DISCORD_WEBHOOK_URL"),
		R2AccountID:        os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2PublicURL:        os.Getenv("R2_PUBLIC_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

// R2Enabled reports whether every R2 setting is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != "" &&
		c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2PublicURL != ""
}
