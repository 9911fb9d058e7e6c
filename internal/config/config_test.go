package config

import (
	"errors"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/learnhub_test")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when DATABASE_URL is unset")
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/learnhub_test")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestR2Enabled(t *testing.T) {
	cfg := &Config{
		R2AccountID:       "acc",
		R2BucketName:      "bucket",
		R2AccessKeyID:     "key",
		R2SecretAccessKey: "secret",
		R2PublicURL:       "https://cdn.example.com",
	}
	if !cfg.R2Enabled() {
		t.Error("expected R2 enabled with all settings present")
	}

	cfg.R2PublicURL = ""
	if cfg.R2Enabled() {
		t.Error("expected R2 disabled with a missing setting")
	}
}
