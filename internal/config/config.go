// Package config loads application configuration from the environment,
// plus an optional .env file for local development. A missing required
// value is a startup error.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port string

	// Gemini advice service.
	GeminiAPIKey  string
	GeminiModel   string
	AdviceTimeout time.Duration

	// Login credentials for the single dashboard user.
	LoginEmail    string
	LoginPassword string

	// DefaultAccountID is the account the action dispatcher charges
	// when a payload names none.
	DefaultAccountID string

	// GCSBucket enables GCS-backed bill storage when set; empty keeps
	// bill files in memory.
	GCSBucket string
}

// Load reads configuration from environment variables and a .env file
// if present.
func Load() (*Config, error) {
	// Ignore the error: the .env file is optional.
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("ADVICE_TIMEOUT", "30s")
	viper.SetDefault("DEFAULT_ACCOUNT_ID", "acc_1")
	viper.SetDefault("GCS_BUCKET", "")
	viper.AutomaticEnv()

	cfg := &Config{
		Port:             viper.GetString("PORT"),
		GeminiAPIKey:     viper.GetString("GEMINI_API_KEY"),
		GeminiModel:      viper.GetString("GEMINI_MODEL"),
		AdviceTimeout:    viper.GetDuration("ADVICE_TIMEOUT"),
		LoginEmail:       viper.GetString("LOGIN_EMAIL"),
		LoginPassword:    viper.GetString("LOGIN_PASSWORD"),
		DefaultAccountID: viper.GetString("DEFAULT_ACCOUNT_ID"),
		GCSBucket:        viper.GetString("GCS_BUCKET"),
	}

	var missing []string
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.LoginEmail == "" {
		missing = append(missing, "LOGIN_EMAIL")
	}
	if cfg.LoginPassword == "" {
		missing = append(missing, "LOGIN_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
