package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAdminKey is the placeholder admin signing key; callers should warn when it is in use.
const DefaultAdminKey = "change-me"

// Config holds the configuration for the application.
type Config struct {
	DatabasePath      string
	Port              string
	LogMode           string
	AdminKey          string
	ScoringConfigPath string
	AllowedOrigins    []string

	GeminiAPIKey string
	GeminiModel  string

	DefaultDays        int
	DefaultMealsPerDay int

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first; real environment variables win.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:       getenv("DATABASE_PATH", "data/concierge.db"),
		Port:               getenv("PORT", "8080"),
		LogMode:            getenv("LOG_MODE", "development"),
		AdminKey:           getenv("ADMIN_RELOAD_KEY", DefaultAdminKey),
		ScoringConfigPath:  os.Getenv("SCORING_CONFIG_PATH"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	var err error
	if cfg.DefaultDays, err = getInt("DEFAULT_DAYS", 3); err != nil {
		return nil, err
	}
	if cfg.DefaultMealsPerDay, err = getInt("DEFAULT_MEALS_PER_DAY", 3); err != nil {
		return nil, err
	}
	if cfg.DefaultDays < 1 || cfg.DefaultMealsPerDay < 1 {
		return nil, fmt.Errorf("DEFAULT_DAYS and DEFAULT_MEALS_PER_DAY must be positive")
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS entries must start with http:// or https://")
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
	}

	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID must be an integer")
		}
		cfg.AdminTelegramID = id
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS must be a comma separated list of integers")
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	return cfg, nil
}

// CoachEnabled reports whether a Gemini key is configured.
func (c *Config) CoachEnabled() bool {
	return c.GeminiAPIKey != ""
}

// UsesDefaultAdminKey reports whether the admin signing key was left at its placeholder.
func (c *Config) UsesDefaultAdminKey() bool {
	return c.AdminKey == DefaultAdminKey
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
