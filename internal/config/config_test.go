package config

import (
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_PATH", "PORT", "LOG_MODE", "ADMIN_RELOAD_KEY", "SCORING_CONFIG_PATH",
		"GEMINI_API_KEY", "GEMINI_MODEL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_WEBHOOK_URL",
		"TELEGRAM_ALLOWED_USER_IDS", "ADMIN_TELEGRAM_ID", "DEFAULT_DAYS", "DEFAULT_MEALS_PER_DAY",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/concierge.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
		}
		if cfg.GeminiModel != "gemini-1.5-flash" {
			t.Errorf("Expected default GeminiModel, got '%s'", cfg.GeminiModel)
		}
		if cfg.DefaultDays != 3 || cfg.DefaultMealsPerDay != 3 {
			t.Errorf("Expected 3 days of 3 meals, got %d/%d", cfg.DefaultDays, cfg.DefaultMealsPerDay)
		}
		if !cfg.UsesDefaultAdminKey() {
			t.Error("Expected placeholder admin key")
		}
		if cfg.CoachEnabled() {
			t.Error("Expected coach to be disabled without GEMINI_API_KEY")
		}
		if len(cfg.AllowedOrigins) != 0 {
			t.Errorf("Expected no CORS origins, got %v", cfg.AllowedOrigins)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_PATH", "/tmp/x.db")
		t.Setenv("ADMIN_RELOAD_KEY", "s3cret")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("DEFAULT_DAYS", "5")
		t.Setenv("DEFAULT_MEALS_PER_DAY", " 2 ")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "11, 22,,33")
		t.Setenv("ADMIN_TELEGRAM_ID", "11")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://meals.example.com")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/x.db" {
			t.Errorf("Expected DatabasePath to be '/tmp/x.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.UsesDefaultAdminKey() {
			t.Error("Expected custom admin key")
		}
		if !cfg.CoachEnabled() {
			t.Error("Expected coach to be enabled")
		}
		if cfg.DefaultDays != 5 || cfg.DefaultMealsPerDay != 2 {
			t.Errorf("Expected 5 days of 2 meals, got %d/%d", cfg.DefaultDays, cfg.DefaultMealsPerDay)
		}
		if want := []int64{11, 22, 33}; !reflect.DeepEqual(cfg.TelegramAllowedUserIDs, want) {
			t.Errorf("Expected allowed IDs %v, got %v", want, cfg.TelegramAllowedUserIDs)
		}
		if want := []string{"http://localhost:3000", "https://meals.example.com"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
			t.Errorf("Expected origins %v, got %v", want, cfg.AllowedOrigins)
		}
		if cfg.AdminTelegramID != 11 {
			t.Errorf("Expected AdminTelegramID 11, got %d", cfg.AdminTelegramID)
		}
	})

	errorCases := []struct {
		name, key, value, want string
	}{
		{"BadDays", "DEFAULT_DAYS", "three", "DEFAULT_DAYS must be an integer"},
		{"BadMeals", "DEFAULT_MEALS_PER_DAY", "2.5", "DEFAULT_MEALS_PER_DAY must be an integer"},
		{"ZeroDays", "DEFAULT_DAYS", "0", "DEFAULT_DAYS and DEFAULT_MEALS_PER_DAY must be positive"},
		{"BadAdminID", "ADMIN_TELEGRAM_ID", "abc", "ADMIN_TELEGRAM_ID must be an integer"},
		{"BadOrigin", "CORS_ALLOWED_ORIGINS", "localhost:3000", "CORS_ALLOWED_ORIGINS entries must start with http:// or https://"},
		{"BadAllowedIDs", "TELEGRAM_ALLOWED_USER_IDS", "1,x", "TELEGRAM_ALLOWED_USER_IDS must be a comma separated list of integers"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := NewFromEnv()
			if err == nil {
				t.Fatalf("Expected an error for %s=%q, got nil", tc.key, tc.value)
			}
			if err.Error() != tc.want {
				t.Errorf("Expected error '%s', got '%s'", tc.want, err.Error())
			}
		})
	}
}
