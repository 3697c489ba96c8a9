package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит настройки клиента
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	PageSize        int
	JWTSecret       string
	UserID          string
	Token           string
	RefreshInterval time.Duration
	LogLevel        string
}

// NewConfig создаёт Config с настройками по умолчанию и применяет переменные окружения.
// Перед чтением окружения подгружается .env, если он есть.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      "http://localhost:8080",
		RequestTimeout:  10 * time.Second,
		PageSize:        5,
		JWTSecret:       "default_jwt_secret",
		UserID:          "local",
		RefreshInterval: 0,
		LogLevel:        "info",
	}

	if v := os.Getenv("LINKDESK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LINKDESK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LINKDESK_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("LINKDESK_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid LINKDESK_PAGE_SIZE: %q", v)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("LINKDESK_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("LINKDESK_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("LINKDESK_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid LINKDESK_REFRESH_INTERVAL: %q", v)
		}
		cfg.RefreshInterval = d
	}
	if v := os.Getenv("LINKDESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Валидация значений
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		cfg.APIBaseURL = "http://" + cfg.APIBaseURL
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout)
	}

	return cfg, nil
}
