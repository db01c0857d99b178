package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Captcha presentation modes. Resolved once at startup, not per request.
const (
	CaptchaModeImage = "image"
	CaptchaModeText  = "text"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	UploadDir     string // Base path for uploaded files (avatars, documents)
	AllowedOrigin string

	SessionSecret string // Key used to sign session cookies
	SessionTTL    time.Duration
	CaptchaTTL    time.Duration
	CaptchaMode   string

	// Admin bootstrap: if both username and password are set and no user
	// exists yet, a credential record is provisioned at startup.
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	captchaTTL, err := time.ParseDuration(getEnv("CAPTCHA_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTCHA_TTL: %w", err)
	}

	mode := getEnv("CAPTCHA_MODE", CaptchaModeImage)
	if mode != CaptchaModeImage && mode != CaptchaModeText {
		return nil, fmt.Errorf("invalid CAPTCHA_MODE %q: must be %q or %q", mode, CaptchaModeImage, CaptchaModeText)
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./homepage.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-in-production"),
		SessionTTL:    sessionTTL,
		CaptchaTTL:    captchaTTL,
		CaptchaMode:   mode,
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
