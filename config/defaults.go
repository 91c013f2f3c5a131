// Package config provides centralized default values for the dashboard service
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// getEnvString reads environment variable with string fallback
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvInt reads environment variable with fallback to default
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt64 reads environment variable with fallback to default
func getEnvInt64(key string, defaultValue int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func defaultDataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(".", "data")
}

// Server Configuration
var (
	Port = getEnvString("PORT", "8080")
)

// Storage Configuration
var (
	// DataDir is the root for all JSON collections
	DataDir = defaultDataDir()

	// UploadsDir holds user-uploaded logo and preview images
	UploadsDir = getEnvString("UPLOADS_DIR", "uploads")

	// UserDBPath is the SQLite fallback path for the user directory
	UserDBPath = getEnvString("USER_DB_PATH", filepath.Join(defaultDataDir(), "users.db"))

	// Turso credentials for the hosted user directory (optional)
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken   = getEnvString("TURSO_AUTH_TOKEN", "")
)

// Upload Configuration
var (
	// MaxUploadBytes caps logo and preview uploads (5MB)
	MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024)

	// PreviewThumbWidth is the width of generated preview thumbnails
	PreviewThumbWidth = getEnvInt("PREVIEW_THUMB_WIDTH", 600)
)

// Auth Configuration
var (
	JWTSecret = getEnvString("JWT_SECRET", "")

	// SessionMaxAgeSeconds controls the login cookie lifetime (24 hours)
	SessionMaxAgeSeconds = getEnvInt("SESSION_MAX_AGE_SECONDS", 86400)
)

// Email Configuration
var (
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")

	EmailFrom     = getEnvString("NOTIFY_EMAIL_FROM", "noreply@theeace-ag.com")
	EmailFromName = getEnvString("NOTIFY_EMAIL_FROM_NAME", "TheEace Dashboard")

	// NotifyEmail receives team notifications on config updates
	NotifyEmail = getEnvString("NOTIFY_EMAIL_TO", "team@theeace-ag.com")
)
