package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ThumbsSubDir is where gallery thumbnails live inside the upload directory
	ThumbsSubDir = "thumbs"

	// RecaptchaVerifyURL is Google's siteverify endpoint
	RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
)

const (
	defaultThumbnailMaxSize = 300
	defaultPageSize         = 12
)

type Config struct {
	// database path
	DatabasePath string

	// upload storage configuration
	UploadPath string // root for accepted photo uploads
	ThumbsPath string // full-calculated path for gallery thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// gallery page size
	PageSize int

	// reCAPTCHA settings; an empty secret disables verification
	RecaptchaSiteKey   string
	RecaptchaSecret    string
	RecaptchaVerifyURL string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "mahakhub.db")

	uploadPath := getEnvOrDefault("UPLOAD_PATH", filepath.Join(".", "static", "uploads"))
	absUploadPath, err := filepath.Abs(uploadPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for upload directory '%s': %w", uploadPath, err)
	}

	cfg := Config{
		DatabasePath:       dbPath,
		UploadPath:         absUploadPath,
		ThumbsPath:         filepath.Join(absUploadPath, ThumbsSubDir),
		ThumbnailMaxSize:   getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize),
		PageSize:           getEnvIntOrDefault("PAGE_SIZE", defaultPageSize),
		RecaptchaSiteKey:   os.Getenv("RECAPTCHA_SITE_KEY"),
		RecaptchaSecret:    os.Getenv("RECAPTCHA_SECRET_KEY"),
		RecaptchaVerifyURL: getEnvOrDefault("RECAPTCHA_VERIFY_URL", RecaptchaVerifyURL),
	}

	return cfg, nil
}
