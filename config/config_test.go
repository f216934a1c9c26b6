package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("UPLOAD_PATH", "")
	t.Setenv("RECAPTCHA_SECRET_KEY", "")
	t.Setenv("THUMBNAIL_MAX_SIZE", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mahakhub.db", cfg.DatabasePath)
	assert.True(t, filepath.IsAbs(cfg.UploadPath))
	assert.Equal(t, filepath.Join(cfg.UploadPath, ThumbsSubDir), cfg.ThumbsPath)
	assert.Equal(t, 300, cfg.ThumbnailMaxSize)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Empty(t, cfg.RecaptchaSecret)
	assert.Equal(t, RecaptchaVerifyURL, cfg.RecaptchaVerifyURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "data/registry.db")
	t.Setenv("UPLOAD_PATH", "/srv/uploads")
	t.Setenv("RECAPTCHA_SECRET_KEY", "s3cret")
	t.Setenv("RECAPTCHA_VERIFY_URL", "http://localhost:9999/verify")
	t.Setenv("THUMBNAIL_MAX_SIZE", "150")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "data/registry.db", cfg.DatabasePath)
	assert.Equal(t, "/srv/uploads", cfg.UploadPath)
	assert.Equal(t, "s3cret", cfg.RecaptchaSecret)
	assert.Equal(t, "http://localhost:9999/verify", cfg.RecaptchaVerifyURL)
	assert.Equal(t, 150, cfg.ThumbnailMaxSize)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("THUMBNAIL_MAX_SIZE", "not-a-number")
	t.Setenv("PAGE_SIZE", "-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.ThumbnailMaxSize)
	assert.Equal(t, 12, cfg.PageSize)
}
