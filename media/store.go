// Package media handles uploaded photo storage: extension validation,
// collision-free filenames, gallery thumbnails and EXIF capture times.
package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when an uploaded file's extension is not
// on the image allowlist. Callers surface this to the user instead of
// failing the whole submission.
var ErrUnsupportedType = errors.New("media: unsupported file type")

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

const thumbJpegQuality = 80

// AllowedFile checks if the filename has an accepted image extension
// (case-insensitive).
func AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[ext]
}

// UploadStore persists accepted photo uploads on the local filesystem
// under randomly generated filenames.
type UploadStore struct {
	basePath     string // absolute path to the upload directory
	thumbsPath   string // subdirectory for generated gallery thumbnails
	thumbMaxSize int    // longest side of a generated thumbnail, px
}

// NewUploadStore creates the upload and thumbnail directories if absent
// and returns a store rooted there.
func NewUploadStore(basePath, thumbsPath string, thumbMaxSize int) (*UploadStore, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory '%s': %w", absBasePath, err)
	}
	if err := os.MkdirAll(thumbsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory '%s': %w", thumbsPath, err)
	}

	log.Printf("media.store: Initialized upload store at %s", absBasePath)
	return &UploadStore{
		basePath:     absBasePath,
		thumbsPath:   thumbsPath,
		thumbMaxSize: thumbMaxSize,
	}, nil
}

// BasePath returns the absolute upload directory.
func (s *UploadStore) BasePath() string {
	return s.basePath
}

// SavePhoto stores an uploaded photo under a newly generated UUID filename
// that keeps the original extension, and returns the generated filename
// (never a path). Files without an allowed image extension are rejected
// with ErrUnsupportedType and nothing is written.
func (s *UploadStore) SavePhoto(originalName string, data io.Reader) (string, error) {
	if !AllowedFile(originalName) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, originalName)
	}

	photoUUID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID for upload filename: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := photoUUID.String() + ext

	fullSavePath := filepath.Join(s.basePath, storedName)
	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write upload data to '%s': %w", fullSavePath, err)
	}

	log.Printf("media.store: Saved upload '%s' as %s", originalName, storedName)
	return storedName, nil
}

// GenerateThumb produces a JPEG gallery thumbnail for an already-stored
// photo and returns the thumbnail filename (relative to the thumbs
// directory). The thumbnail keeps the stored photo's UUID base name so it
// is regenerable. Failures here are not fatal to a submission.
func (s *UploadStore) GenerateThumb(storedName string) (string, error) {
	img, err := imaging.Open(filepath.Join(s.basePath, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to open stored photo %s: %w", storedName, err)
	}

	thumb := imaging.Fit(img, s.thumbMaxSize, s.thumbMaxSize, imaging.Lanczos)

	thumbName := strings.TrimSuffix(storedName, filepath.Ext(storedName)) + ".jpg"
	thumbPath := filepath.Join(s.thumbsPath, thumbName)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(thumbJpegQuality)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail to %s: %w", thumbPath, err)
	}

	log.Printf("media.store: Generated thumbnail %s for %s", thumbName, storedName)
	return thumbName, nil
}
