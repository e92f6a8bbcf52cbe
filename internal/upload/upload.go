package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Accepted image MIME types for product uploads.
var allowedTypes = map[string]bool{
	"image/gif":     true,
	"image/jpeg":    true,
	"image/png":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

// ErrInvalidFileType rejects uploads that are not one of the accepted
// image types.
var ErrInvalidFileType = model.NewDomainError(model.ErrCodeValidation, "Invalid file type")

// ErrFileTooLarge rejects uploads over the configured size limit.
var ErrFileTooLarge = model.NewDomainError(model.ErrCodeValidation, "The image is too large")

// Store saves product images on the local filesystem under a single
// directory, naming each file with a fresh uuid.
type Store struct {
	dir      string
	maxBytes int64
	logger   zerolog.Logger
}

// NewStore creates the upload directory if needed and returns a store.
func NewStore(dir string, maxBytes int64, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "upload").Logger(),
	}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists an uploaded image, returning the relative
// path to store on the product record.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}
	if !allowedTypes[header.Header.Get("Content-Type")] {
		return "", ErrInvalidFileType
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(header.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug().Str("file", name).Msg("image stored")
	return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), name)), nil
}

// Delete removes a previously stored image. A missing file is not an error.
func (s *Store) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}

	path := filepath.Join(s.dir, filepath.Base(relPath))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("file", relPath).Msg("failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
