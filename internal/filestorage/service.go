// Package filestorage keeps the local photo previews of listing drafts.
// Nothing stored here is part of the dataset; previews are removed when their draft closes.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxPreviewSize matches the upload hint shown by the photo picker.
const MaxPreviewSize = 5 << 20

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// FileStorageService stores preview images under a base directory and maps
// them to public URLs.
type FileStorageService struct {
	storagePath   string
	publicBaseURL string
	logger        *zap.Logger
}

// NewFileStorageService creates the base directory if needed.
func NewFileStorageService(storagePath, publicBaseURL string, logger *zap.Logger) (*FileStorageService, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", storagePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("FileStorageService initialized", zap.String("storagePath", storagePath))
	return &FileStorageService{
		storagePath:   storagePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.Named("FileStorage"),
	}, nil
}

// StoragePath is the directory served at the public base URL.
func (s *FileStorageService) StoragePath() string { return s.storagePath }

// SaveUploadedFile writes an image upload into subDir under a fresh name and
// returns its path relative to the storage root, e.g. "drafts/<id>/<uuid>.jpg".
func (s *FileStorageService) SaveUploadedFile(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}
	if fileHeader.Size > MaxPreviewSize {
		return "", fmt.Errorf("file %q is larger than %d bytes", fileHeader.Filename, MaxPreviewSize)
	}

	extension, err := imageExtension(fileHeader)
	if err != nil {
		return "", err
	}
	cleanSubDir, err := cleanRelative(subDir)
	if err != nil {
		s.logger.Warn("Rejected storage sub-directory", zap.String("subDir", subDir))
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	destinationDir := filepath.Join(s.storagePath, cleanSubDir)
	if err := os.MkdirAll(destinationDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}
	name := uuid.NewString() + extension
	destinationPath := filepath.Join(destinationDir, name)

	dst, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, MaxPreviewSize+1))
	closeErr := dst.Close()
	if err == nil && written > MaxPreviewSize {
		err = fmt.Errorf("file %q is larger than %d bytes", fileHeader.Filename, MaxPreviewSize)
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destinationPath)
		s.logger.Error("Failed to save preview", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Debug("Preview saved", zap.String("path", destinationPath))
	return filepath.ToSlash(filepath.Join(cleanSubDir, name)), nil
}

// PublicURL maps a relative path returned by SaveUploadedFile to its URL.
func (s *FileStorageService) PublicURL(relativePath string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(path.Clean("/"+relativePath), "/")
}

// RelativePath is the inverse of PublicURL. ok is false for URLs not served from this store.
func (s *FileStorageService) RelativePath(publicURL string) (string, bool) {
	prefix := s.publicBaseURL + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(publicURL, prefix)
	if _, err := cleanRelative(rel); err != nil || rel == "" {
		return "", false
	}
	return rel, true
}

// DeleteFile removes one file. A missing file is not an error.
func (s *FileStorageService) DeleteFile(relativePath string) error {
	if relativePath == "" {
		return fmt.Errorf("relative path cannot be empty")
	}
	clean, err := cleanRelative(relativePath)
	if err != nil {
		s.logger.Warn("Attempt to delete file with path traversal", zap.String("relativePath", relativePath))
		return fmt.Errorf("invalid file path for deletion")
	}
	fullPath := filepath.Join(s.storagePath, clean)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

// DeleteDir removes subDir and everything in it.
func (s *FileStorageService) DeleteDir(subDir string) error {
	clean, err := cleanRelative(subDir)
	if err != nil || clean == "." {
		return fmt.Errorf("invalid directory for deletion: %q", subDir)
	}
	fullPath := filepath.Join(s.storagePath, clean)
	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to delete directory %s: %w", fullPath, err)
	}
	s.logger.Debug("Preview directory deleted", zap.String("path", fullPath))
	return nil
}

func cleanRelative(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path %q", p)
	}
	return clean, nil
}

func imageExtension(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fh.Filename)))
	if allowedExtensions[ext] {
		if ext == ".jpeg" {
			ext = ".jpg"
		}
		return ext, nil
	}
	contentType := fh.Header.Get("Content-Type")
	for prefix, mapped := range extensionsByType {
		if strings.HasPrefix(contentType, prefix) {
			return mapped, nil
		}
	}
	return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
}
