package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "tasklist/internal/errors"
)

// allowedExtensions is the upload allow-list, matched case-insensitively
// against the substring after the last dot.
var allowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadService stores uploaded files in the configured directory.
type UploadService interface {
	SaveFile(ctx context.Context, filename string, src io.Reader) (string, error)
}

type uploadService struct {
	dir string
}

// NewUploadService builds an UploadService writing into dir, creating it
// if needed.
func NewUploadService(dir string) (UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &uploadService{dir: dir}, nil
}

// SaveFile validates the extension, sanitizes the filename and writes the
// content. Concurrent writes to the same name are last-write-wins.
func (s *uploadService) SaveFile(ctx context.Context, filename string, src io.Reader) (string, error) {
	if filename == "" {
		return "", apperrors.ErrEmptyFilename
	}
	if !extensionAllowed(filename) {
		return "", apperrors.ErrFileTypeNotAllowed
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return "", apperrors.ErrEmptyFilename
	}

	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func extensionAllowed(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	_, ok := allowedExtensions[ext]
	return ok
}

// sanitizeFilename strips path components and replaces anything outside
// [A-Za-z0-9._-] so the result cannot escape the upload directory.
func sanitizeFilename(filename string) string {
	// Drop directories from both unix and windows style paths.
	name := filepath.Base(filepath.ToSlash(filename))
	if idx := strings.LastIndexByte(name, '\\'); idx >= 0 {
		name = name[idx+1:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	return name
}
