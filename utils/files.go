package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const MaxUploadMB = 5

var (
	ImageExts        = []string{".png", ".jpg", ".jpeg"}
	unsafeUploadName = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// GenerateSafeFilename prefixes the sanitized base name with the upload
// time in unix milliseconds.
func GenerateSafeFilename(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	safeName := unsafeUploadName.ReplaceAllString(base, "_")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), safeName)
}

func ValidateFile(fileHeader *multipart.FileHeader, allowedExts []string, maxMB int64) error {
	if fileHeader.Size > maxMB*1024*1024 {
		return fmt.Errorf("file too large: %s (max %d MB)", fileHeader.Filename, maxMB)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowedExt := range allowedExts {
		if ext == allowedExt {
			return nil
		}
	}
	return fmt.Errorf("file type not allowed: %s", ext)
}

// SaveUploadedFile copies the upload into dir/name, creating dir.
func SaveUploadedFile(fileHeader *multipart.FileHeader, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return dst, nil
}

// ContentTypeFor guesses an image content type from the file extension.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
