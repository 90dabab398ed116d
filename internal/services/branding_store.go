package services

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"invoice-service/internal/database/minio"
	"invoice-service/internal/logger"
	"invoice-service/internal/models"
	"invoice-service/utils"

	"github.com/rs/zerolog"
)

// BrandingStore keeps stamp, signature and logo uploads under
// <uploadDir>/<kind>/ and mirrors them to the archive.
type BrandingStore struct {
	uploadDir string
	archive   IDocumentArchive
	now       func() time.Time
	log       zerolog.Logger
}

func NewBrandingStore(uploadDir string, archive IDocumentArchive) *BrandingStore {
	if archive == nil {
		archive = NoopArchive{}
	}
	return &BrandingStore{
		uploadDir: uploadDir,
		archive:   archive,
		now:       time.Now,
		log:       logger.WithComponent("branding-store"),
	}
}

// EnsureDirs creates every image sub-directory.
func (b *BrandingStore) EnsureDirs() error {
	for _, kind := range models.ImageKinds {
		if err := os.MkdirAll(filepath.Join(b.uploadDir, string(kind)), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (b *BrandingStore) Path(kind models.ImageKind, filename string) string {
	return filepath.Join(b.uploadDir, string(kind), filename)
}

// Validate checks every upload before any of them is written.
func (b *BrandingStore) Validate(files map[models.ImageKind]*multipart.FileHeader) error {
	for kind, header := range files {
		if err := utils.ValidateFile(header, utils.ImageExts, utils.MaxUploadMB); err != nil {
			return validationError("UploadImage", string(kind)+"_image: "+err.Error()+". Only PNG/JPEG files up to 5 MB are allowed")
		}
	}
	return nil
}

// Save writes one upload and returns the stored filename.
func (b *BrandingStore) Save(ctx context.Context, kind models.ImageKind, header *multipart.FileHeader) (string, error) {
	name := utils.GenerateSafeFilename(header.Filename, b.now())
	path, err := utils.SaveUploadedFile(header, filepath.Join(b.uploadDir, string(kind)), name)
	if err != nil {
		return "", internalError("UploadImage", "Failed to store uploaded image", err)
	}

	if err := b.archive.FUploadFile(ctx, b.objectName(kind, name), path, utils.ContentTypeFor(name)); err != nil {
		b.log.Warn().Err(err).Str("file", name).Msg("failed to archive branding image")
	}
	return name, nil
}

// SaveAll stores every upload; on failure the files already written are removed.
func (b *BrandingStore) SaveAll(ctx context.Context, files map[models.ImageKind]*multipart.FileHeader) (map[models.ImageKind]string, error) {
	saved := make(map[models.ImageKind]string, len(files))
	for kind, header := range files {
		name, err := b.Save(ctx, kind, header)
		if err != nil {
			b.RemoveAll(ctx, saved)
			return nil, err
		}
		saved[kind] = name
	}
	return saved, nil
}

// Remove deletes a stored image. A missing file only produces a warning.
func (b *BrandingStore) Remove(ctx context.Context, kind models.ImageKind, filename string) {
	if filename == "" {
		return
	}
	path := b.Path(kind, filename)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.log.Warn().Str("path", path).Msg("branding image already gone")
		} else {
			b.log.Warn().Err(err).Str("path", path).Msg("failed to delete branding image")
		}
	}
	if err := b.archive.DeleteFile(ctx, b.objectName(kind, filename)); err != nil {
		b.log.Warn().Err(err).Str("file", filename).Msg("failed to delete archived branding image")
	}
}

func (b *BrandingStore) RemoveAll(ctx context.Context, files map[models.ImageKind]string) {
	for kind, name := range files {
		b.Remove(ctx, kind, name)
	}
}

func (b *BrandingStore) objectName(kind models.ImageKind, filename string) string {
	return minio.BrandingPrefix + string(kind) + "/" + filename
}
