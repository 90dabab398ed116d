package minio

import (
	"context"
	"fmt"
	"strconv"

	"invoice-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// Object name prefixes inside the bucket.
const (
	InvoicePrefix  = "invoices/"
	BrandingPrefix = "branding/"
)

// MinioClient archives rendered invoices and branding images in one bucket.
type MinioClient struct {
	client *minio.Client
	bucket string
}

func NewMinioClient(ctx context.Context, cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Warn().Str("value", cfg.MinioSecure).Msg("invalid MINIO_SECURE, defaulting to false")
		isSecure = false
	}

	client, err := minio.New(cfg.MinioUrl, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO client: %w", err)
	}

	mc := &MinioClient{client: client, bucket: cfg.MinioBucket}
	if err := mc.ensureBucket(ctx, cfg.MinioLocation); err != nil {
		return nil, err
	}
	return mc, nil
}

func (mc *MinioClient) ensureBucket(ctx context.Context, location string) error {
	exists, err := mc.client.BucketExists(ctx, mc.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := mc.client.MakeBucket(ctx, mc.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("error creating bucket %s: %w", mc.bucket, err)
	}
	log.Info().Str("bucket", mc.bucket).Msg("bucket created")
	return nil
}

func (mc *MinioClient) FUploadFile(ctx context.Context, objectName, filePath, contentType string) error {
	_, err := mc.client.FPutObject(ctx, mc.bucket, objectName, filePath,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}

func (mc *MinioClient) DeleteFile(ctx context.Context, objectName string) error {
	if objectName == "" {
		return fmt.Errorf("objectName cannot be empty")
	}
	if err := mc.client.RemoveObject(ctx, mc.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", objectName, err)
	}
	return nil
}
