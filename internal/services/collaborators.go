package services

import (
	"context"

	"invoice-service/internal/email"
)

// IDocumentArchive mirrors generated and uploaded files to object storage.
// Archive failures are logged by callers and never fail a request.
type IDocumentArchive interface {
	FUploadFile(ctx context.Context, objectName, filePath, contentType string) error
	DeleteFile(ctx context.Context, objectName string) error
}

// NoopArchive is used when no object store is configured.
type NoopArchive struct{}

func (NoopArchive) FUploadFile(context.Context, string, string, string) error { return nil }

func (NoopArchive) DeleteFile(context.Context, string) error { return nil }

// IEmailSender delivers one message per call.
type IEmailSender interface {
	Send(msg email.Message) error
}
