package models

import (
	"mime/multipart"
	"time"
)

// ImageKind names an upload sub-directory for branding images.
type ImageKind string

const (
	ImageStamp     ImageKind = "stamp"
	ImageSignature ImageKind = "signature"
	ImageLogo      ImageKind = "logo"
)

var ImageKinds = []ImageKind{ImageStamp, ImageSignature, ImageLogo}

// Settings is the single global invoicing configuration record.
type Settings struct {
	ID             string    `json:"id" db:"id"`
	InvoiceSuffix  string    `json:"invoice_suffix" db:"invoice_suffix"`
	SignatoryName  string    `json:"signatory_name" db:"signatory_name"`
	StampImage     string    `json:"stamp_image,omitempty" db:"stamp_image"`
	SignatureImage string    `json:"signature_image,omitempty" db:"signature_image"`
	LogoImage      string    `json:"logo_image,omitempty" db:"logo_image"`
	CompanyID      string    `json:"company_id" db:"company_id"`
	BankID         string    `json:"bank_id" db:"bank_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Company *Company    `json:"company,omitempty" db:"-"`
	Bank    *BankDetail `json:"bank,omitempty" db:"-"`
}

func (s *Settings) Image(kind ImageKind) string {
	switch kind {
	case ImageStamp:
		return s.StampImage
	case ImageSignature:
		return s.SignatureImage
	case ImageLogo:
		return s.LogoImage
	}
	return ""
}

func (s *Settings) SetImage(kind ImageKind, filename string) {
	switch kind {
	case ImageStamp:
		s.StampImage = filename
	case ImageSignature:
		s.SignatureImage = filename
	case ImageLogo:
		s.LogoImage = filename
	}
}

// SettingsRequest is bound from JSON or from a multipart form carrying the
// optional branding images.
type SettingsRequest struct {
	InvoiceSuffix string `json:"invoice_suffix" form:"invoice_suffix" binding:"required,min=3,max=20,invoice_suffix"`
	SignatoryName string `json:"signatory_name" form:"signatory_name" binding:"required,min=3,max=100"`
	CompanyID     string `json:"company_id" form:"company_id" binding:"required"`
	BankID        string `json:"bank_id" form:"bank_id" binding:"required"`

	StampImage     *multipart.FileHeader `json:"-" form:"stamp_image"`
	SignatureImage *multipart.FileHeader `json:"-" form:"signature_image"`
	LogoImage      *multipart.FileHeader `json:"-" form:"logo_image"`
}

func (r *SettingsRequest) Files() map[ImageKind]*multipart.FileHeader {
	files := make(map[ImageKind]*multipart.FileHeader)
	if r.StampImage != nil {
		files[ImageStamp] = r.StampImage
	}
	if r.SignatureImage != nil {
		files[ImageSignature] = r.SignatureImage
	}
	if r.LogoImage != nil {
		files[ImageLogo] = r.LogoImage
	}
	return files
}

type SettingsDetails struct {
	Company *Company    `json:"company"`
	Bank    *BankDetail `json:"bank"`
}
