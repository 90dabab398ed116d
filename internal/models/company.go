package models

import "time"

type Company struct {
	ID          string    `json:"id" db:"id"`
	CompanyName string    `json:"company_name" db:"company_name"`
	Address     string    `json:"address" db:"address"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	GSTNumber   string    `json:"gst_number" db:"gst_number"`
	PANNumber   string    `json:"pan_number,omitempty" db:"pan_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateCompanyRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	GSTNumber   string `json:"gst_number" binding:"required"`
	PANNumber   string `json:"pan_number"`
}

type UpdateCompanyRequest struct {
	CompanyName *string `json:"company_name" binding:"omitempty,min=1"`
	Address     *string `json:"address" binding:"omitempty,min=1"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=1"`
	GSTNumber   *string `json:"gst_number" binding:"omitempty,min=1"`
	PANNumber   *string `json:"pan_number"`
}
