package models

import "time"

type Client struct {
	ID          string    `json:"id" db:"id"`
	CompanyName string    `json:"company_name" db:"company_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Email       string    `json:"email" db:"email"`
	Address     string    `json:"address" db:"address"`
	GSTNumber   string    `json:"gst_number" db:"gst_number"`
	IsRecurrent bool      `json:"is_recurrent" db:"is_recurrent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateClientRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email" binding:"required,loose_email"`
	Address     string `json:"address" binding:"required"`
	GSTNumber   string `json:"gst_number" binding:"required"`
	IsRecurrent bool   `json:"is_recurrent"`
}

type UpdateClientRequest struct {
	CompanyName *string `json:"company_name" binding:"omitempty,min=1"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=1"`
	Email       *string `json:"email" binding:"omitempty,loose_email"`
	Address     *string `json:"address" binding:"omitempty,min=1"`
	GSTNumber   *string `json:"gst_number" binding:"omitempty,min=1"`
	IsRecurrent *bool   `json:"is_recurrent"`
}
