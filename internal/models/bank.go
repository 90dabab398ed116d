package models

import "time"

type BankDetail struct {
	ID            string    `json:"id" db:"id"`
	BankName      string    `json:"bank_name" db:"bank_name"`
	AccountName   string    `json:"account_name" db:"account_name"`
	AccountHolder string    `json:"account_holder" db:"account_holder"`
	IFSCCode      string    `json:"ifsc_code" db:"ifsc_code"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateBankDetailRequest struct {
	BankName      string `json:"bank_name" binding:"required,min=3,max=100"`
	AccountName   string `json:"account_name" binding:"required,min=3,max=100"`
	AccountHolder string `json:"account_holder" binding:"required,min=3,max=100"`
	IFSCCode      string `json:"ifsc_code" binding:"required,ifsc"`
}

type UpdateBankDetailRequest struct {
	BankName      *string `json:"bank_name" binding:"omitempty,min=3,max=100"`
	AccountName   *string `json:"account_name" binding:"omitempty,min=3,max=100"`
	AccountHolder *string `json:"account_holder" binding:"omitempty,min=3,max=100"`
	IFSCCode      *string `json:"ifsc_code" binding:"omitempty,ifsc"`
}
