package repository

import (
	"context"
	"time"

	"invoice-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ICompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetAll(ctx context.Context) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
}

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) ICompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (id, company_name, address, phone_number, gst_number,
		                       pan_number, created_at, updated_at)
		VALUES (:id, :company_name, :address, :phone_number, :gst_number,
		        :pan_number, :created_at, :updated_at)`

	return namedExecWithCheck(ctx, r.db, "create company", query, execInsert, company)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	err := r.db.GetContext(ctx, &company, `SELECT * FROM companies WHERE id = $1`, id)
	if err != nil {
		return nil, translate("get company", err)
	}
	return &company, nil
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]*models.Company, error) {
	companies := []*models.Company{}
	err := r.db.SelectContext(ctx, &companies, `SELECT * FROM companies ORDER BY company_name`)
	if err != nil {
		return nil, translate("list companies", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			company_name = :company_name,
			address = :address,
			phone_number = :phone_number,
			gst_number = :gst_number,
			pan_number = :pan_number,
			updated_at = :updated_at
		WHERE id = :id`

	return namedExecWithCheck(ctx, r.db, "update company", query, execUpdate, company)
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "companies", id)
}
