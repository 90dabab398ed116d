package repository

import (
	"context"
	"time"

	"invoice-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IBankDetailRepository interface {
	Create(ctx context.Context, bank *models.BankDetail) error
	GetByID(ctx context.Context, id string) (*models.BankDetail, error)
	GetAll(ctx context.Context) ([]*models.BankDetail, error)
	Update(ctx context.Context, bank *models.BankDetail) error
	Delete(ctx context.Context, id string) error
}

type BankDetailRepository struct {
	db *sqlx.DB
}

func NewBankDetailRepository(db *sqlx.DB) IBankDetailRepository {
	return &BankDetailRepository{db: db}
}

func (r *BankDetailRepository) Create(ctx context.Context, bank *models.BankDetail) error {
	if bank.ID == "" {
		bank.ID = uuid.New().String()
	}
	now := time.Now()
	bank.CreatedAt = now
	bank.UpdatedAt = now

	query := `
		INSERT INTO bank_details (id, bank_name, account_name, account_holder, ifsc_code,
		                          created_at, updated_at)
		VALUES (:id, :bank_name, :account_name, :account_holder, :ifsc_code,
		        :created_at, :updated_at)`

	return namedExecWithCheck(ctx, r.db, "create bank detail", query, execInsert, bank)
}

func (r *BankDetailRepository) GetByID(ctx context.Context, id string) (*models.BankDetail, error) {
	var bank models.BankDetail
	if err := r.db.GetContext(ctx, &bank, `SELECT * FROM bank_details WHERE id = $1`, id); err != nil {
		return nil, translate("get bank detail", err)
	}
	return &bank, nil
}

func (r *BankDetailRepository) GetAll(ctx context.Context) ([]*models.BankDetail, error) {
	banks := []*models.BankDetail{}
	if err := r.db.SelectContext(ctx, &banks, `SELECT * FROM bank_details ORDER BY bank_name`); err != nil {
		return nil, translate("list bank details", err)
	}
	return banks, nil
}

func (r *BankDetailRepository) Update(ctx context.Context, bank *models.BankDetail) error {
	bank.UpdatedAt = time.Now()

	query := `
		UPDATE bank_details SET
			bank_name = :bank_name,
			account_name = :account_name,
			account_holder = :account_holder,
			ifsc_code = :ifsc_code,
			updated_at = :updated_at
		WHERE id = :id`

	return namedExecWithCheck(ctx, r.db, "update bank detail", query, execUpdate, bank)
}

func (r *BankDetailRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "bank_details", id)
}
