package repository

import (
	"context"
	"time"

	"invoice-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ISettingsRepository interface {
	Create(ctx context.Context, settings *models.Settings) error
	// Get returns the singleton record or ErrNotFound.
	Get(ctx context.Context) (*models.Settings, error)
	GetByID(ctx context.Context, id string) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
	Delete(ctx context.Context, id string) error
	IsCompanyReferenced(ctx context.Context, companyID string) (bool, error)
	IsBankReferenced(ctx context.Context, bankID string) (bool, error)
}

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) ISettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	now := time.Now()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	query := `
		INSERT INTO settings (id, invoice_suffix, signatory_name, stamp_image, signature_image,
		                      logo_image, company_id, bank_id, created_at, updated_at)
		VALUES (:id, :invoice_suffix, :signatory_name, :stamp_image, :signature_image,
		        :logo_image, :company_id, :bank_id, :created_at, :updated_at)`

	return namedExecWithCheck(ctx, r.db, "create settings", query, execInsert, settings)
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.GetContext(ctx, &settings, `SELECT * FROM settings LIMIT 1`); err != nil {
		return nil, translate("get settings", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) GetByID(ctx context.Context, id string) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.GetContext(ctx, &settings, `SELECT * FROM settings WHERE id = $1`, id); err != nil {
		return nil, translate("get settings", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.UpdatedAt = time.Now()

	query := `
		UPDATE settings SET
			invoice_suffix = :invoice_suffix,
			signatory_name = :signatory_name,
			stamp_image = :stamp_image,
			signature_image = :signature_image,
			logo_image = :logo_image,
			company_id = :company_id,
			bank_id = :bank_id,
			updated_at = :updated_at
		WHERE id = :id`

	return namedExecWithCheck(ctx, r.db, "update settings", query, execUpdate, settings)
}

func (r *SettingsRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "settings", id)
}

func (r *SettingsRepository) IsCompanyReferenced(ctx context.Context, companyID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM settings WHERE company_id = $1)`, companyID)
}

func (r *SettingsRepository) IsBankReferenced(ctx context.Context, bankID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM settings WHERE bank_id = $1)`, bankID)
}

func (r *SettingsRepository) exists(ctx context.Context, query, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		err = translate("check settings reference", err)
		// Malformed ids cannot be referenced.
		if errorsIsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}
