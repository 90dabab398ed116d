package services

import (
	"context"
	"errors"

	"invoice-service/internal/models"
	"invoice-service/internal/repository"
	"invoice-service/utils"
)

type ISettingsService interface {
	CreateSettings(ctx context.Context, req models.SettingsRequest) (*models.Settings, error)
	// GetSettings returns the singleton with company and bank populated.
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, id string, req models.SettingsRequest) (*models.Settings, error)
	DeleteSettings(ctx context.Context, id string) error
	GetDetails(ctx context.Context, companyID, bankID string) (*models.SettingsDetails, error)
}

type SettingsService struct {
	settingsRepo repository.ISettingsRepository
	companyRepo  repository.ICompanyRepository
	bankRepo     repository.IBankDetailRepository
	branding     *BrandingStore
}

func NewSettingsService(
	settingsRepo repository.ISettingsRepository,
	companyRepo repository.ICompanyRepository,
	bankRepo repository.IBankDetailRepository,
	branding *BrandingStore,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		companyRepo:  companyRepo,
		bankRepo:     bankRepo,
		branding:     branding,
	}
}

const (
	settingsExistMessage = "Settings already exist. Update the existing settings instead"
	invalidSuffixMessage = "invoice_suffix may only contain letters, digits and hyphens"
)

func (s *SettingsService) CreateSettings(ctx context.Context, req models.SettingsRequest) (*models.Settings, error) {
	const op = "CreateSettings"
	utils.TrimAllStringFields(&req)
	if !utils.ValidateInvoiceSuffix(req.InvoiceSuffix) {
		return nil, validationError(op, invalidSuffixMessage)
	}

	// Advisory only; the settings_singleton index is authoritative.
	if _, err := s.settingsRepo.Get(ctx); err == nil {
		return nil, validationError(op, settingsExistMessage)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, repoError(op, "Settings", err)
	}

	company, bank, err := s.resolveReferences(ctx, op, req.CompanyID, req.BankID)
	if err != nil {
		return nil, err
	}

	files := req.Files()
	if err := s.branding.Validate(files); err != nil {
		return nil, err
	}
	saved, err := s.branding.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	settings := &models.Settings{
		InvoiceSuffix: req.InvoiceSuffix,
		SignatoryName: req.SignatoryName,
		CompanyID:     req.CompanyID,
		BankID:        req.BankID,
	}
	for kind, name := range saved {
		settings.SetImage(kind, name)
	}

	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		s.branding.RemoveAll(ctx, saved)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindConflict, op, settingsExistMessage, err)
		}
		return nil, repoError(op, "Settings", err)
	}

	settings.Company = company
	settings.Bank = bank
	return settings, nil
}

func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("GetSettings", "No settings found")
		}
		return nil, repoError("GetSettings", "Settings", err)
	}
	if err := s.populate(ctx, settings); err != nil {
		return nil, repoError("GetSettings", "Settings", err)
	}
	return settings, nil
}

// UpdateSettings replaces all four required fields. Uploaded images replace
// the previous files, which are removed once the update is stored.
func (s *SettingsService) UpdateSettings(ctx context.Context, id string, req models.SettingsRequest) (*models.Settings, error) {
	const op = "UpdateSettings"
	utils.TrimAllStringFields(&req)
	if !utils.ValidateInvoiceSuffix(req.InvoiceSuffix) {
		return nil, validationError(op, invalidSuffixMessage)
	}

	settings, err := s.settingsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(op, "Settings not found")
		}
		return nil, repoError(op, "Settings", err)
	}

	company, bank, err := s.resolveReferences(ctx, op, req.CompanyID, req.BankID)
	if err != nil {
		return nil, err
	}

	files := req.Files()
	if err := s.branding.Validate(files); err != nil {
		return nil, err
	}
	saved, err := s.branding.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	replaced := make(map[models.ImageKind]string)
	for kind, name := range saved {
		if old := settings.Image(kind); old != "" {
			replaced[kind] = old
		}
		settings.SetImage(kind, name)
	}
	settings.InvoiceSuffix = req.InvoiceSuffix
	settings.SignatoryName = req.SignatoryName
	settings.CompanyID = req.CompanyID
	settings.BankID = req.BankID

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		s.branding.RemoveAll(ctx, saved)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(op, "Settings not found")
		}
		return nil, repoError(op, "Settings", err)
	}
	s.branding.RemoveAll(ctx, replaced)

	settings.Company = company
	settings.Bank = bank
	return settings, nil
}

// DeleteSettings removes the image files first, then the record. Company
// and bank records are left in place.
func (s *SettingsService) DeleteSettings(ctx context.Context, id string) error {
	const op = "DeleteSettings"

	settings, err := s.settingsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(op, "Settings not found")
		}
		return repoError(op, "Settings", err)
	}

	for _, kind := range models.ImageKinds {
		s.branding.Remove(ctx, kind, settings.Image(kind))
	}

	if err := s.settingsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(op, "Settings not found")
		}
		return repoError(op, "Settings", err)
	}
	return nil
}

func (s *SettingsService) GetDetails(ctx context.Context, companyID, bankID string) (*models.SettingsDetails, error) {
	const op = "GetSettingsDetails"

	if companyID == "" || bankID == "" {
		return nil, validationError(op, "Missing required query parameters: company_id, bank_id")
	}
	company, bank, err := s.resolveReferences(ctx, op, companyID, bankID)
	if err != nil {
		return nil, err
	}
	return &models.SettingsDetails{Company: company, Bank: bank}, nil
}

func (s *SettingsService) resolveReferences(ctx context.Context, op, companyID, bankID string) (*models.Company, *models.BankDetail, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, validationError(op, "Invalid company_id. Company does not exist")
		}
		return nil, nil, repoError(op, "Company", err)
	}
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, validationError(op, "Invalid bank_id. Bank detail does not exist")
		}
		return nil, nil, repoError(op, "Bank detail", err)
	}
	return company, bank, nil
}

func (s *SettingsService) populate(ctx context.Context, settings *models.Settings) error {
	company, err := s.companyRepo.GetByID(ctx, settings.CompanyID)
	if err != nil {
		return err
	}
	bank, err := s.bankRepo.GetByID(ctx, settings.BankID)
	if err != nil {
		return err
	}
	settings.Company = company
	settings.Bank = bank
	return nil
}
