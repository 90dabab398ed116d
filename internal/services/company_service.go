package services

import (
	"context"

	"invoice-service/internal/models"
	"invoice-service/internal/repository"
	"invoice-service/utils"
)

type ICompanyService interface {
	CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error)
	GetAllCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*models.Company, error)
	UpdateCompany(ctx context.Context, id string, req models.UpdateCompanyRequest) (*models.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

type CompanyService struct {
	companyRepo  repository.ICompanyRepository
	settingsRepo repository.ISettingsRepository
}

func NewCompanyService(companyRepo repository.ICompanyRepository, settingsRepo repository.ISettingsRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, settingsRepo: settingsRepo}
}

func (s *CompanyService) CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error) {
	utils.TrimAllStringFields(&req)
	company := &models.Company{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		GSTNumber:   req.GSTNumber,
		PANNumber:   req.PANNumber,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, repoError("CreateCompany", "Company", err)
	}
	return company, nil
}

func (s *CompanyService) GetAllCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.companyRepo.GetAll(ctx)
	if err != nil {
		return nil, repoError("GetAllCompanies", "Company", err)
	}
	return companies, nil
}

func (s *CompanyService) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("GetCompanyByID", "Company", err)
	}
	return company, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id string, req models.UpdateCompanyRequest) (*models.Company, error) {
	const op = "UpdateCompany"
	utils.TrimAllStringFields(&req)

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(op, "Company", err)
	}
	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = *req.PhoneNumber
	}
	if req.GSTNumber != nil {
		company.GSTNumber = *req.GSTNumber
	}
	if req.PANNumber != nil {
		company.PANNumber = *req.PANNumber
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, repoError(op, "Company", err)
	}
	return company, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	const op = "DeleteCompany"

	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return repoError(op, "Company", err)
	}
	referenced, err := s.settingsRepo.IsCompanyReferenced(ctx, id)
	if err != nil {
		return repoError(op, "Company", err)
	}
	if referenced {
		return validationError(op, "Cannot delete company: it is used in settings")
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return repoError(op, "Company", err)
	}
	return nil
}
