package services

import (
	"context"

	"invoice-service/internal/models"
	"invoice-service/internal/repository"
	"invoice-service/utils"
)

type IBankDetailService interface {
	CreateBankDetail(ctx context.Context, req models.CreateBankDetailRequest) (*models.BankDetail, error)
	GetAllBankDetails(ctx context.Context) ([]*models.BankDetail, error)
	GetBankDetailByID(ctx context.Context, id string) (*models.BankDetail, error)
	UpdateBankDetail(ctx context.Context, id string, req models.UpdateBankDetailRequest) (*models.BankDetail, error)
	DeleteBankDetail(ctx context.Context, id string) error
}

type BankDetailService struct {
	bankRepo     repository.IBankDetailRepository
	settingsRepo repository.ISettingsRepository
}

func NewBankDetailService(bankRepo repository.IBankDetailRepository, settingsRepo repository.ISettingsRepository) *BankDetailService {
	return &BankDetailService{bankRepo: bankRepo, settingsRepo: settingsRepo}
}

func (s *BankDetailService) CreateBankDetail(ctx context.Context, req models.CreateBankDetailRequest) (*models.BankDetail, error) {
	utils.TrimAllStringFields(&req)
	bank := &models.BankDetail{
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountHolder: req.AccountHolder,
		IFSCCode:      req.IFSCCode,
	}
	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, repoError("CreateBankDetail", "Bank detail", err)
	}
	return bank, nil
}

func (s *BankDetailService) GetAllBankDetails(ctx context.Context) ([]*models.BankDetail, error) {
	banks, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		return nil, repoError("GetAllBankDetails", "Bank detail", err)
	}
	return banks, nil
}

func (s *BankDetailService) GetBankDetailByID(ctx context.Context, id string) (*models.BankDetail, error) {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("GetBankDetailByID", "Bank detail", err)
	}
	return bank, nil
}

func (s *BankDetailService) UpdateBankDetail(ctx context.Context, id string, req models.UpdateBankDetailRequest) (*models.BankDetail, error) {
	const op = "UpdateBankDetail"
	utils.TrimAllStringFields(&req)

	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(op, "Bank detail", err)
	}
	if req.BankName != nil {
		bank.BankName = *req.BankName
	}
	if req.AccountName != nil {
		bank.AccountName = *req.AccountName
	}
	if req.AccountHolder != nil {
		bank.AccountHolder = *req.AccountHolder
	}
	if req.IFSCCode != nil {
		bank.IFSCCode = *req.IFSCCode
	}

	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return nil, repoError(op, "Bank detail", err)
	}
	return bank, nil
}

func (s *BankDetailService) DeleteBankDetail(ctx context.Context, id string) error {
	const op = "DeleteBankDetail"

	if _, err := s.bankRepo.GetByID(ctx, id); err != nil {
		return repoError(op, "Bank detail", err)
	}
	referenced, err := s.settingsRepo.IsBankReferenced(ctx, id)
	if err != nil {
		return repoError(op, "Bank detail", err)
	}
	if referenced {
		return validationError(op, "Cannot delete bank detail: it is used in settings")
	}

	if err := s.bankRepo.Delete(ctx, id); err != nil {
		return repoError(op, "Bank detail", err)
	}
	return nil
}
