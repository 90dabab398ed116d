package services

import (
	"context"

	"invoice-service/internal/models"
	"invoice-service/internal/repository"
	"invoice-service/utils"
)

type IClientService interface {
	CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error)
	GetAllClients(ctx context.Context) ([]*models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type ClientService struct {
	clientRepo  repository.IClientRepository
	invoiceRepo repository.IInvoiceRepository
}

func NewClientService(clientRepo repository.IClientRepository, invoiceRepo repository.IInvoiceRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, invoiceRepo: invoiceRepo}
}

func (s *ClientService) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	utils.TrimAllStringFields(&req)
	client := &models.Client{
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
		GSTNumber:   req.GSTNumber,
		IsRecurrent: req.IsRecurrent,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, repoError("CreateClient", "Client", err)
	}
	return client, nil
}

func (s *ClientService) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, repoError("GetAllClients", "Client", err)
	}
	return clients, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("GetClientByID", "Client", err)
	}
	return client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error) {
	const op = "UpdateClient"
	utils.TrimAllStringFields(&req)

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(op, "Client", err)
	}
	if req.CompanyName != nil {
		client.CompanyName = *req.CompanyName
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.GSTNumber != nil {
		client.GSTNumber = *req.GSTNumber
	}
	if req.IsRecurrent != nil {
		client.IsRecurrent = *req.IsRecurrent
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, repoError(op, "Client", err)
	}
	return client, nil
}

// DeleteClient refuses while invoices still point at the client.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	const op = "DeleteClient"

	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return repoError(op, "Client", err)
	}
	count, err := s.invoiceRepo.CountByClient(ctx, id)
	if err != nil {
		return repoError(op, "Client", err)
	}
	if count > 0 {
		return validationError(op, "Cannot delete client: it is used by existing invoices")
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return repoError(op, "Client", err)
	}
	return nil
}
