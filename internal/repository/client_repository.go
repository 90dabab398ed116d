package repository

import (
	"context"
	"time"

	"invoice-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetAll(ctx context.Context) ([]*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) IClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `
		INSERT INTO clients (id, company_name, phone_number, email, address, gst_number,
		                     is_recurrent, created_at, updated_at)
		VALUES (:id, :company_name, :phone_number, :email, :address, :gst_number,
		        :is_recurrent, :created_at, :updated_at)`

	return namedExecWithCheck(ctx, r.db, "create client", query, execInsert, client)
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.db.GetContext(ctx, &client, `SELECT * FROM clients WHERE id = $1`, id)
	if err != nil {
		return nil, translate("get client", err)
	}
	return &client, nil
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]*models.Client, error) {
	clients := []*models.Client{}
	err := r.db.SelectContext(ctx, &clients, `SELECT * FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate("list clients", err)
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	client.UpdatedAt = time.Now()

	query := `
		UPDATE clients SET
			company_name = :company_name,
			phone_number = :phone_number,
			email = :email,
			address = :address,
			gst_number = :gst_number,
			is_recurrent = :is_recurrent,
			updated_at = :updated_at
		WHERE id = :id`

	return namedExecWithCheck(ctx, r.db, "update client", query, execUpdate, client)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "clients", id)
}
