package repository

import (
	"context"
	"fmt"

	"github.com/shashiX07/email-service/internal/database"
	"github.com/shashiX07/email-service/internal/model"
)

// DeliveryRepository persists the delivery log
type DeliveryRepository struct {
	db *database.Postgres
}

// NewDeliveryRepository creates a new DeliveryRepository
func NewDeliveryRepository(db *database.Postgres) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// Create inserts a new delivery log entry
func (r *DeliveryRepository) Create(ctx context.Context, d *model.Delivery) error {
	if d.ID == "" || d.Recipient == "" {
		return ErrInvalidInput
	}

	query := `
		INSERT INTO deliveries (id, message_id, endpoint, provider, recipient,
		    subject, status, error, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.MessageID,
		d.Endpoint,
		d.Provider,
		d.Recipient,
		d.Subject,
		d.Status,
		d.Error,
		d.ClientIP,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}
