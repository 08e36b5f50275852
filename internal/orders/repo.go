package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nharmon/slicehaus-backend/pkg/db/models"
)

// Repository wraps order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists the order together with its line items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByIDAndSession loads one order scoped to the owning session.
func (r *Repository) FindByIDAndSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ? AND session_id = ?", id, sessionID).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListBySession returns the session's orders, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
