package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nharmon/slicehaus-backend/pkg/db/models"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// Repository wraps menu persistence.
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

// List returns active products, optionally narrowed to one category,
// ordered for a stable menu rendering.
func (r *Repository) List(ctx context.Context, category *enums.ProductCategory) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var products []models.Product
	if err := query.Order("category ASC, name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads one product regardless of active state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
