package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/pkg/db/models"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
)

type productRepository interface {
	List(ctx context.Context, category *enums.ProductCategory) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes menu reads. It also serves product snapshots to the cart.
type Service interface {
	List(ctx context.Context, category *enums.ProductCategory) ([]ProductDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Snapshot(ctx context.Context, productID uuid.UUID) (cart.Snapshot, error)
}

type service struct {
	repo productRepository
}

// NewService builds a catalog service.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// List returns the active menu, optionally filtered to one category.
func (s *service) List(ctx context.Context, category *enums.ProductCategory) ([]ProductDTO, error) {
	if category != nil && !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category").
			WithDetails(map[string]string{"category": category.String()})
	}

	products, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toDTO(&products[i]))
	}
	return dtos, nil
}

// GetByID returns one active product.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(product), nil
}

// Snapshot freezes the product's current identity and price for carting.
func (s *service) Snapshot(ctx context.Context, productID uuid.UUID) (cart.Snapshot, error) {
	product, err := s.loadActive(ctx, productID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return cart.Snapshot{
		ProductID:      product.ID,
		Name:           product.Name,
		Category:       product.Category,
		UnitPriceCents: product.PriceCents,
		ImageURL:       product.ImageURL,
	}, nil
}

func (s *service) loadActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	// Delisted products reject new adds; existing cart lines keep their snapshot.
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
