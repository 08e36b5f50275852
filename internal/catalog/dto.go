package catalog

import (
	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/db/models"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// ProductDTO is the menu-facing product shape.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    enums.ProductCategory `json:"category"`
	PriceCents  int                   `json:"price_cents"`
	ImageURL    string                `json:"image_url,omitempty"`
	Popular     bool                  `json:"popular"`
	Ingredients []string              `json:"ingredients"`
}

func toDTO(product *models.Product) *ProductDTO {
	ingredients := make([]string, len(product.Ingredients))
	copy(ingredients, product.Ingredients)
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Popular:     product.Popular,
		Ingredients: ingredients,
	}
}
