package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
)

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// AdjustItemRequest shifts an existing line's quantity.
type AdjustItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int    `json:"delta" validate:"required"`
}

// MergeRequest folds a locally held guest cart into the stored one.
type MergeRequest struct {
	Items []MergeItem `json:"items" validate:"required,dive"`
}

// MergeItem is one guest cart line, snapshot included, since the guest cart
// may predate the session and reference prices the server never stored.
type MergeItem struct {
	ProductID      string `json:"product_id" validate:"required,uuid"`
	Name           string `json:"name" validate:"required"`
	Category       string `json:"category" validate:"required"`
	UnitPriceCents int    `json:"unit_price_cents" validate:"min=0"`
	ImageURL       string `json:"image_url,omitempty"`
	Quantity       int    `json:"quantity" validate:"min=1"`
}

func (req MergeRequest) toCart() (*cartsvc.Cart, error) {
	incoming := cartsvc.New()
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		category, err := enums.ParseProductCategory(item.Category)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}

		incoming.Add(cartsvc.Snapshot{
			ProductID:      productID,
			Name:           item.Name,
			Category:       category,
			UnitPriceCents: item.UnitPriceCents,
			ImageURL:       item.ImageURL,
		})
		if item.Quantity > 1 {
			incoming.Adjust(productID, item.Quantity-1)
		}
	}
	return incoming, nil
}
