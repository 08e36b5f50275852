package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/internal/pricing"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// CartView is the wire shape every cart endpoint returns.
type CartView struct {
	Items      []CartItemView `json:"items"`
	TotalItems int            `json:"total_items"`
	Pricing    PricingView    `json:"pricing"`
}

// CartItemView is one carted line with its snapshot and derived line total.
type CartItemView struct {
	ProductID      uuid.UUID             `json:"product_id"`
	Name           string                `json:"name"`
	Category       enums.ProductCategory `json:"category"`
	UnitPriceCents int                   `json:"unit_price_cents"`
	ImageURL       string                `json:"image_url,omitempty"`
	Quantity       int                   `json:"quantity"`
	LineTotalCents int                   `json:"line_total_cents"`
}

// PricingView mirrors the pricing breakdown plus promotion progress.
type PricingView struct {
	SubtotalCents      int            `json:"subtotal_cents"`
	DiscountTotalCents int            `json:"discount_total_cents"`
	DeliveryFeeCents   int            `json:"delivery_fee_cents"`
	TotalCents         int            `json:"total_cents"`
	Discounts          []DiscountView `json:"discounts"`
	BundleCount        int            `json:"bundle_count"`

	FreeDeliveryUnlocked bool `json:"free_delivery_unlocked"`
	FreeDessertUnlocked  bool `json:"free_dessert_unlocked"`
	FreeDessertApplied   bool `json:"free_dessert_applied"`

	MissingForFreeDeliveryCents int `json:"missing_for_free_delivery_cents"`
	MissingForFreeDessertCents  int `json:"missing_for_free_dessert_cents"`
}

// DiscountView is one applied discount line.
type DiscountView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	AmountCents int    `json:"amount_cents"`
}

func newCartView(priced *cartsvc.PricedCart) CartView {
	items := make([]CartItemView, 0, len(priced.Items))
	for _, entry := range priced.Items {
		items = append(items, CartItemView{
			ProductID:      entry.Product.ProductID,
			Name:           entry.Product.Name,
			Category:       entry.Product.Category,
			UnitPriceCents: entry.Product.UnitPriceCents,
			ImageURL:       entry.Product.ImageURL,
			Quantity:       entry.Quantity,
			LineTotalCents: entry.Product.UnitPriceCents * entry.Quantity,
		})
	}

	return CartView{
		Items:      items,
		TotalItems: priced.TotalItems,
		Pricing:    newPricingView(priced.Pricing),
	}
}

func newPricingView(breakdown pricing.Breakdown) PricingView {
	discounts := make([]DiscountView, 0, len(breakdown.Discounts))
	for _, d := range breakdown.Discounts {
		discounts = append(discounts, DiscountView{
			ID:          string(d.ID),
			Label:       d.Label,
			AmountCents: d.AmountCents,
		})
	}

	return PricingView{
		SubtotalCents:               breakdown.SubtotalCents,
		DiscountTotalCents:          breakdown.DiscountTotalCents,
		DeliveryFeeCents:            breakdown.DeliveryFeeCents,
		TotalCents:                  breakdown.TotalCents,
		Discounts:                   discounts,
		BundleCount:                 breakdown.BundleCount,
		FreeDeliveryUnlocked:        breakdown.FreeDeliveryUnlocked,
		FreeDessertUnlocked:         breakdown.FreeDessertUnlocked,
		FreeDessertApplied:          breakdown.FreeDessertApplied,
		MissingForFreeDeliveryCents: breakdown.MissingForFreeDeliveryCents,
		MissingForFreeDessertCents:  breakdown.MissingForFreeDessertCents,
	}
}
