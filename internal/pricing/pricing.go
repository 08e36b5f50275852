package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// DiscountID identifies one promotional rule. The set is closed.
type DiscountID string

const (
	DiscountBundle  DiscountID = "bundle"
	DiscountWings   DiscountID = "wings"
	DiscountDessert DiscountID = "dessert"
)

// LineItem is the flattened cart projection the engine prices.
type LineItem struct {
	ProductID      uuid.UUID
	Category       enums.ProductCategory
	UnitPriceCents int
	Quantity       int
}

// DiscountLine is one applied discount, amount always >= 0.
type DiscountLine struct {
	ID          DiscountID
	Label       string
	AmountCents int
}

// Breakdown is the full priced view of a cart. It is derived on every call
// and never cached.
type Breakdown struct {
	SubtotalCents      int
	DiscountTotalCents int
	DeliveryFeeCents   int
	TotalCents         int
	Discounts          []DiscountLine
	BundleCount        int

	FreeDeliveryUnlocked bool
	FreeDessertUnlocked  bool
	FreeDessertApplied   bool

	MissingForFreeDeliveryCents int
	MissingForFreeDessertCents  int
}

// Compute prices the given line items deterministically. It is pure: no
// I/O, no shared state, safe to call on every read. Each discount is
// evaluated against the same undiscounted subtotal before they are combined.
// Inputs are assumed well-formed (non-negative prices, positive quantities);
// the cart layer enforces those invariants.
func (r Ruleset) Compute(items []LineItem) Breakdown {
	subtotal := 0
	for _, item := range items {
		subtotal += item.UnitPriceCents * item.Quantity
	}

	var (
		pizzaQty        int
		sideQty         int
		dipQty          int
		wingsDiscount   decimal.Decimal
		cheapestDessert = -1
	)

	for _, item := range items {
		switch item.Category {
		case enums.ProductCategorySignaturePizza,
			enums.ProductCategoryWhitePie,
			enums.ProductCategorySpicyBold,
			enums.ProductCategoryPlantBased:
			pizzaQty += item.Quantity

		case enums.ProductCategorySide:
			sideQty += item.Quantity

		case enums.ProductCategoryDip:
			dipQty += item.Quantity

		case enums.ProductCategoryWings:
			// Pairs are counted per line item, never pooled across SKUs.
			pairs := item.Quantity / 2
			if pairs > 0 {
				line := decimal.NewFromInt(int64(pairs * item.UnitPriceCents)).Mul(r.WingsPairRate)
				wingsDiscount = wingsDiscount.Add(line)
			}

		case enums.ProductCategoryDessert:
			if cheapestDessert < 0 || item.UnitPriceCents < cheapestDessert {
				cheapestDessert = item.UnitPriceCents
			}

		case enums.ProductCategoryCalzone, enums.ProductCategorySalad:
			// Priced at face value, no promotional rule.

		default:
			// Unlisted categories carry no special rule either.
		}
	}

	discounts := make([]DiscountLine, 0, 3)

	bundleCount := pizzaQty / 2
	if sideQty < bundleCount {
		bundleCount = sideQty
	}
	if dipQty < bundleCount {
		bundleCount = dipQty
	}
	if bundleCount > 0 {
		discounts = append(discounts, DiscountLine{
			ID:          DiscountBundle,
			Label:       fmt.Sprintf("Pizza Party Bundle x%d", bundleCount),
			AmountCents: bundleCount * r.BundleDiscountCents,
		})
	}

	if wingsAmount := int(wingsDiscount.Round(0).IntPart()); wingsAmount > 0 {
		discounts = append(discounts, DiscountLine{
			ID:          DiscountWings,
			Label:       "Wings Pair Offer",
			AmountCents: wingsAmount,
		})
	}

	freeDessertUnlocked := subtotal >= r.FreeDessertThresholdCents
	freeDessertApplied := freeDessertUnlocked && cheapestDessert >= 0
	if freeDessertApplied {
		discounts = append(discounts, DiscountLine{
			ID:          DiscountDessert,
			Label:       "Free Dessert Reward",
			AmountCents: cheapestDessert,
		})
	}

	discountTotal := 0
	for _, d := range discounts {
		discountTotal += d.AmountCents
	}

	freeDeliveryUnlocked := subtotal >= r.FreeDeliveryThresholdCents
	deliveryFee := r.DeliveryFeeCents
	if len(items) == 0 || freeDeliveryUnlocked {
		deliveryFee = 0
	}

	total := subtotal - discountTotal + deliveryFee
	if total < 0 {
		total = 0
	}

	return Breakdown{
		SubtotalCents:               subtotal,
		DiscountTotalCents:          discountTotal,
		DeliveryFeeCents:            deliveryFee,
		TotalCents:                  total,
		Discounts:                   discounts,
		BundleCount:                 bundleCount,
		FreeDeliveryUnlocked:        freeDeliveryUnlocked,
		FreeDessertUnlocked:         freeDessertUnlocked,
		FreeDessertApplied:          freeDessertApplied,
		MissingForFreeDeliveryCents: maxInt(r.FreeDeliveryThresholdCents-subtotal, 0),
		MissingForFreeDessertCents:  maxInt(r.FreeDessertThresholdCents-subtotal, 0),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
