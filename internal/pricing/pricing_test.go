package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

func item(category enums.ProductCategory, price, qty int) LineItem {
	return LineItem{
		ProductID:      uuid.New(),
		Category:       category,
		UnitPriceCents: price,
		Quantity:       qty,
	}
}

func discountByID(t *testing.T, b Breakdown, id DiscountID) DiscountLine {
	t.Helper()
	for _, d := range b.Discounts {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("discount %s not found in %+v", id, b.Discounts)
	return DiscountLine{}
}

func TestComputeEmptyCart(t *testing.T) {
	t.Parallel()

	b := DefaultRuleset().Compute(nil)

	assert.Equal(t, 0, b.SubtotalCents)
	assert.Empty(t, b.Discounts)
	assert.Equal(t, 0, b.DeliveryFeeCents, "emptiness itself waives delivery")
	assert.Equal(t, 0, b.TotalCents)
	assert.False(t, b.FreeDeliveryUnlocked)
	assert.Equal(t, 4500, b.MissingForFreeDeliveryCents)
	assert.Equal(t, 6500, b.MissingForFreeDessertCents)
}

func TestComputeBundleWithFreeDelivery(t *testing.T) {
	t.Parallel()

	// 2x pizza @1800 + 1x side @700 + 1x dip @500 = 4700
	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 2),
		item(enums.ProductCategorySide, 700, 1),
		item(enums.ProductCategoryDip, 500, 1),
	})

	require.Equal(t, 4700, b.SubtotalCents)
	require.Equal(t, 1, b.BundleCount)
	require.Len(t, b.Discounts, 1)
	bundle := discountByID(t, b, DiscountBundle)
	assert.Equal(t, 350, bundle.AmountCents)
	assert.Equal(t, "Pizza Party Bundle x1", bundle.Label)
	assert.True(t, b.FreeDeliveryUnlocked)
	assert.Equal(t, 0, b.DeliveryFeeCents)
	assert.Equal(t, 4350, b.TotalCents)
}

func TestComputeWingsPairDiscount(t *testing.T) {
	t.Parallel()

	// 4x wings @1200: floor(4/2) * 1200 * 0.2 = 480
	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategoryWings, 1200, 4),
	})

	require.Equal(t, 4800, b.SubtotalCents)
	wings := discountByID(t, b, DiscountWings)
	assert.Equal(t, 480, wings.AmountCents)
	assert.Equal(t, 0, b.DeliveryFeeCents)
	assert.Equal(t, 4320, b.TotalCents)
}

func TestComputeWingsNotPooledAcrossProducts(t *testing.T) {
	t.Parallel()

	// Two distinct wing SKUs with quantity 1 each earn nothing.
	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategoryWings, 1200, 1),
		item(enums.ProductCategoryWings, 1300, 1),
	})

	assert.Empty(t, b.Discounts)
	assert.Equal(t, 2500+150, b.TotalCents)
}

func TestComputeWingsRoundedOnce(t *testing.T) {
	t.Parallel()

	// Odd unit price forces a fractional per-line amount: 2 pairs of 1205
	// and 1 pair of 333 -> 482 + 66.6 = 548.6, rounds to 549.
	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategoryWings, 1205, 4),
		item(enums.ProductCategoryWings, 333, 2),
	})

	wings := discountByID(t, b, DiscountWings)
	assert.Equal(t, 549, wings.AmountCents)
}

func TestComputeOddPizzaCountGrantsNoPartialBundle(t *testing.T) {
	t.Parallel()

	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategoryWhitePie, 2000, 3),
		item(enums.ProductCategorySide, 700, 5),
		item(enums.ProductCategoryDip, 500, 5),
	})

	assert.Equal(t, 1, b.BundleCount)
}

func TestComputeBundleCappedBySidesAndDips(t *testing.T) {
	t.Parallel()

	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 6),
		item(enums.ProductCategorySide, 700, 2),
		item(enums.ProductCategoryDip, 500, 1),
	})

	require.Equal(t, 1, b.BundleCount)
	assert.Equal(t, 350, discountByID(t, b, DiscountBundle).AmountCents)
}

func TestComputeFreeDessertPicksCheapest(t *testing.T) {
	t.Parallel()

	base := []LineItem{
		item(enums.ProductCategoryCalzone, 1400, 4), // 5600, no special rule
		item(enums.ProductCategoryDessert, 900, 1),
	}

	b := DefaultRuleset().Compute(base)
	require.True(t, b.FreeDessertUnlocked)
	require.True(t, b.FreeDessertApplied)
	assert.Equal(t, 900, discountByID(t, b, DiscountDessert).AmountCents)

	// Adding a cheaper dessert shrinks the reward to the new minimum.
	withCheaper := append(base, item(enums.ProductCategoryDessert, 500, 1))
	b = DefaultRuleset().Compute(withCheaper)
	assert.Equal(t, 500, discountByID(t, b, DiscountDessert).AmountCents)
}

func TestComputeDessertUnlockedButNotApplied(t *testing.T) {
	t.Parallel()

	b := DefaultRuleset().Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 2200, 3), // 6600
	})

	assert.True(t, b.FreeDessertUnlocked)
	assert.False(t, b.FreeDessertApplied)
	for _, d := range b.Discounts {
		assert.NotEqual(t, DiscountDessert, d.ID)
	}
}

func TestComputeDeliveryFeeThreshold(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleset()

	below := rs.Compute([]LineItem{item(enums.ProductCategorySalad, 4499, 1)})
	assert.Equal(t, 150, below.DeliveryFeeCents)
	assert.False(t, below.FreeDeliveryUnlocked)
	assert.Equal(t, 1, below.MissingForFreeDeliveryCents)

	at := rs.Compute([]LineItem{item(enums.ProductCategorySalad, 4500, 1)})
	assert.Equal(t, 0, at.DeliveryFeeCents)
	assert.True(t, at.FreeDeliveryUnlocked)
	assert.Equal(t, 0, at.MissingForFreeDeliveryCents)
}

func TestComputeTotalIdentity(t *testing.T) {
	t.Parallel()

	carts := [][]LineItem{
		nil,
		{item(enums.ProductCategorySignaturePizza, 1800, 2), item(enums.ProductCategorySide, 700, 1), item(enums.ProductCategoryDip, 500, 1)},
		{item(enums.ProductCategoryWings, 1200, 5), item(enums.ProductCategoryDessert, 700, 2)},
		{item(enums.ProductCategorySalad, 1000, 1)},
	}

	for _, cart := range carts {
		b := DefaultRuleset().Compute(cart)
		sum := 0
		for _, d := range b.Discounts {
			sum += d.AmountCents
		}
		require.Equal(t, sum, b.DiscountTotalCents)
		want := b.SubtotalCents - sum + b.DeliveryFeeCents
		if want < 0 {
			want = 0
		}
		require.Equal(t, want, b.TotalCents)
	}
}

func TestComputeIdempotent(t *testing.T) {
	t.Parallel()

	cart := []LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 2),
		item(enums.ProductCategoryWings, 1200, 4),
		item(enums.ProductCategoryDessert, 900, 1),
	}

	first := DefaultRuleset().Compute(cart)
	second := DefaultRuleset().Compute(cart)
	assert.Equal(t, first, second)
}

func TestComputeBundleMonotonicity(t *testing.T) {
	t.Parallel()

	rs := DefaultRuleset()
	base := rs.Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 2),
		item(enums.ProductCategorySide, 700, 1),
		item(enums.ProductCategoryDip, 500, 1),
	})

	grown := rs.Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 4),
		item(enums.ProductCategorySide, 700, 2),
		item(enums.ProductCategoryDip, 500, 2),
	})

	assert.GreaterOrEqual(t, grown.BundleCount, base.BundleCount)
}

func TestComputeTotalFlooredAtZero(t *testing.T) {
	t.Parallel()

	// A pathological ruleset can push discounts past the subtotal; the
	// total must still floor at zero.
	rs := DefaultRuleset()
	rs.BundleDiscountCents = 100000

	b := rs.Compute([]LineItem{
		item(enums.ProductCategorySignaturePizza, 1800, 2),
		item(enums.ProductCategorySide, 700, 1),
		item(enums.ProductCategoryDip, 500, 1),
	})

	assert.Equal(t, 0, b.TotalCents)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	rs, err := FromConfig(config.PricingConfig{
		DeliveryFee:           200,
		FreeDeliveryThreshold: 5000,
		FreeDessertThreshold:  7000,
		BundleDiscount:        400,
		WingsPairRate:         "0.25",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, rs.DeliveryFeeCents)
	assert.True(t, rs.WingsPairRate.Equal(decimal.NewFromFloat(0.25)))

	_, err = FromConfig(config.PricingConfig{WingsPairRate: "not-a-number"})
	require.Error(t, err)

	_, err = FromConfig(config.PricingConfig{WingsPairRate: "1.5"})
	require.Error(t, err)
}
