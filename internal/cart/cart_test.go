package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

func snapshot(name string, category enums.ProductCategory, price int) Snapshot {
	return Snapshot{
		ProductID:      uuid.New(),
		Name:           name,
		Category:       category,
		UnitPriceCents: price,
	}
}

func TestCartAddBumpsQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	margherita := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)

	c.Add(margherita)
	c.Add(margherita)

	entry, ok := c.Get(margherita.ProductID)
	require.True(t, ok)
	assert.Equal(t, 2, entry.Quantity)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalItems())
}

func TestCartAddKeepsFirstSnapshot(t *testing.T) {
	t.Parallel()

	c := New()
	original := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	c.Add(original)

	repriced := original
	repriced.UnitPriceCents = 2100
	c.Add(repriced)

	entry, _ := c.Get(original.ProductID)
	assert.Equal(t, 1800, entry.Product.UnitPriceCents)
}

func TestCartAdjust(t *testing.T) {
	t.Parallel()

	c := New()
	wings := snapshot("Buffalo Wings", enums.ProductCategoryWings, 1200)
	c.Add(wings)

	assert.True(t, c.Adjust(wings.ProductID, 3))
	entry, _ := c.Get(wings.ProductID)
	assert.Equal(t, 4, entry.Quantity)

	// Absent product is a no-op.
	assert.False(t, c.Adjust(uuid.New(), 5))
	assert.Equal(t, 1, c.Len())

	// Dropping to zero or below removes the line.
	assert.True(t, c.Adjust(wings.ProductID, -10))
	_, ok := c.Get(wings.ProductID)
	assert.False(t, ok)
}

func TestCartRemoveAndClear(t *testing.T) {
	t.Parallel()

	c := New()
	a := snapshot("Garlic Knots", enums.ProductCategorySide, 700)
	b := snapshot("Ranch Dip", enums.ProductCategoryDip, 300)
	c.Add(a)
	c.Add(b)

	c.Remove(a.ProductID)
	assert.Equal(t, 1, c.Len())
	c.Remove(a.ProductID) // already gone, no-op

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalItems())
}

func TestCartMergeSumsAndKeepsBaseSnapshot(t *testing.T) {
	t.Parallel()

	shared := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	onlyIncoming := snapshot("Tiramisu", enums.ProductCategoryDessert, 900)

	base := New()
	base.Add(shared)
	base.Add(shared)

	incoming := New()
	stale := shared
	stale.UnitPriceCents = 1500
	incoming.Add(stale)
	incoming.Adjust(stale.ProductID, 2)
	incoming.Add(onlyIncoming)

	base.Merge(incoming)

	entry, _ := base.Get(shared.ProductID)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, 1800, entry.Product.UnitPriceCents, "base snapshot wins")

	carried, ok := base.Get(onlyIncoming.ProductID)
	require.True(t, ok)
	assert.Equal(t, 1, carried.Quantity)

	base.Merge(nil) // no-op
	assert.Equal(t, 2, base.Len())
}

func TestCartItemsStableOrder(t *testing.T) {
	t.Parallel()

	c := New()
	for i := 0; i < 8; i++ {
		c.Add(snapshot("Item", enums.ProductCategorySalad, 1000+i))
	}

	first := c.Items()
	second := c.Items()
	require.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Product.ProductID.String(), first[i].Product.ProductID.String())
	}
}

func TestCartRecordRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	pie := snapshot("White Pie", enums.ProductCategoryWhitePie, 2000)
	c.Add(pie)
	c.Adjust(pie.ProductID, 2)

	rebuilt := FromRecord(c.Record())
	entry, ok := rebuilt.Get(pie.ProductID)
	require.True(t, ok)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, pie, entry.Product)
}

func TestFromRecordDropsMalformedEntries(t *testing.T) {
	t.Parallel()

	good := snapshot("Calzone", enums.ProductCategoryCalzone, 1400)
	mismatched := snapshot("Impostor", enums.ProductCategorySalad, 1000)

	record := Record{
		good.ProductID.String(): {Product: good, Quantity: 2},
		"not-a-uuid":            {Product: good, Quantity: 1},
		uuid.NewString():        {Product: mismatched, Quantity: 1},
		mismatched.ProductID.String(): {
			Product: mismatched, Quantity: 0, // non-positive quantity
		},
	}

	c := FromRecord(record)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(good.ProductID)
	assert.True(t, ok)
}
