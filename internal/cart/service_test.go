package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nharmon/slicehaus-backend/internal/pricing"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

type memoryStorage struct {
	carts map[string]Record
	saves int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{carts: map[string]Record{}}
}

func (m *memoryStorage) Load(_ context.Context, sessionID string) (*Cart, error) {
	if record, ok := m.carts[sessionID]; ok {
		return FromRecord(record), nil
	}
	return New(), nil
}

func (m *memoryStorage) Save(_ context.Context, sessionID string, c *Cart) error {
	m.saves++
	if c.Len() == 0 {
		delete(m.carts, sessionID)
		return nil
	}
	m.carts[sessionID] = c.Record()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type stubCatalog struct {
	products map[uuid.UUID]Snapshot
	lookups  int
}

func (s *stubCatalog) Snapshot(_ context.Context, productID uuid.UUID) (Snapshot, error) {
	s.lookups++
	if snap, ok := s.products[productID]; ok {
		return snap, nil
	}
	return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func newTestService(t *testing.T, products ...Snapshot) (Service, *memoryStorage, *stubCatalog) {
	t.Helper()
	storage := newMemoryStorage()
	catalog := &stubCatalog{products: map[uuid.UUID]Snapshot{}}
	for _, p := range products {
		catalog.products[p.ProductID] = p
	}
	svc, err := NewService(storage, catalog, pricing.DefaultRuleset(), nil)
	require.NoError(t, err)
	return svc, storage, catalog
}

func TestServiceAddItemSnapshotsOnce(t *testing.T) {
	t.Parallel()

	pie := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	svc, storage, catalog := newTestService(t, pie)
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, 1, catalog.lookups)

	// Second add bumps quantity without another catalog round trip.
	view, err = svc.AddItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 1, catalog.lookups)
	assert.Equal(t, 2, storage.saves)
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, storage, _ := newTestService(t)
	_, err := svc.AddItem(context.Background(), "sess-1", uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	assert.Equal(t, 0, storage.saves, "failed adds must not persist")
}

func TestServiceViewPricesStoredCart(t *testing.T) {
	t.Parallel()

	pie := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	side := snapshot("Garlic Knots", enums.ProductCategorySide, 700)
	dip := snapshot("Ranch Dip", enums.ProductCategoryDip, 500)
	svc, _, _ := newTestService(t, pie, side, dip)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)
	_, err = svc.AdjustItem(ctx, "sess-1", pie.ProductID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", side.ProductID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", dip.ProductID)
	require.NoError(t, err)

	view, err := svc.View(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems)
	assert.Equal(t, 4700, view.Pricing.SubtotalCents)
	assert.Equal(t, 350, view.Pricing.DiscountTotalCents)
	assert.Equal(t, 4350, view.Pricing.TotalCents)
}

func TestServiceAdjustAbsentProductIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	view, err := svc.AdjustItem(context.Background(), "sess-1", uuid.New(), 3)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceRemoveAndClear(t *testing.T) {
	t.Parallel()

	pie := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	salad := snapshot("Garden Salad", enums.ProductCategorySalad, 1000)
	svc, storage, _ := newTestService(t, pie, salad)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", salad.ProductID)
	require.NoError(t, err)

	view, err := svc.RemoveItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	view, err = svc.Clear(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Pricing.TotalCents)
	assert.NotContains(t, storage.carts, "sess-1")
}

func TestServiceMergeUsesStoredCartAsBase(t *testing.T) {
	t.Parallel()

	pie := snapshot("Margherita", enums.ProductCategorySignaturePizza, 1800)
	svc, _, _ := newTestService(t, pie)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", pie.ProductID)
	require.NoError(t, err)

	guest := New()
	stale := pie
	stale.UnitPriceCents = 999
	guest.Add(stale)
	dessert := snapshot("Tiramisu", enums.ProductCategoryDessert, 900)
	guest.Add(dessert)

	view, err := svc.Merge(ctx, "sess-1", guest)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	for _, entry := range view.Items {
		if entry.Product.ProductID == pie.ProductID {
			assert.Equal(t, 2, entry.Quantity)
			assert.Equal(t, 1800, entry.Product.UnitPriceCents)
		}
	}
}

func TestServiceRequiresSession(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.View(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
