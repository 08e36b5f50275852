package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/internal/pricing"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type fakeCarts struct {
	carts   map[string]*cart.Cart
	deletes int
}

func (f *fakeCarts) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	if c, ok := f.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (f *fakeCarts) Delete(_ context.Context, sessionID string) error {
	f.deletes++
	delete(f.carts, sessionID)
	return nil
}

func cartWithBundle() *cart.Cart {
	c := cart.New()
	pie := cart.Snapshot{ProductID: uuid.New(), Name: "Margherita", Category: enums.ProductCategorySignaturePizza, UnitPriceCents: 1800}
	side := cart.Snapshot{ProductID: uuid.New(), Name: "Garlic Knots", Category: enums.ProductCategorySide, UnitPriceCents: 700}
	dip := cart.Snapshot{ProductID: uuid.New(), Name: "Ranch Dip", Category: enums.ProductCategoryDip, UnitPriceCents: 500}
	c.Add(pie)
	c.Add(pie)
	c.Add(side)
	c.Add(dip)
	return c
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:  "Dana Smith",
		Phone:         "+1-555-0100",
		AddressLine:   "12 Brick Oven Ln",
		City:          "Springfield",
		DeliverySlot:  enums.DeliverySlotASAP,
		PaymentMethod: enums.PaymentMethodCashOnDelivery,
	}
}

func newTestService(t *testing.T, carts *fakeCarts) (Service, *Repository) {
	t.Helper()
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, testTxRunner{db: db}, carts, pricing.DefaultRuleset(), nil, nil)
	require.NoError(t, err)
	return svc, repo
}

func TestPlaceOrderFreezesPricing(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{"sess-1": cartWithBundle()}}
	svc, repo := newTestService(t, carts)
	ctx := context.Background()

	dto, err := svc.PlaceOrder(ctx, "sess-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, 4700, dto.SubtotalCents)
	assert.Equal(t, 350, dto.DiscountTotalCents)
	assert.Equal(t, 0, dto.DeliveryFeeCents)
	assert.Equal(t, 4350, dto.TotalCents)
	assert.Equal(t, enums.OrderStatusPlaced, dto.Status)
	require.Len(t, dto.Items, 3)
	require.Len(t, dto.Discounts, 1)
	assert.Equal(t, "bundle", dto.Discounts[0].ID)

	// The cart is cleared once the order commits.
	assert.Equal(t, 1, carts.deletes)

	// And the order is readable back with its line items.
	stored, err := repo.FindByIDAndSession(ctx, dto.ID, "sess-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 3)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{}}
	svc, _ := newTestService(t, carts)

	_, err := svc.PlaceOrder(context.Background(), "sess-1", validInput())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Equal(t, 0, carts.deletes)
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{"sess-1": cartWithBundle()}}
	svc, _ := newTestService(t, carts)
	ctx := context.Background()

	missingName := validInput()
	missingName.CustomerName = "  "
	_, err := svc.PlaceOrder(ctx, "sess-1", missingName)
	require.Error(t, err)

	badSlot := validInput()
	badSlot.DeliverySlot = enums.DeliverySlot("sometime")
	_, err = svc.PlaceOrder(ctx, "sess-1", badSlot)
	require.Error(t, err)

	scheduledNoTime := validInput()
	scheduledNoTime.DeliverySlot = enums.DeliverySlotScheduled
	_, err = svc.PlaceOrder(ctx, "sess-1", scheduledNoTime)
	require.Error(t, err)

	badTime := validInput()
	badTime.DeliverySlot = enums.DeliverySlotScheduled
	when := "tomorrow around six"
	badTime.ScheduledFor = &when
	_, err = svc.PlaceOrder(ctx, "sess-1", badTime)
	require.Error(t, err)

	badPayment := validInput()
	badPayment.PaymentMethod = enums.PaymentMethod("iou")
	_, err = svc.PlaceOrder(ctx, "sess-1", badPayment)
	require.Error(t, err)
}

func TestPlaceOrderScheduledSlot(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{"sess-1": cartWithBundle()}}
	svc, _ := newTestService(t, carts)

	input := validInput()
	input.DeliverySlot = enums.DeliverySlotScheduled
	when := "2026-09-01T18:30:00Z"
	input.ScheduledFor = &when

	dto, err := svc.PlaceOrder(context.Background(), "sess-1", input)
	require.NoError(t, err)
	require.NotNil(t, dto.ScheduledFor)
	assert.Equal(t, when, *dto.ScheduledFor)
}

func TestGetOrderScopedToSession(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{"sess-1": cartWithBundle()}}
	svc, _ := newTestService(t, carts)
	ctx := context.Background()

	dto, err := svc.PlaceOrder(ctx, "sess-1", validInput())
	require.NoError(t, err)

	found, err := svc.GetOrder(ctx, "sess-1", dto.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, found.ID)

	_, err = svc.GetOrder(ctx, "other-session", dto.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListOrders(t *testing.T) {
	carts := &fakeCarts{carts: map[string]*cart.Cart{
		"sess-1": cartWithBundle(),
	}}
	svc, _ := newTestService(t, carts)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, "sess-1", validInput())
	require.NoError(t, err)

	list, err := svc.ListOrders(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := svc.ListOrders(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
