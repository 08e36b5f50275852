package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/internal/pricing"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/metrics"
)

type cartStorage interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type snapshotSource interface {
	Snapshot(ctx context.Context, productID uuid.UUID) (Snapshot, error)
}

// PricedCart is a cart plus its derived pricing, the shape every cart
// operation returns.
type PricedCart struct {
	Items      []Entry
	TotalItems int
	Pricing    pricing.Breakdown
}

// Service exposes the session cart operations.
type Service interface {
	View(ctx context.Context, sessionID string) (*PricedCart, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (*PricedCart, error)
	AdjustItem(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (*PricedCart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*PricedCart, error)
	Clear(ctx context.Context, sessionID string) (*PricedCart, error)
	Merge(ctx context.Context, sessionID string, incoming *Cart) (*PricedCart, error)
}

type service struct {
	store   cartStorage
	catalog snapshotSource
	ruleset pricing.Ruleset
	metrics *metrics.CartMetrics
}

// NewService builds a cart service backed by the provided stack. Metrics may
// be nil.
func NewService(store cartStorage, catalog snapshotSource, ruleset pricing.Ruleset, m *metrics.CartMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &service{
		store:   store,
		catalog: catalog,
		ruleset: ruleset,
		metrics: m,
	}, nil
}

// View prices the stored cart without mutating it.
func (s *service) View(ctx context.Context, sessionID string) (*PricedCart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.price(c), nil
}

// AddItem looks up the product, snapshots it into the cart, and returns the
// repriced view.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (*PricedCart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		if _, ok := c.Get(productID); ok {
			c.Adjust(productID, 1)
			return nil
		}
		snapshot, err := s.catalog.Snapshot(ctx, productID)
		if err != nil {
			return err
		}
		c.Add(snapshot)
		return nil
	})
}

// AdjustItem shifts an entry's quantity by delta. Absent products no-op and
// a non-positive result removes the line, so clients can blindly send -1.
func (s *service) AdjustItem(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (*PricedCart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Adjust(productID, delta)
		return nil
	})
}

// RemoveItem drops the line entirely.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*PricedCart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Remove(productID)
		return nil
	})
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) (*PricedCart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// Merge folds a client-submitted cart into the stored one. The stored cart
// is the base: shared quantities are summed and the stored snapshot wins.
func (s *service) Merge(ctx context.Context, sessionID string, incoming *Cart) (*PricedCart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.Merge(incoming)
		return nil
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(c *Cart) error) (*PricedCart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return s.price(c), nil
}

func (s *service) price(c *Cart) *PricedCart {
	items := c.Items()

	start := time.Now()
	breakdown := s.ruleset.Compute(toLineItems(items))
	s.metrics.ObserveCompute(time.Since(start))
	for _, d := range breakdown.Discounts {
		s.metrics.IncDiscount(string(d.ID))
	}

	return &PricedCart{
		Items:      items,
		TotalItems: c.TotalItems(),
		Pricing:    breakdown,
	}
}

func toLineItems(items []Entry) []pricing.LineItem {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, entry := range items {
		lines = append(lines, pricing.LineItem{
			ProductID:      entry.Product.ProductID,
			Category:       entry.Product.Category,
			UnitPriceCents: entry.Product.UnitPriceCents,
			Quantity:       entry.Quantity,
		})
	}
	return lines
}
