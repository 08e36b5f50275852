package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/internal/pricing"
	"github.com/nharmon/slicehaus-backend/pkg/db/models"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
	"github.com/nharmon/slicehaus-backend/pkg/metrics"
	"github.com/nharmon/slicehaus-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartSource interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

// Service exposes checkout and order reads.
type Service interface {
	PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, sessionID string) ([]OrderDTO, error)
}

type service struct {
	repo    *Repository
	tx      txRunner
	carts   cartSource
	ruleset pricing.Ruleset
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewService builds an order service backed by the provided stack. Logger
// and metrics may be nil.
func NewService(repo *Repository, tx txRunner, carts cartSource, ruleset pricing.Ruleset, logg *logger.Logger, m *metrics.CartMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		carts:   carts,
		ruleset: ruleset,
		logg:    logg,
		metrics: m,
	}, nil
}

// PlaceOrder reprices the session's cart server-side, freezes it into an
// order with its line items, and clears the cart. The submitted totals are
// never trusted; the stored cart is the only pricing input.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, input PlaceOrderInput) (*OrderDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	entries := c.Items()
	breakdown := s.ruleset.Compute(toLineItems(entries))

	order := buildOrder(sessionID, input, entries, breakdown)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The order is committed; a failed cart delete only leaves a stale
	// cart behind, so log and move on.
	if err := s.carts.Delete(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "order_id", order.ID), "clearing cart after checkout failed")
	}

	s.metrics.IncOrderPlaced()
	return toOrderDTO(order), nil
}

// GetOrder returns one order, scoped to the owning session.
func (s *service) GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*OrderDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.repo.FindByIDAndSession(ctx, orderID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toOrderDTO(order), nil
}

// ListOrders returns the session's order history, newest first.
func (s *service) ListOrders(ctx context.Context, sessionID string) ([]OrderDTO, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	records, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toOrderDTO(&records[i]))
	}
	return dtos, nil
}

func validateInput(input PlaceOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if strings.TrimSpace(input.AddressLine) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if strings.TrimSpace(input.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if !input.DeliverySlot.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery slot")
	}
	if input.DeliverySlot == enums.DeliverySlotScheduled {
		if input.ScheduledFor == nil || strings.TrimSpace(*input.ScheduledFor) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "scheduled_for is required for scheduled delivery")
		}
		if _, err := time.Parse(time.RFC3339, *input.ScheduledFor); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "scheduled_for must be RFC3339")
		}
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	return nil
}

func buildOrder(sessionID string, input PlaceOrderInput, entries []cart.Entry, breakdown pricing.Breakdown) *models.Order {
	items := make([]models.OrderLineItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, models.OrderLineItem{
			ID:             uuid.New(),
			ProductID:      entry.Product.ProductID,
			Name:           entry.Product.Name,
			Category:       entry.Product.Category,
			UnitPriceCents: entry.Product.UnitPriceCents,
			Quantity:       entry.Quantity,
			LineTotalCents: entry.Product.UnitPriceCents * entry.Quantity,
		})
	}

	discounts := make(types.DiscountLines, 0, len(breakdown.Discounts))
	for _, d := range breakdown.Discounts {
		discounts = append(discounts, types.DiscountLine{
			ID:     string(d.ID),
			Label:  d.Label,
			Amount: d.AmountCents,
		})
	}

	return &models.Order{
		ID:                 uuid.New(),
		SessionID:          sessionID,
		CustomerName:       strings.TrimSpace(input.CustomerName),
		Phone:              strings.TrimSpace(input.Phone),
		AddressLine:        strings.TrimSpace(input.AddressLine),
		City:               strings.TrimSpace(input.City),
		DeliverySlot:       input.DeliverySlot,
		ScheduledFor:       input.ScheduledFor,
		PaymentMethod:      input.PaymentMethod,
		SubtotalCents:      breakdown.SubtotalCents,
		DiscountTotalCents: breakdown.DiscountTotalCents,
		DeliveryFeeCents:   breakdown.DeliveryFeeCents,
		TotalCents:         breakdown.TotalCents,
		Discounts:          discounts,
		Status:             enums.OrderStatusPlaced,
		Items:              items,
	}
}

func toLineItems(entries []cart.Entry) []pricing.LineItem {
	lines := make([]pricing.LineItem, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, pricing.LineItem{
			ProductID:      entry.Product.ProductID,
			Category:       entry.Product.Category,
			UnitPriceCents: entry.Product.UnitPriceCents,
			Quantity:       entry.Quantity,
		})
	}
	return lines
}
