package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/db/models"
	"github.com/nharmon/slicehaus-backend/pkg/enums"
	"github.com/nharmon/slicehaus-backend/pkg/types"
)

// PlaceOrderInput captures the checkout form.
type PlaceOrderInput struct {
	CustomerName  string
	Phone         string
	AddressLine   string
	City          string
	DeliverySlot  enums.DeliverySlot
	ScheduledFor  *string
	PaymentMethod enums.PaymentMethod
}

// OrderDTO is the customer-facing view of a placed order.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	Status        enums.OrderStatus   `json:"status"`
	CustomerName  string              `json:"customer_name"`
	Phone         string              `json:"phone"`
	AddressLine   string              `json:"address_line"`
	City          string              `json:"city"`
	DeliverySlot  enums.DeliverySlot  `json:"delivery_slot"`
	ScheduledFor  *string             `json:"scheduled_for,omitempty"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`

	SubtotalCents      int                 `json:"subtotal_cents"`
	DiscountTotalCents int                 `json:"discount_total_cents"`
	DeliveryFeeCents   int                 `json:"delivery_fee_cents"`
	TotalCents         int                 `json:"total_cents"`
	Discounts          types.DiscountLines `json:"discounts"`

	Items     []OrderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// OrderItemDTO is one frozen order line.
type OrderItemDTO struct {
	ProductID      uuid.UUID             `json:"product_id"`
	Name           string                `json:"name"`
	Category       enums.ProductCategory `json:"category"`
	UnitPriceCents int                   `json:"unit_price_cents"`
	Quantity       int                   `json:"quantity"`
	LineTotalCents int                   `json:"line_total_cents"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Category:       item.Category,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: item.LineTotalCents,
		})
	}
	return &OrderDTO{
		ID:                 order.ID,
		Status:             order.Status,
		CustomerName:       order.CustomerName,
		Phone:              order.Phone,
		AddressLine:        order.AddressLine,
		City:               order.City,
		DeliverySlot:       order.DeliverySlot,
		ScheduledFor:       order.ScheduledFor,
		PaymentMethod:      order.PaymentMethod,
		SubtotalCents:      order.SubtotalCents,
		DiscountTotalCents: order.DiscountTotalCents,
		DeliveryFeeCents:   order.DeliveryFeeCents,
		TotalCents:         order.TotalCents,
		Discounts:          order.Discounts,
		Items:              items,
		CreatedAt:          order.CreatedAt,
	}
}
