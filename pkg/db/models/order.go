package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
	"github.com/nharmon/slicehaus-backend/pkg/types"
)

// Order is a placed checkout with its priced breakdown frozen at purchase time.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID     string              `gorm:"column:session_id;not null;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	Phone         string              `gorm:"column:phone;not null"`
	AddressLine   string              `gorm:"column:address_line;not null"`
	City          string              `gorm:"column:city;not null"`
	DeliverySlot  enums.DeliverySlot  `gorm:"column:delivery_slot;not null"`
	ScheduledFor  *string             `gorm:"column:scheduled_for"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`

	SubtotalCents      int                 `gorm:"column:subtotal_cents;not null"`
	DiscountTotalCents int                 `gorm:"column:discount_total_cents;not null"`
	DeliveryFeeCents   int                 `gorm:"column:delivery_fee_cents;not null"`
	TotalCents         int                 `gorm:"column:total_cents;not null"`
	Discounts          types.DiscountLines `gorm:"column:discounts;type:jsonb"`

	Status    enums.OrderStatus `gorm:"column:status;not null;default:placed"`
	Items     []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
