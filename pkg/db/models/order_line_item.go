package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// OrderLineItem snapshots one cart line at checkout.
type OrderLineItem struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	Name           string                `gorm:"column:name;not null"`
	Category       enums.ProductCategory `gorm:"column:category;not null"`
	UnitPriceCents int                   `gorm:"column:unit_price_cents;not null"`
	Quantity       int                   `gorm:"column:quantity;not null"`
	LineTotalCents int                   `gorm:"column:line_total_cents;not null"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
}
