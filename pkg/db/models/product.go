package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nharmon/slicehaus-backend/pkg/enums"
)

// Product represents one menu listing.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	PriceCents  int                   `gorm:"column:price_cents;not null"`
	ImageURL    string                `gorm:"column:image_url;not null;default:''"`
	Popular     bool                  `gorm:"column:popular;not null;default:false"`
	Ingredients pq.StringArray        `gorm:"column:ingredients;type:text[]"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
