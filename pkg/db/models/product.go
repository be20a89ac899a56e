package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/whatscart/whatscart-backend/pkg/enums"
	"github.com/whatscart/whatscart-backend/pkg/types"
)

// Product represents a live catalog listing. Live price and stock are the
// source of truth for cart totals; shared-cart snapshots freeze their own copy.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID             `gorm:"column:store_id;type:uuid;not null;index"`
	Name        types.LocalizedText   `gorm:"column:name;type:jsonb;serializer:json;not null"`
	Description types.LocalizedText   `gorm:"column:description;type:jsonb;serializer:json"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	Images      pq.StringArray        `gorm:"column:images;type:text[]"`
	VideoURL    *string               `gorm:"column:video_url"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	Views       int64                 `gorm:"column:views;not null;default:0"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// FirstImage returns the leading image URL, if any.
func (p Product) FirstImage() *string {
	if len(p.Images) == 0 {
		return nil
	}
	img := p.Images[0]
	return &img
}
