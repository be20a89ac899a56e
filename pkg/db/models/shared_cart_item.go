package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharedCartItem freezes one cart line at export time.
type SharedCartItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SharedCartID uuid.UUID       `gorm:"column:shared_cart_id;type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string          `gorm:"column:product_name;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ProductImage *string         `gorm:"column:product_image"`
	Position     int             `gorm:"column:position;not null"`
}
