package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharedCart is an immutable export of a cart at share time. Names, prices and
// the total are frozen copies; later catalog edits never touch them.
type SharedCart struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShortID     string           `gorm:"column:short_id;not null;uniqueIndex"`
	StoreID     uuid.UUID        `gorm:"column:store_id;type:uuid;not null;index"`
	StoreName   string           `gorm:"column:store_name;not null"`
	StoreSlug   string           `gorm:"column:store_slug;not null"`
	StoreColor  string           `gorm:"column:store_color;not null"`
	TotalAmount decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items       []SharedCartItem `gorm:"foreignKey:SharedCartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt   time.Time        `gorm:"column:expires_at;not null"`
}

// Expired reports whether the snapshot's lifetime has passed at the given time.
func (s SharedCart) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
