package models

import (
	"time"

	"github.com/google/uuid"
)

// CartRecord is a buyer's working cart, scoped to one store and keyed by the
// anonymous device token. It is never the source of truth for inventory.
type CartRecord struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID  `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_cart_store_token"`
	Token         uuid.UUID  `gorm:"column:token;type:uuid;not null;uniqueIndex:idx_cart_store_token"`
	CustomerPhone string     `gorm:"column:customer_phone;not null;default:''"`
	Lines         []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
