package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/pkg/enums"
)

// Store is a seller's branded storefront. One store per seller.
type Store struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID       uuid.UUID              `gorm:"column:seller_id;type:uuid;not null;uniqueIndex"`
	Name           string                 `gorm:"column:name;not null"`
	Slug           string                 `gorm:"column:slug;not null;uniqueIndex"`
	LogoURL        *string                `gorm:"column:logo_url"`
	ThemeColor     string                 `gorm:"column:theme_color;not null;default:'#3b82f6'"`
	WhatsAppNumber string                 `gorm:"column:whatsapp_number;not null"`
	Description    *string                `gorm:"column:description"`
	Category       enums.BusinessCategory `gorm:"column:category;not null"`
	IsActive       bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
