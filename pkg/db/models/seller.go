package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/pkg/enums"
)

// Seller is an authenticated merchant account. Buyers stay anonymous.
type Seller struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	DisplayName  string         `gorm:"column:display_name;not null"`
	Language     enums.Language `gorm:"column:language;not null;default:'en'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
