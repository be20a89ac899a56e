package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
)

// StoreDTO exposes storefront data in API responses.
type StoreDTO struct {
	ID             uuid.UUID              `json:"id"`
	SellerID       uuid.UUID              `json:"seller_id"`
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	LogoURL        *string                `json:"logo_url,omitempty"`
	ThemeColor     string                 `json:"theme_color"`
	WhatsAppNumber string                 `json:"whatsapp_number"`
	Description    *string                `json:"description,omitempty"`
	Category       enums.BusinessCategory `json:"category"`
	IsActive       bool                   `json:"is_active"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new storefront.
type CreateStoreDTO struct {
	SellerID       uuid.UUID
	Name           string
	Slug           string
	LogoURL        *string
	ThemeColor     *string
	WhatsAppNumber string
	Description    *string
	Category       enums.BusinessCategory
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:             m.ID,
		SellerID:       m.SellerID,
		Name:           m.Name,
		Slug:           m.Slug,
		LogoURL:        m.LogoURL,
		ThemeColor:     m.ThemeColor,
		WhatsAppNumber: m.WhatsAppNumber,
		Description:    m.Description,
		Category:       m.Category,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO, supplying defaults.
func (c CreateStoreDTO) ToModel() *models.Store {
	model := &models.Store{
		SellerID:       c.SellerID,
		Name:           c.Name,
		Slug:           c.Slug,
		LogoURL:        c.LogoURL,
		ThemeColor:     DefaultThemeColor,
		WhatsAppNumber: c.WhatsAppNumber,
		Description:    c.Description,
		Category:       c.Category,
		IsActive:       true,
	}
	if c.ThemeColor != nil && *c.ThemeColor != "" {
		model.ThemeColor = *c.ThemeColor
	}
	return model
}
