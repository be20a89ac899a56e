package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
)

// SellerDTO exposes the seller account without credentials.
type SellerDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Language    enums.Language `json:"language"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateSellerDTO holds creation-time data for a seller account.
type CreateSellerDTO struct {
	Email        string
	PasswordHash string
	DisplayName  string
	Language     enums.Language
}

// FromModel maps the persisted seller into a DTO.
func FromModel(m *models.Seller) *SellerDTO {
	if m == nil {
		return nil
	}
	return &SellerDTO{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Language:    m.Language,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO, supplying defaults.
func (c CreateSellerDTO) ToModel() *models.Seller {
	language := c.Language
	if !language.IsValid() {
		language = enums.LanguageEnglish
	}
	return &models.Seller{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		DisplayName:  c.DisplayName,
		Language:     language,
		IsActive:     true,
	}
}
