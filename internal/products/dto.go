package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	"github.com/whatscart/whatscart-backend/pkg/types"
)

// ProductDTO exposes a catalog listing in API responses.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	StoreID     uuid.UUID             `json:"store_id"`
	Name        types.LocalizedText   `json:"name"`
	Description types.LocalizedText   `json:"description"`
	Price       decimal.Decimal       `json:"price"`
	Stock       int                   `json:"stock"`
	Category    enums.ProductCategory `json:"category"`
	Images      []string              `json:"images"`
	VideoURL    *string               `json:"video_url,omitempty"`
	IsActive    bool                  `json:"is_active"`
	Views       int64                 `json:"views"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        types.LocalizedText
	Description types.LocalizedText
	Price       decimal.Decimal
	Stock       int
	Category    enums.ProductCategory
	Images      []string
	VideoURL    *string
	IsActive    *bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *types.LocalizedText
	Description *types.LocalizedText
	Price       *decimal.Decimal
	Stock       *int
	Category    *enums.ProductCategory
	Images      *[]string
	VideoURL    *string
	IsActive    *bool
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	images := make([]string, len(m.Images))
	copy(images, m.Images)
	return &ProductDTO{
		ID:          m.ID,
		StoreID:     m.StoreID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Category:    m.Category,
		Images:      images,
		VideoURL:    m.VideoURL,
		IsActive:    m.IsActive,
		Views:       m.Views,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of products into DTOs.
func FromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
