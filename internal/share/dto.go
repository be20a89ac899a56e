package share

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
)

// SharedItemDTO is one frozen line of an exported cart.
type SharedItemDTO struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ProductImage *string         `json:"product_image,omitempty"`
	Position     int             `json:"position"`
}

// SharedCartDTO is the public view of a snapshot. Everything here was frozen
// at share time; it never reflects later catalog edits.
type SharedCartDTO struct {
	ShortID     string          `json:"short_id"`
	StoreID     uuid.UUID       `json:"store_id"`
	StoreName   string          `json:"store_name"`
	StoreSlug   string          `json:"store_slug"`
	StoreColor  string          `json:"store_color"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []SharedItemDTO `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// ShareResultDTO is returned when a cart is exported.
type ShareResultDTO struct {
	ShortID   string    `json:"short_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sharedCartFromModel(snapshot *models.SharedCart) *SharedCartDTO {
	items := make([]SharedItemDTO, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, SharedItemDTO{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Subtotal:     item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			ProductImage: item.ProductImage,
			Position:     item.Position,
		})
	}
	return &SharedCartDTO{
		ShortID:     snapshot.ShortID,
		StoreID:     snapshot.StoreID,
		StoreName:   snapshot.StoreName,
		StoreSlug:   snapshot.StoreSlug,
		StoreColor:  snapshot.StoreColor,
		TotalAmount: snapshot.TotalAmount,
		Items:       items,
		CreatedAt:   snapshot.CreatedAt,
		ExpiresAt:   snapshot.ExpiresAt,
	}
}
