package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
)

// CartLineDTO is one cart line priced against the live catalog.
type CartLineDTO struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ProductImage *string         `json:"product_image,omitempty"`
	Stock        int             `json:"stock"`
	Available    bool            `json:"available"`
	Position     int             `json:"position"`
}

// CartDTO is the buyer-facing cart with totals derived at read time.
type CartDTO struct {
	StoreID       uuid.UUID       `json:"store_id"`
	Token         uuid.UUID       `json:"token"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Lines         []CartLineDTO   `json:"lines"`
	TotalItems    int             `json:"total_items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// OrderMessageDTO carries the formatted WhatsApp order text and deep link.
type OrderMessageDTO struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

func emptyCartDTO(storeID, token uuid.UUID) *CartDTO {
	return &CartDTO{
		StoreID:     storeID,
		Token:       token,
		Lines:       []CartLineDTO{},
		TotalAmount: decimal.Zero,
	}
}

// buildCartDTO prices lines against the live product rows. Lines whose
// product vanished or was deactivated stay visible but unavailable and do not
// count toward totals.
func buildCartDTO(record *models.CartRecord) *CartDTO {
	dto := emptyCartDTO(record.StoreID, record.Token)
	dto.CustomerPhone = record.CustomerPhone

	total := decimal.Zero
	for _, line := range record.Lines {
		lineDTO := CartLineDTO{
			ProductID: line.ProductID,
			Name:      "Product",
			Quantity:  line.Quantity,
			Price:     decimal.Zero,
			Subtotal:  decimal.Zero,
			Position:  line.Position,
		}
		if p := line.Product; p != nil {
			lineDTO.Name = p.Name.Resolve()
			lineDTO.Price = p.Price
			lineDTO.ProductImage = p.FirstImage()
			lineDTO.Stock = p.Stock
			lineDTO.Available = p.IsActive && p.Stock > 0
			if lineDTO.Available {
				lineDTO.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
				total = total.Add(lineDTO.Subtotal)
				dto.TotalItems += line.Quantity
			}
		}
		dto.Lines = append(dto.Lines, lineDTO)
	}
	dto.TotalAmount = total
	return dto
}
