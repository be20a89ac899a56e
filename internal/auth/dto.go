package auth

import (
	"github.com/whatscart/whatscart-backend/internal/sellers"
	"github.com/whatscart/whatscart-backend/internal/stores"
)

// RegisterRequest contains the payload required for onboarding a seller and
// their storefront in one step.
type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	DisplayName    string  `json:"display_name" validate:"required"`
	Language       string  `json:"language,omitempty"`
	StoreName      string  `json:"store_name" validate:"required"`
	StoreSlug      string  `json:"store_slug,omitempty"`
	WhatsAppNumber string  `json:"whatsapp_number" validate:"required"`
	ThemeColor     *string `json:"theme_color,omitempty"`
	Description    *string `json:"description,omitempty"`
	Category       string  `json:"category" validate:"required"`
}

// LoginRequest carries seller credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from both register and login.
type AuthResponse struct {
	AccessToken string             `json:"access_token"`
	Seller      *sellers.SellerDTO `json:"seller"`
	Store       *stores.StoreDTO   `json:"store,omitempty"`
}
