package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SellerID uuid.UUID
	StoreID  *uuid.UUID
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to sellers.
type AccessTokenClaims struct {
	SellerID uuid.UUID  `json:"seller_id"`
	StoreID  *uuid.UUID `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}
