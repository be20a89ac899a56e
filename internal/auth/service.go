package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/sellers"
	"github.com/whatscart/whatscart-backend/internal/stores"
	pkgauth "github.com/whatscart/whatscart-backend/pkg/auth"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type sellerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Seller, error)
}

type storeRepository interface {
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	SellerRepo sellerRepository
	StoreRepo  storeRepository
	JWTConfig  config.JWTConfig
}

type service struct {
	sellers sellerRepository
	stores  storeRepository
	jwtCfg  config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SellerRepo == nil {
		return nil, fmt.Errorf("seller repository is required")
	}
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	return &service{
		sellers: params.SellerRepo,
		stores:  params.StoreRepo,
		jwtCfg:  params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	seller, err := s.sellers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so probing stays blind.
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller")
	}
	if !seller.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, seller.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	payload := pkgauth.AccessTokenPayload{SellerID: seller.ID}
	var storeDTO *stores.StoreDTO
	store, err := s.stores.FindBySellerID(ctx, seller.ID)
	switch {
	case err == nil:
		storeID := store.ID
		payload.StoreID = &storeID
		storeDTO = stores.FromModel(store)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// A seller without a store can still log in to create one.
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: token,
		Seller:      sellers.FromModel(seller),
		Store:       storeDTO,
	}, nil
}
