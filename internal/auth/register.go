package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/sellers"
	"github.com/whatscart/whatscart-backend/internal/stores"
	pkgauth "github.com/whatscart/whatscart-backend/pkg/auth"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/security"
)

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	JWTConfig      config.JWTConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
	}, nil
}

// Register creates the seller account and their storefront atomically and
// returns a minted access token so onboarding needs no second login call.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	language := enums.LanguageEnglish
	if req.Language != "" {
		parsed, err := enums.ParseLanguage(req.Language)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid language")
		}
		language = parsed
	}

	category, err := enums.ParseBusinessCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business category")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var seller *models.Seller
	var store *stores.StoreDTO

	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		sellerRepo := sellers.NewRepository(tx)
		storeRepo := stores.NewRepository(tx)

		if _, err := sellerRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check seller email")
		}

		created, err := sellerRepo.Create(ctx, sellers.CreateSellerDTO{
			Email:        email,
			PasswordHash: passwordHash,
			DisplayName:  strings.TrimSpace(req.DisplayName),
			Language:     language,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seller")
		}
		seller = created

		storeSvc, err := stores.NewService(storeRepo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build store service")
		}
		createdStore, err := storeSvc.Create(ctx, created.ID, stores.CreateStoreInput{
			Name:           req.StoreName,
			Slug:           req.StoreSlug,
			WhatsAppNumber: req.WhatsAppNumber,
			ThemeColor:     req.ThemeColor,
			Description:    req.Description,
			Category:       category,
		})
		if err != nil {
			return err
		}
		store = createdStore
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	storeID := store.ID
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		SellerID: seller.ID,
		StoreID:  &storeID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: token,
		Seller:      sellers.FromModel(seller),
		Store:       store,
	}, nil
}
