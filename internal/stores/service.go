package stores

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/pkg/db"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
)

// DefaultThemeColor is applied when a seller does not pick a brand color.
const DefaultThemeColor = "#3b82f6"

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error)
}

// Service exposes storefront operations.
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, sellerID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	GetMine(ctx context.Context, sellerID uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// CreateStoreInput captures the payload for opening a storefront.
type CreateStoreInput struct {
	Name           string
	Slug           string
	WhatsAppNumber string
	ThemeColor     *string
	LogoURL        *string
	Description    *string
	Category       enums.BusinessCategory
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name           *string
	WhatsAppNumber *string
	ThemeColor     *string
	LogoURL        *string
	Description    *string
	Category       *enums.BusinessCategory
	IsActive       *bool
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller identity missing")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business category")
	}

	whatsapp, err := normalizeWhatsAppNumber(input.WhatsAppNumber)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug may only contain lowercase letters, digits and hyphens")
	}

	if input.ThemeColor != nil && *input.ThemeColor != "" && !colorPattern.MatchString(*input.ThemeColor) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme_color must be a #rrggbb value")
	}

	if _, err := s.repo.FindBySellerID(ctx, sellerID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "seller already has a store")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing store")
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{
		SellerID:       sellerID,
		Name:           name,
		Slug:           slug,
		LogoURL:        input.LogoURL,
		ThemeColor:     input.ThemeColor,
		WhatsAppNumber: whatsapp,
		Description:    input.Description,
		Category:       input.Category,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
	}

	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, sellerID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller identity missing")
	}

	store, err := s.repo.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		store.Name = name
	}
	if input.WhatsAppNumber != nil {
		whatsapp, err := normalizeWhatsAppNumber(*input.WhatsAppNumber)
		if err != nil {
			return nil, err
		}
		store.WhatsAppNumber = whatsapp
	}
	if input.ThemeColor != nil {
		if !colorPattern.MatchString(*input.ThemeColor) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme_color must be a #rrggbb value")
		}
		store.ThemeColor = *input.ThemeColor
	}
	if input.LogoURL != nil {
		store.LogoURL = input.LogoURL
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business category")
		}
		store.Category = *input.Category
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) GetMine(ctx context.Context, sellerID uuid.UUID) (*StoreDTO, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller identity missing")
	}
	store, err := s.repo.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	return FromModel(store), nil
}

// GetBySlug resolves a public storefront. Inactive stores stay hidden.
func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	if !store.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return FromModel(store), nil
}

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func normalizeWhatsAppNumber(value string) (string, error) {
	digits := strings.Builder{}
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	if len(normalized) < 8 || len(normalized) > 15 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "whatsapp_number must contain 8 to 15 digits")
	}
	return normalized, nil
}
