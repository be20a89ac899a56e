package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, storeID, productID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDForStore(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type storeLoader interface {
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error)
}

type publicStoreLoader interface {
	GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error)
}

// Service exposes catalog management and public browsing operations.
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, sellerID, productID uuid.UUID) error
	ListMine(ctx context.Context, sellerID uuid.UUID) ([]ProductDTO, error)
	ListPublic(ctx context.Context, slug string) ([]ProductDTO, error)
	GetPublic(ctx context.Context, slug string, productID uuid.UUID) (*ProductDTO, error)
}

type service struct {
	repo    productRepository
	sellers storeLoader
	public  publicStoreLoader
	plan    config.PlanConfig
	logg    *logger.Logger
}

// NewService constructs a product service instance.
func NewService(repo productRepository, sellerStores storeLoader, publicStores publicStoreLoader, plan config.PlanConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if sellerStores == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if publicStores == nil {
		return nil, fmt.Errorf("public store loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		sellers: sellerStores,
		public:  publicStores,
		plan:    plan,
		logg:    logg,
	}, nil
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	store, err := s.loadSellerStore(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := validateCreateInput(input, s.plan.MaxProductPhoto); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	if s.plan.MaxProducts > 0 && count >= int64(s.plan.MaxProducts) {
		return nil, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("free plan allows up to %d products", s.plan.MaxProducts),
		)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		StoreID:     store.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Images:      pq.StringArray(trimmedImages(input.Images)),
		VideoURL:    input.VideoURL,
		IsActive:    isActive,
	}
	if _, err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	store, err := s.loadSellerStore(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindByIDForStore(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil {
		if input.Name.IsEmpty() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required in at least one language")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() || input.Price.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
		}
		product.Category = *input.Category
	}
	if input.Images != nil {
		images := trimmedImages(*input.Images)
		if len(images) > s.plan.MaxProductPhoto {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("a product may carry up to %d images", s.plan.MaxProductPhoto),
			)
		}
		product.Images = pq.StringArray(images)
	}
	if input.VideoURL != nil {
		product.VideoURL = input.VideoURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	store, err := s.loadSellerStore(ctx, sellerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, store.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, sellerID uuid.UUID) ([]ProductDTO, error) {
	store, err := s.loadSellerStore(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(rows), nil
}

func (s *service) ListPublic(ctx context.Context, slug string) ([]ProductDTO, error) {
	store, err := s.public.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListActiveByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(rows), nil
}

// GetPublic resolves one listing on a storefront and bumps its view counter.
func (s *service) GetPublic(ctx context.Context, slug string, productID uuid.UUID) (*ProductDTO, error) {
	store, err := s.public.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.FindByIDForStore(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	// View counting is best effort and never fails the read.
	if err := s.repo.IncrementViews(ctx, product.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", product.ID), "failed to increment product views")
	} else {
		product.Views++
	}

	return FromModel(product), nil
}

func (s *service) loadSellerStore(ctx context.Context, sellerID uuid.UUID) (*models.Store, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller identity missing")
	}
	store, err := s.sellers.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	return store, nil
}

func validateCreateInput(input CreateProductInput, maxImages int) error {
	if input.Name.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required in at least one language")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	if len(trimmedImages(input.Images)) > maxImages {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("a product may carry up to %d images", maxImages),
		)
	}
	return nil
}

func trimmedImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
