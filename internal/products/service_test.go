package products

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/types"
	"github.com/rs/zerolog"
)

func TestCreateEnforcesPlanLimit(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	storeID := uuid.New()
	repo := &stubProductRepo{countByStore: 20}
	svc := newTestService(t, repo, sellerID, storeID)

	_, err := svc.Create(context.Background(), sellerID, validCreateInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsTooManyImages(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	repo := &stubProductRepo{}
	svc := newTestService(t, repo, sellerID, uuid.New())

	input := validCreateInput()
	input.Images = []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png"}
	_, err := svc.Create(context.Background(), sellerID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsNamelessProduct(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	svc := newTestService(t, &stubProductRepo{}, sellerID, uuid.New())

	input := validCreateInput()
	input.Name = types.LocalizedText{}
	_, err := svc.Create(context.Background(), sellerID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePersistsProduct(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	storeID := uuid.New()
	repo := &stubProductRepo{countByStore: 3}
	svc := newTestService(t, repo, sellerID, storeID)

	dto, err := svc.Create(context.Background(), sellerID, validCreateInput())
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if dto.StoreID != storeID {
		t.Fatalf("expected store id %s, got %s", storeID, dto.StoreID)
	}
	if !dto.IsActive {
		t.Fatal("expected product active by default")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created product, got %d", len(repo.created))
	}
}

func TestGetPublicHidesInactiveProduct(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()
	repo := &stubProductRepo{
		byID: map[uuid.UUID]*models.Product{
			productID: {ID: productID, StoreID: storeID, IsActive: false},
		},
	}
	svc := newTestService(t, repo, sellerID, storeID)

	_, err := svc.GetPublic(context.Background(), "shop", productID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.viewsIncremented != 0 {
		t.Fatal("inactive product must not accrue views")
	}
}

func TestGetPublicIncrementsViews(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()
	repo := &stubProductRepo{
		byID: map[uuid.UUID]*models.Product{
			productID: {
				ID:       productID,
				StoreID:  storeID,
				Name:     types.LocalizedText{En: "Shirt"},
				Price:    decimal.NewFromInt(100),
				IsActive: true,
				Views:    4,
			},
		},
	}
	svc := newTestService(t, repo, sellerID, storeID)

	dto, err := svc.GetPublic(context.Background(), "shop", productID)
	if err != nil {
		t.Fatalf("get public product: %v", err)
	}
	if repo.viewsIncremented != 1 {
		t.Fatalf("expected one view increment, got %d", repo.viewsIncremented)
	}
	if dto.Views != 5 {
		t.Fatalf("expected views 5 in response, got %d", dto.Views)
	}
}

func TestUpdateRejectsForeignProduct(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	svc := newTestService(t, &stubProductRepo{}, sellerID, uuid.New())

	price := decimal.NewFromInt(10)
	_, err := svc.Update(context.Background(), sellerID, uuid.New(), UpdateProductInput{Price: &price})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:     types.LocalizedText{En: "Cotton Kurti"},
		Price:    decimal.NewFromFloat(499.00),
		Stock:    10,
		Category: enums.ProductCategoryKurtis,
		Images:   []string{"https://cdn.example.com/kurti.png"},
	}
}

func newTestService(t *testing.T, repo *stubProductRepo, sellerID, storeID uuid.UUID) Service {
	t.Helper()
	store := &models.Store{ID: storeID, SellerID: sellerID, Slug: "shop", IsActive: true}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(
		repo,
		stubSellerStores{store: store},
		stubPublicStores{store: stores.FromModel(store)},
		config.PlanConfig{MaxProducts: 20, MaxProductPhoto: 5},
		logg,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubProductRepo struct {
	countByStore     int64
	created          []*models.Product
	byID             map[uuid.UUID]*models.Product
	viewsIncremented int
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	s.created = append(s.created, product)
	return product, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) error { return nil }

func (s *stubProductRepo) Delete(ctx context.Context, storeID, productID uuid.UUID) error {
	return gorm.ErrRecordNotFound
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) FindByIDForStore(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[productID]; ok && p.StoreID == storeID {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	return s.countByStore, nil
}

func (s *stubProductRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) ListActiveByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	s.viewsIncremented++
	return nil
}

type stubSellerStores struct {
	store *models.Store
}

func (s stubSellerStores) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error) {
	if s.store == nil || s.store.SellerID != sellerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

type stubPublicStores struct {
	store *stores.StoreDTO
}

func (s stubPublicStores) GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error) {
	if s.store == nil || s.store.Slug != slug {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return s.store, nil
}
