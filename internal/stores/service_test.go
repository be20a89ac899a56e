package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Lakshmi Textiles":   "lakshmi-textiles",
		"  Silk & Sarees  ":  "silk-sarees",
		"Chennai--Crafts!!!": "chennai-crafts",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	t.Parallel()

	repo := &stubStoreRepo{}
	svc := mustNewService(t, repo)

	dto, err := svc.Create(context.Background(), uuid.New(), CreateStoreInput{
		Name:           "Lakshmi Textiles",
		WhatsAppNumber: "+91 99988 87777",
		Category:       enums.BusinessCategoryGarments,
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if dto.Slug != "lakshmi-textiles" {
		t.Fatalf("expected derived slug, got %q", dto.Slug)
	}
	if dto.WhatsAppNumber != "919998887777" {
		t.Fatalf("expected normalized number, got %q", dto.WhatsAppNumber)
	}
	if dto.ThemeColor != DefaultThemeColor {
		t.Fatalf("expected default theme color, got %q", dto.ThemeColor)
	}
}

func TestCreateRejectsSecondStore(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	repo := &stubStoreRepo{
		bySeller: map[uuid.UUID]*models.Store{
			sellerID: {ID: uuid.New(), SellerID: sellerID},
		},
	}
	svc := mustNewService(t, repo)

	_, err := svc.Create(context.Background(), sellerID, CreateStoreInput{
		Name:           "Second Shop",
		WhatsAppNumber: "9998887777",
		Category:       enums.BusinessCategoryOther,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRejectsBadNumber(t *testing.T) {
	t.Parallel()

	svc := mustNewService(t, &stubStoreRepo{})
	_, err := svc.Create(context.Background(), uuid.New(), CreateStoreInput{
		Name:           "Shop",
		WhatsAppNumber: "12345",
		Category:       enums.BusinessCategoryOther,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBySlugHidesInactiveStore(t *testing.T) {
	t.Parallel()

	repo := &stubStoreRepo{
		bySlug: map[string]*models.Store{
			"closed-shop": {ID: uuid.New(), Slug: "closed-shop", IsActive: false},
		},
	}
	svc := mustNewService(t, repo)

	_, err := svc.GetBySlug(context.Background(), "closed-shop")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	store := &models.Store{
		ID:             uuid.New(),
		SellerID:       sellerID,
		Name:           "Old Name",
		Slug:           "old-name",
		ThemeColor:     DefaultThemeColor,
		WhatsAppNumber: "911234567890",
		Category:       enums.BusinessCategoryFabric,
		IsActive:       true,
	}
	repo := &stubStoreRepo{bySeller: map[uuid.UUID]*models.Store{sellerID: store}}
	svc := mustNewService(t, repo)

	newName := "New Name"
	color := "#ff8800"
	dto, err := svc.Update(context.Background(), sellerID, UpdateStoreInput{
		Name:       &newName,
		ThemeColor: &color,
	})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if dto.Name != "New Name" || dto.ThemeColor != "#ff8800" {
		t.Fatalf("unexpected updated dto %+v", dto)
	}
	if dto.Slug != "old-name" {
		t.Fatalf("slug must stay stable, got %q", dto.Slug)
	}
}

func mustNewService(t *testing.T, repo storeRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubStoreRepo struct {
	bySeller map[uuid.UUID]*models.Store
	bySlug   map[string]*models.Store
	created  []*models.Store
}

func (s *stubStoreRepo) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	store.ID = uuid.New()
	s.created = append(s.created, store)
	return store, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	return nil
}

func (s *stubStoreRepo) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	if store, ok := s.bySlug[slug]; ok {
		return store, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStoreRepo) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Store, error) {
	if store, ok := s.bySeller[sellerID]; ok {
		return store, nil
	}
	return nil, gorm.ErrRecordNotFound
}
