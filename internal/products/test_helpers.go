package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
	"github.com/whatscart/whatscart-backend/pkg/types"
)

func mustCreateTestSeller(t *testing.T, tx *gorm.DB) *models.Seller {
	t.Helper()
	seller := &models.Seller{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("wc_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		DisplayName:  "Repo Tester",
		Language:     enums.LanguageEnglish,
		IsActive:     true,
	}
	if err := tx.Create(seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}
	return seller
}

func mustCreateTestStore(t *testing.T, tx *gorm.DB, sellerID uuid.UUID) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:             uuid.New(),
		SellerID:       sellerID,
		Name:           "Repo Store",
		Slug:           fmt.Sprintf("repo-store-%s", uuid.NewString()[:8]),
		ThemeColor:     "#3b82f6",
		WhatsAppNumber: "919998887777",
		Category:       enums.BusinessCategoryGarments,
		IsActive:       true,
	}
	if err := tx.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID uuid.UUID) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		StoreID:  storeID,
		Name:     types.LocalizedText{En: "Repo Kurti", Ta: "ரெப்போ குர்தி"},
		Price:    decimal.NewFromFloat(499.00),
		Stock:    10,
		Category: enums.ProductCategoryKurtis,
		Images:   pq.StringArray{"https://cdn.example.com/kurti.png"},
		IsActive: true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
