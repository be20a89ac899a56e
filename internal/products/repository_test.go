package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestRepositoryCountAndListByStore(t *testing.T) {
	db := openTestDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	seller := mustCreateTestSeller(t, tx)
	store := mustCreateTestStore(t, tx, seller.ID)
	active := mustCreateTestProduct(t, tx, store.ID)

	inactive := mustCreateTestProduct(t, tx, store.ID)
	inactive.IsActive = false
	if err := tx.Save(inactive).Error; err != nil {
		t.Fatalf("deactivate product: %v", err)
	}

	repo := NewRepository(tx)
	ctx := context.Background()

	count, err := repo.CountByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("count by store: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	all, err := repo.ListByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("list by store: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	public, err := repo.ListActiveByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("list active by store: %v", err)
	}
	if len(public) != 1 || public[0].ID != active.ID {
		t.Fatalf("expected only the active product, got %d rows", len(public))
	}
}

func TestRepositoryIncrementViews(t *testing.T) {
	db := openTestDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	seller := mustCreateTestSeller(t, tx)
	store := mustCreateTestStore(t, tx, seller.ID)
	product := mustCreateTestProduct(t, tx, store.ID)

	repo := NewRepository(tx)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, product.ID); err != nil {
			t.Fatalf("increment views: %v", err)
		}
	}

	got, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Views != 3 {
		t.Fatalf("expected views 3, got %d", got.Views)
	}
}

func TestRepositoryDeleteScopedToStore(t *testing.T) {
	db := openTestDB(t)
	tx := db.Begin()
	defer tx.Rollback()

	seller := mustCreateTestSeller(t, tx)
	store := mustCreateTestStore(t, tx, seller.ID)
	product := mustCreateTestProduct(t, tx, store.ID)

	repo := NewRepository(tx)
	ctx := context.Background()

	if err := repo.Delete(ctx, uuid.New(), product.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for foreign store, got %v", err)
	}

	if err := repo.Delete(ctx, store.ID, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	if _, err := repo.FindByID(ctx, product.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected product gone, got %v", err)
	}
}
