package share

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("WHATSCART_DB_DSN")
	if dsn == "" {
		t.Skip("WHATSCART_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func TestFindByShortIDPreservesItemOrder(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	snapshot := mustCreateSnapshot(t, repo, "order1234", time.Now().Add(time.Hour))

	loaded, err := repo.FindByShortID(context.Background(), snapshot.ShortID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 3)
	for i, item := range loaded.Items {
		assert.Equal(t, i+1, item.Position, "items out of order at index %d", i)
	}
}

func TestShortIDUniqueness(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	mustCreateSnapshot(t, repo, "clash1234", time.Now().Add(time.Hour))

	dup := &models.SharedCart{
		ShortID:     "clash1234",
		StoreID:     uuid.New(),
		StoreName:   "Other",
		StoreSlug:   "other",
		StoreColor:  "#3b82f6",
		TotalAmount: decimal.Zero,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	_, err := repo.Create(context.Background(), dup)
	require.Error(t, err, "expected unique violation for duplicate short id")
}

func TestDeleteExpiredSweepsOnlyStaleSnapshots(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(tx)
	mustCreateSnapshot(t, repo, "stale1234", time.Now().Add(-time.Hour))
	live := mustCreateSnapshot(t, repo, "alive1234", time.Now().Add(time.Hour))

	deleted, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByShortID(context.Background(), live.ShortID)
	assert.NoError(t, err, "live snapshot should survive sweep")
}

func mustCreateSnapshot(t *testing.T, repo *Repository, shortID string, expiresAt time.Time) *models.SharedCart {
	t.Helper()

	snapshot := &models.SharedCart{
		ShortID:     shortID,
		StoreID:     uuid.New(),
		StoreName:   "Kanchi Weaves",
		StoreSlug:   "kanchi-weaves",
		StoreColor:  "#3b82f6",
		TotalAmount: decimal.RequireFromString("42.00"),
		ExpiresAt:   expiresAt,
		Items: []models.SharedCartItem{
			{ProductID: uuid.New(), ProductName: "Third", Quantity: 1, Price: decimal.RequireFromString("10.00"), Position: 3},
			{ProductID: uuid.New(), ProductName: "First", Quantity: 2, Price: decimal.RequireFromString("11.00"), Position: 1},
			{ProductID: uuid.New(), ProductName: "Second", Quantity: 1, Price: decimal.RequireFromString("10.00"), Position: 2},
		},
	}
	created, err := repo.Create(context.Background(), snapshot)
	require.NoError(t, err)
	return created
}
