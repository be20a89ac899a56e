package share

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/repo"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
)

// Repository persists shared-cart snapshots.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create writes the snapshot and its items in one insert chain. Items must be
// attached to the record before calling.
func (r *Repository) Create(ctx context.Context, snapshot *models.SharedCart) (*models.SharedCart, error) {
	if err := r.DB(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

// FindByShortID loads the snapshot with items in their frozen order.
func (r *Repository) FindByShortID(ctx context.Context, shortID string) (*models.SharedCart, error) {
	var snapshot models.SharedCart
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("short_id = ?", shortID).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ShortIDExists reports whether a snapshot already claimed the identifier.
func (r *Repository) ShortIDExists(ctx context.Context, shortID string) (bool, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.SharedCart{}).
		Where("short_id = ?", shortID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired removes snapshots whose lifetime ended before the cutoff.
// Items cascade with the parent row.
func (r *Repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.SharedCart{})
	return result.RowsAffected, result.Error
}
