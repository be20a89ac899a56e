package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/repo"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
)

// Repository exposes persistence operations for anonymous carts.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) cartRepository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// FindByStoreAndToken loads the cart for one (store, token) pair with its
// lines in insertion order and their live products.
func (r *Repository) FindByStoreAndToken(ctx context.Context, storeID, token uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.DB(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lines.Product").
		Where("store_id = ? AND token = ?", storeID, token).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new cart record.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindLine returns the line for the product, if present.
func (r *Repository) FindLine(ctx context.Context, cartID, productID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.DB(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateLine appends a line to the cart.
func (r *Repository) CreateLine(ctx context.Context, line *models.CartLine) error {
	return r.DB(ctx).Create(line).Error
}

// UpdateLineQuantity rewrites the quantity for an existing line.
func (r *Repository) UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	return r.DB(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

// DeleteLine removes the line for the product. Missing lines are a no-op.
func (r *Repository) DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.DB(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartLine{}).Error
}

// DeleteLines removes every line belonging to the cart.
func (r *Repository) DeleteLines(ctx context.Context, cartID uuid.UUID) error {
	return r.DB(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartLine{}).Error
}

// UpdateCustomerPhone stores the optional buyer phone on the cart.
func (r *Repository) UpdateCustomerPhone(ctx context.Context, cartID uuid.UUID, phone string) error {
	return r.DB(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", cartID).
		Update("customer_phone", phone).Error
}

// MaxLinePosition returns the highest position in the cart, 0 when empty.
func (r *Repository) MaxLinePosition(ctx context.Context, cartID uuid.UUID) (int, error) {
	var max int
	err := r.DB(ctx).
		Model(&models.CartLine{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// DeleteStale removes carts untouched since the cutoff. Lines cascade.
// Used by the maintenance worker.
func (r *Repository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&models.CartRecord{})
	return result.RowsAffected, result.Error
}
