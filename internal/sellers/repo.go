package sellers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/repo"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	"github.com/whatscart/whatscart-backend/pkg/enums"
)

// Repository exposes seller persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a sellers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Create inserts a new seller and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateSellerDTO) (*models.Seller, error) {
	seller := dto.ToModel()
	if err := r.DB(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// FindByEmail retrieves the seller matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB(ctx).Where("email = ?", email).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// FindByID loads a seller by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// UpdateLanguage switches the seller's catalog locale.
func (r *Repository) UpdateLanguage(ctx context.Context, id uuid.UUID, language enums.Language) error {
	return r.DB(ctx).
		Model(&models.Seller{}).
		Where("id = ?", id).
		Updates(map[string]any{"language": language, "updated_at": time.Now().UTC()}).Error
}
