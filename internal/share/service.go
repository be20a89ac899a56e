package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/cart"
	"github.com/whatscart/whatscart-backend/internal/events"
	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/shortid"
)

const sharedCartNotFoundMessage = "shared cart not found"

type shareRepository interface {
	Create(ctx context.Context, snapshot *models.SharedCart) (*models.SharedCart, error)
	FindByShortID(ctx context.Context, shortID string) (*models.SharedCart, error)
}

type cartReader interface {
	Get(ctx context.Context, slug string, token uuid.UUID) (*cart.CartDTO, error)
	AddItem(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID, quantity int) (*cart.CartDTO, error)
}

type storeLoader interface {
	GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error)
}

type productCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
}

// Service exports carts as immutable shareable snapshots and resolves them
// back for recipients.
type Service interface {
	ShareCart(ctx context.Context, slug string, token uuid.UUID) (*ShareResultDTO, error)
	GetSharedCart(ctx context.Context, slug, shortID string) (*SharedCartDTO, error)
	Reconcile(ctx context.Context, slug, shortID string) (*ReconciliationDTO, error)
	AddAllAvailable(ctx context.Context, slug, shortID string, token uuid.UUID) (*AddAllResultDTO, error)
}

type service struct {
	repo      shareRepository
	carts     cartReader
	stores    storeLoader
	products  productCatalog
	cfg       config.ShareConfig
	publisher events.Publisher
	logg      *logger.Logger

	now      func() time.Time
	generate func(length int) (string, error)
}

// NewService wires the exporter. The event publisher may be nil.
func NewService(repo shareRepository, carts cartReader, storeLoader storeLoader, catalog productCatalog, cfg config.ShareConfig, publisher events.Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("share repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if storeLoader == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("share base URL required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		carts:     carts,
		stores:    storeLoader,
		products:  catalog,
		cfg:       cfg,
		publisher: publisher,
		logg:      logg,
		now:       time.Now,
		generate:  shortid.New,
	}, nil
}

// ShareCart freezes the current cart into a snapshot addressed by a short id.
// The source cart is left untouched.
func (s *service) ShareCart(ctx context.Context, slug string, token uuid.UUID) (*ShareResultDTO, error) {
	store, err := s.stores.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cartDTO, err := s.carts.Get(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	items := make([]models.SharedCartItem, 0, len(cartDTO.Lines))
	for _, line := range cartDTO.Lines {
		if !line.Available {
			continue
		}
		items = append(items, models.SharedCartItem{
			ProductID:    line.ProductID,
			ProductName:  line.Name,
			Quantity:     line.Quantity,
			Price:        line.Price,
			ProductImage: line.ProductImage,
			Position:     line.Position,
		})
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot share an empty cart")
	}

	now := s.now().UTC()
	snapshot := &models.SharedCart{
		StoreID:     store.ID,
		StoreName:   store.Name,
		StoreSlug:   store.Slug,
		StoreColor:  store.ThemeColor,
		TotalAmount: cartDTO.TotalAmount,
		Items:       items,
		ExpiresAt:   now.Add(s.cfg.TTL),
	}

	if err := s.createWithShortID(ctx, snapshot); err != nil {
		return nil, err
	}

	events.PublishBestEffort(ctx, s.publisher, s.logg, events.Event{
		Type:       events.TypeCartShared,
		OccurredAt: now,
		Payload: map[string]any{
			"short_id":     snapshot.ShortID,
			"store_id":     store.ID,
			"total_amount": snapshot.TotalAmount,
			"item_count":   len(items),
		},
	})

	return &ShareResultDTO{
		ShortID:   snapshot.ShortID,
		URL:       s.shareURL(store.Slug, snapshot.ShortID),
		ExpiresAt: snapshot.ExpiresAt,
	}, nil
}

// GetSharedCart resolves a snapshot under a storefront. Unknown ids, slug
// mismatches and expired snapshots are indistinguishable to the caller.
func (s *service) GetSharedCart(ctx context.Context, slug, shortID string) (*SharedCartDTO, error) {
	snapshot, err := s.load(ctx, slug, shortID)
	if err != nil {
		return nil, err
	}
	return sharedCartFromModel(snapshot), nil
}

func (s *service) load(ctx context.Context, slug, shortID string) (*models.SharedCart, error) {
	shortID = strings.TrimSpace(shortID)
	if shortID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, sharedCartNotFoundMessage)
	}

	snapshot, err := s.repo.FindByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, sharedCartNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shared cart")
	}
	if snapshot.StoreSlug != strings.ToLower(strings.TrimSpace(slug)) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, sharedCartNotFoundMessage)
	}
	if snapshot.Expired(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, sharedCartNotFoundMessage)
	}
	return snapshot, nil
}

// createWithShortID assigns a fresh short id, retrying on collision. The
// unique index is the arbiter; concurrent claimers lose the insert, not the
// exists check.
func (s *service) createWithShortID(ctx context.Context, snapshot *models.SharedCart) error {
	attempts := s.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		id, err := s.generate(s.cfg.IDLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate short id")
		}
		snapshot.ShortID = id

		_, err = s.repo.Create(ctx, snapshot)
		if err == nil {
			return nil
		}
		if db.IsUniqueViolation(err) {
			continue
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shared cart")
	}
	return pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a unique share id")
}

func (s *service) shareURL(slug, shortID string) string {
	return fmt.Sprintf("%s/store/%s/cart/%s", strings.TrimRight(s.cfg.BaseURL, "/"), slug, shortID)
}
