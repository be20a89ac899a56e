package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/whatscart/whatscart-backend/internal/events"
	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/whatsapp"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartRepository interface {
	WithTx(tx *gorm.DB) cartRepository
	FindByStoreAndToken(ctx context.Context, storeID, token uuid.UUID) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	FindLine(ctx context.Context, cartID, productID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) error
	UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteLines(ctx context.Context, cartID uuid.UUID) error
	UpdateCustomerPhone(ctx context.Context, cartID uuid.UUID, phone string) error
	MaxLinePosition(ctx context.Context, cartID uuid.UUID) (int, error)
}

type storeLoader interface {
	GetBySlug(ctx context.Context, slug string) (*stores.StoreDTO, error)
}

type productLoader interface {
	FindByIDForStore(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
}

// Service exposes anonymous cart operations. Every call is scoped by the
// storefront slug and the device cart token.
type Service interface {
	Get(ctx context.Context, slug string, token uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, slug string, token uuid.UUID) (*CartDTO, error)
	SetCustomerPhone(ctx context.Context, slug string, token uuid.UUID, phone string) (*CartDTO, error)
	BuildOrderMessage(ctx context.Context, slug string, token uuid.UUID) (*OrderMessageDTO, error)
}

type service struct {
	repo      cartRepository
	tx        txRunner
	stores    storeLoader
	products  productLoader
	publisher events.Publisher
	logg      *logger.Logger
}

// NewService builds a cart service backed by the provided stack. The event
// publisher may be nil; publishing then becomes a no-op.
func NewService(repo cartRepository, tx txRunner, storeLoader storeLoader, productLoader productLoader, publisher events.Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if storeLoader == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if productLoader == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		stores:    storeLoader,
		products:  productLoader,
		publisher: publisher,
		logg:      logg,
	}, nil
}

func (s *service) Get(ctx context.Context, slug string, token uuid.UUID) (*CartDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}
	return s.loadDTO(ctx, store.ID, token)
}

// AddItem merges quantity into an existing line or appends a new one. The
// resulting quantity never exceeds the live stock.
func (s *service) AddItem(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}
	product, err := s.loadSellableProduct(ctx, store.ID, productID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := s.findOrCreateCart(ctx, txRepo, store.ID, token)
		if err != nil {
			return err
		}

		line, err := txRepo.FindLine(ctx, record.ID, product.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
		}

		if line != nil {
			next := clampQuantity(line.Quantity+quantity, product.Stock)
			if err := txRepo.UpdateLineQuantity(ctx, line.ID, next); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
			}
			return nil
		}

		position, err := txRepo.MaxLinePosition(ctx, record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "next line position")
		}
		newLine := &models.CartLine{
			CartID:    record.ID,
			ProductID: product.ID,
			Quantity:  clampQuantity(quantity, product.Stock),
			Position:  position + 1,
		}
		if err := txRepo.CreateLine(ctx, newLine); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadDTO(ctx, store.ID, token)
}

// UpdateQuantity replaces the line quantity. Zero or less removes the line.
func (s *service) UpdateQuantity(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, slug, token, productID)
	}

	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}
	product, err := s.loadSellableProduct(ctx, store.ID, productID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindByStoreAndToken(ctx, store.ID, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		line, err := txRepo.FindLine(ctx, record.ID, product.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
		}

		next := clampQuantity(quantity, product.Stock)
		if err := txRepo.UpdateLineQuantity(ctx, line.ID, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadDTO(ctx, store.ID, token)
}

// RemoveItem drops the line for the product. Missing lines are a no-op.
func (s *service) RemoveItem(ctx context.Context, slug string, token uuid.UUID, productID uuid.UUID) (*CartDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByStoreAndToken(ctx, store.ID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCartDTO(store.ID, token), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	if err := s.repo.DeleteLine(ctx, record.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.loadDTO(ctx, store.ID, token)
}

// Clear empties the cart. Clearing an absent or empty cart succeeds.
func (s *service) Clear(ctx context.Context, slug string, token uuid.UUID) (*CartDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByStoreAndToken(ctx, store.ID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCartDTO(store.ID, token), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteLines(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart lines")
		}
		if err := txRepo.UpdateCustomerPhone(ctx, record.ID, ""); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear customer phone")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return emptyCartDTO(store.ID, token), nil
}

// SetCustomerPhone stores the buyer's contact string verbatim. Format and
// country code are the seller's concern at order time, not ours.
func (s *service) SetCustomerPhone(ctx context.Context, slug string, token uuid.UUID, phone string) (*CartDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := s.findOrCreateCart(ctx, txRepo, store.ID, token)
		if err != nil {
			return err
		}
		if err := txRepo.UpdateCustomerPhone(ctx, record.ID, phone); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set customer phone")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadDTO(ctx, store.ID, token)
}

// BuildOrderMessage renders the WhatsApp order text and wa.me link for the
// current cart, priced against the live catalog.
func (s *service) BuildOrderMessage(ctx context.Context, slug string, token uuid.UUID) (*OrderMessageDTO, error) {
	store, err := s.resolve(ctx, slug, token)
	if err != nil {
		return nil, err
	}

	dto, err := s.loadDTO(ctx, store.ID, token)
	if err != nil {
		return nil, err
	}

	lines := make([]whatsapp.Line, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		if !line.Available {
			continue
		}
		lines = append(lines, whatsapp.Line{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	message := whatsapp.FormatOrderMessage(store.Name, lines, dto.TotalAmount, dto.CustomerPhone)
	deepLink := whatsapp.DeepLink(store.WhatsAppNumber, message)

	events.PublishBestEffort(ctx, s.publisher, s.logg, events.Event{
		Type:       events.TypeOrderDispatched,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"store_id":     store.ID,
			"cart_token":   token,
			"total_amount": dto.TotalAmount,
			"line_count":   len(lines),
		},
	})

	return &OrderMessageDTO{Message: message, WhatsAppURL: deepLink}, nil
}

func (s *service) resolve(ctx context.Context, slug string, token uuid.UUID) (*stores.StoreDTO, error) {
	if token == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return s.stores.GetBySlug(ctx, slug)
}

func (s *service) loadSellableProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product.Stock <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}
	return product, nil
}

func (s *service) findOrCreateCart(ctx context.Context, txRepo cartRepository, storeID, token uuid.UUID) (*models.CartRecord, error) {
	record, err := txRepo.FindByStoreAndToken(ctx, storeID, token)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	record = &models.CartRecord{StoreID: storeID, Token: token}
	if _, err := txRepo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	return record, nil
}

func (s *service) loadDTO(ctx context.Context, storeID, token uuid.UUID) (*CartDTO, error) {
	record, err := s.repo.FindByStoreAndToken(ctx, storeID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCartDTO(storeID, token), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return buildCartDTO(record), nil
}

func clampQuantity(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
