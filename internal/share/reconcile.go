package share

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/whatscart/whatscart-backend/internal/cart"
	"github.com/whatscart/whatscart-backend/pkg/db/models"
	pkgerrors "github.com/whatscart/whatscart-backend/pkg/errors"
)

// Reconciliation statuses for a frozen item checked against the live catalog.
const (
	StatusAvailable         = "available"
	StatusInsufficientStock = "insufficient_stock"
	StatusUnavailable       = "unavailable"
)

// ReconciledItemDTO pairs a frozen line with its live availability.
type ReconciledItemDTO struct {
	SharedItemDTO
	Status         string           `json:"status"`
	AvailableStock int              `json:"available_stock"`
	CurrentPrice   *decimal.Decimal `json:"current_price,omitempty"`
}

// ReconciliationDTO reports how a snapshot holds up against the catalog now.
type ReconciliationDTO struct {
	ShortID   string              `json:"short_id"`
	Items     []ReconciledItemDTO `json:"items"`
	HasIssues bool                `json:"has_issues"`
}

// AddAllResultDTO summarizes importing a snapshot into a live cart.
type AddAllResultDTO struct {
	Cart    *cart.CartDTO `json:"cart"`
	Added   int           `json:"added"`
	Skipped int           `json:"skipped"`
}

// Reconcile classifies each frozen item against current stock and activity.
func (s *service) Reconcile(ctx context.Context, slug, shortID string) (*ReconciliationDTO, error) {
	snapshot, err := s.load(ctx, slug, shortID)
	if err != nil {
		return nil, err
	}
	reconciled, err := s.reconcileItems(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	out := &ReconciliationDTO{ShortID: snapshot.ShortID, Items: reconciled}
	// A snapshot with no lines has nothing to restore, which is an issue too.
	if len(reconciled) == 0 {
		out.HasIssues = true
	}
	for _, item := range reconciled {
		if item.Status != StatusAvailable {
			out.HasIssues = true
			break
		}
	}
	return out, nil
}

// AddAllAvailable imports every fully available frozen line into the caller's
// cart at its frozen quantity. Lines with issues are skipped, never partially
// added.
func (s *service) AddAllAvailable(ctx context.Context, slug, shortID string, token uuid.UUID) (*AddAllResultDTO, error) {
	snapshot, err := s.load(ctx, slug, shortID)
	if err != nil {
		return nil, err
	}
	reconciled, err := s.reconcileItems(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	result := &AddAllResultDTO{}
	for _, item := range reconciled {
		if item.Status != StatusAvailable {
			result.Skipped++
			continue
		}
		dto, err := s.carts.AddItem(ctx, slug, token, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		result.Cart = dto
		result.Added++
	}

	if result.Cart == nil {
		dto, err := s.carts.Get(ctx, slug, token)
		if err != nil {
			return nil, err
		}
		result.Cart = dto
	}
	return result, nil
}

func (s *service) reconcileItems(ctx context.Context, snapshot *models.SharedCart) ([]ReconciledItemDTO, error) {
	ids := make([]uuid.UUID, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		ids = append(ids, item.ProductID)
	}
	live, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}

	out := make([]ReconciledItemDTO, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		reconciled := ReconciledItemDTO{
			SharedItemDTO: SharedItemDTO{
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				Quantity:     item.Quantity,
				Price:        item.Price,
				Subtotal:     item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
				ProductImage: item.ProductImage,
				Position:     item.Position,
			},
			Status: StatusUnavailable,
		}

		product, ok := live[item.ProductID]
		if ok && product.StoreID == snapshot.StoreID && product.IsActive && product.Stock > 0 {
			price := product.Price
			reconciled.CurrentPrice = &price
			reconciled.AvailableStock = product.Stock
			if product.Stock >= item.Quantity {
				reconciled.Status = StatusAvailable
			} else {
				reconciled.Status = StatusInsufficientStock
			}
		}

		out = append(out, reconciled)
	}
	return out, nil
}
