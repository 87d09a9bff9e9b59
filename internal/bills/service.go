package bills

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkotecha/tilebill-backend/internal/cart"
	"github.com/rkotecha/tilebill-backend/pkg/db"
	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartReader interface {
	Items(ctx context.Context, sessionID string) ([]cart.StagedItem, error)
	Clear(ctx context.Context, sessionID string) error
}

// CommitInput names the bill being committed and who is committing it.
type CommitInput struct {
	SessionID string
	OwnerID   uuid.UUID
	CreatedBy string
	BillName  *string
}

// Service exposes bill lifecycle operations.
type Service interface {
	Commit(ctx context.Context, input CommitInput) (*models.CalculationBill, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error)
	List(ctx context.Context, opts ListOptions) ([]models.CalculationBill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	CountOlderThan(ctx context.Context, days int) (int64, error)
}

type service struct {
	repo BillRepository
	tx   txRunner
	cart cartReader
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a bill service backed by the provided stack.
func NewService(repo BillRepository, tx txRunner, cartSvc cartReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bill repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		cart: cartSvc,
		logg: logg,
		now:  time.Now,
	}, nil
}

// Commit turns the session's staged items into a persisted bill. The bill
// header, its items, and the recomputed totals land in one transaction;
// the cart is cleared only after the transaction commits, so a failed
// commit leaves the cart intact.
func (s *service) Commit(ctx context.Context, input CommitInput) (*models.CalculationBill, error) {
	if input.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}

	items, err := s.cart.Items(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no items in bill")
	}

	bill := &models.CalculationBill{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		BillName:  input.BillName,
		CreatedBy: input.CreatedBy,
	}
	totalBoxes, totalPrice := sumTotals(items)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, bill); err != nil {
			return err
		}
		if err := repo.CreateItems(ctx, toBillItems(bill.ID, items)); err != nil {
			return err
		}
		return repo.UpdateTotals(ctx, bill.ID, totalBoxes, totalPrice)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "calculation_bills_pkey") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "bill already committed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "committing bill")
	}

	if err := s.cart.Clear(ctx, input.SessionID); err != nil {
		// the bill is durable; an uncleared cart only costs a manual clear
		if s.logg != nil {
			s.logg.Error(ctx, "clearing cart after commit", err)
		}
	}

	bill.TotalBoxes = totalBoxes
	bill.TotalPrice = totalPrice
	return bill, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading bill")
	}
	return bill, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]models.CalculationBill, error) {
	bills, err := s.repo.List(ctx, opts)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bills")
	}
	return bills, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting bill")
	}
	return nil
}

// PurgeOlderThan removes bills created strictly before now minus days and
// returns how many were removed.
func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff, err := s.cutoff(days)
	if err != nil {
		return 0, err
	}
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "purging bills")
	}
	return deleted, nil
}

func (s *service) CountOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff, err := s.cutoff(days)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.CountOlderThan(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting stale bills")
	}
	return count, nil
}

func (s *service) cutoff(days int) (time.Time, error) {
	if days <= 0 {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "days must be positive")
	}
	return s.now().AddDate(0, 0, -days), nil
}

// sumTotals aggregates a bill's totals from its lines. Every line counts
// its boxes; a line without a price contributes zero to the price total.
func sumTotals(items []cart.StagedItem) (int, decimal.Decimal) {
	totalBoxes := 0
	totalPrice := decimal.Zero
	for _, item := range items {
		totalBoxes += item.BoxesNeeded
		if item.TotalPrice != nil {
			totalPrice = totalPrice.Add(*item.TotalPrice)
		}
	}
	return totalBoxes, totalPrice
}

func toBillItems(billID uuid.UUID, items []cart.StagedItem) []models.CalculationBillItem {
	out := make([]models.CalculationBillItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.CalculationBillItem{
			ID:              uuid.New(),
			BillID:          billID,
			ProductID:       item.ProductID,
			SourceType:      item.SourceType,
			CalculationType: item.CalculationType,
			TileName:        item.TileName,
			Dimensions:      item.Dimensions,
			RoomDimensions:  item.RoomDimensions,
			TilesPerBox:     item.TilesPerBox,
			CoveragePerBox:  item.CoveragePerBox,
			AreaCalculated:  item.AreaCalculated,
			BoxesExact:      item.BoxesExact,
			BoxesNeeded:     item.BoxesNeeded,
			PricePerBox:     item.PricePerBox,
			TotalPrice:      item.TotalPrice,
		})
	}
	return out
}
