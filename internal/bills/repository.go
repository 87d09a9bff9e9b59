package bills

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
)

// SortOrder constrains bill list ordering to known identifiers; raw input
// is never interpolated into SQL.
type SortOrder string

const (
	SortNewestFirst SortOrder = "desc"
	SortOldestFirst SortOrder = "asc"
)

// ListOptions tunes bill listing. Limit <= 0 returns everything.
type ListOptions struct {
	Order   SortOrder
	Limit   int
	OwnerID *uuid.UUID
}

// BillRepository defines the persistence surface required by the bill
// service and the retention job.
type BillRepository interface {
	WithTx(tx *gorm.DB) BillRepository
	Create(ctx context.Context, bill *models.CalculationBill) error
	CreateItems(ctx context.Context, items []models.CalculationBillItem) error
	UpdateTotals(ctx context.Context, billID uuid.UUID, totalBoxes int, totalPrice decimal.Decimal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error)
	List(ctx context.Context, opts ListOptions) ([]models.CalculationBill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Repository provides persistence for calculation bills and their items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) BillRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the bill header.
func (r *Repository) Create(ctx context.Context, bill *models.CalculationBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// CreateItems inserts the bill's line items.
func (r *Repository) CreateItems(ctx context.Context, items []models.CalculationBillItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// UpdateTotals stores the aggregated totals on the bill header.
func (r *Repository) UpdateTotals(ctx context.Context, billID uuid.UUID, totalBoxes int, totalPrice decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.CalculationBill{}).
		Where("id = ?", billID).
		Updates(map[string]any{
			"total_boxes": totalBoxes,
			"total_price": totalPrice,
		}).Error
}

// FindByID loads a bill with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CalculationBill, error) {
	var bill models.CalculationBill
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&bill, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// List returns bill headers ordered by creation time.
func (r *Repository) List(ctx context.Context, opts ListOptions) ([]models.CalculationBill, error) {
	order, err := orderClause(opts.Order)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.CalculationBill{}).Order(order)
	if opts.OwnerID != nil {
		query = query.Where("owner_id = ?", *opts.OwnerID)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var bills []models.CalculationBill
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Delete removes a bill and its items.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("bill_id = ?", id).Delete(&models.CalculationBillItem{}).Error; err != nil {
		return err
	}
	result := tx.Where("id = ?", id).Delete(&models.CalculationBill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOlderThan removes bills created strictly before cutoff, items
// included, and returns the number of bills removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx)

	subquery := tx.Model(&models.CalculationBill{}).
		Select("id").
		Where("created_at < ?", cutoff)
	if err := tx.Where("bill_id IN (?)", subquery).
		Delete(&models.CalculationBillItem{}).Error; err != nil {
		return 0, err
	}

	result := tx.Where("created_at < ?", cutoff).Delete(&models.CalculationBill{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountOlderThan counts bills created strictly before cutoff.
func (r *Repository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CalculationBill{}).
		Where("created_at < ?", cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func orderClause(order SortOrder) (string, error) {
	switch order {
	case SortNewestFirst, "":
		return "created_at DESC", nil
	case SortOldestFirst:
		return "created_at ASC", nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order must be asc or desc")
	}
}
