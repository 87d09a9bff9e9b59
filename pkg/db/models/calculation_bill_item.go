package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkotecha/tilebill-backend/pkg/enums"
)

// CalculationBillItem is one committed line of a CalculationBill. ProductID
// is a weak reference back to inventory; the product may be deleted later
// without invalidating the line.
type CalculationBillItem struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BillID          uuid.UUID             `gorm:"column:bill_id;type:uuid;not null;index"`
	ProductID       *uuid.UUID            `gorm:"column:product_id;type:uuid"`
	SourceType      enums.SourceType      `gorm:"column:source_type;not null"`
	CalculationType enums.CalculationType `gorm:"column:calculation_type;not null"`
	TileName        string                `gorm:"column:tile_name;not null"`
	Dimensions      string                `gorm:"column:dimensions;not null"`
	RoomDimensions  string                `gorm:"column:room_dimensions;not null"`
	TilesPerBox     int                   `gorm:"column:tiles_per_box;not null"`
	CoveragePerBox  float64               `gorm:"column:coverage_per_box;not null"`
	AreaCalculated  int                   `gorm:"column:area_calculated;not null"`
	BoxesExact      float64               `gorm:"column:boxes_exact;not null"`
	BoxesNeeded     int                   `gorm:"column:boxes_needed;not null"`
	PricePerBox     *decimal.Decimal      `gorm:"column:price_per_box;type:numeric(12,2)"`
	TotalPrice      *decimal.Decimal      `gorm:"column:total_price;type:numeric(14,2)"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
