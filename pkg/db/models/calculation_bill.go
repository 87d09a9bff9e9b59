package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculationBill is a durable, committed snapshot of a session cart.
// TotalBoxes and TotalPrice are derived from the child items and are only
// ever rewritten from a full recomputation.
type CalculationBill struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID    uuid.UUID             `gorm:"column:owner_id;type:uuid;not null"`
	BillName   *string               `gorm:"column:bill_name"`
	TotalBoxes int                   `gorm:"column:total_boxes;not null;default:0"`
	TotalPrice decimal.Decimal       `gorm:"column:total_price;type:numeric(14,2);not null;default:0"`
	CreatedBy  string                `gorm:"column:created_by;not null"`
	Items      []CalculationBillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
}
