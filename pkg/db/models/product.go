package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the inventory record the calculator reads tile specs from.
// Only the lookup surface lives here; inventory management is a separate
// system writing the same tables.
type Product struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string           `gorm:"column:name;not null"`
	ProductType  string           `gorm:"column:product_type;not null;default:'tiles'"`
	SellingPrice *decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2)"`
	TileDetails  *TileDetails     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
