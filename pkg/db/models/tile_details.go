package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rkotecha/tilebill-backend/pkg/enums"
)

// TileDetails carries the tile-specific attributes of an inventory product.
type TileDetails struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID           `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	TilesPerBox     int                 `gorm:"column:tiles_per_box;not null"`
	NumberOfBoxes   int                 `gorm:"column:number_of_boxes;not null;default:0"`
	DimensionLength float64             `gorm:"column:dimension_length"`
	DimensionWidth  float64             `gorm:"column:dimension_width"`
	DimensionUnit   enums.DimensionUnit `gorm:"column:dimension_unit;not null;default:'feet'"`
	SqFeetPerBox    float64             `gorm:"column:sq_feet_per_box;not null"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical table name.
func (TileDetails) TableName() string {
	return "tiles_details"
}

// DimensionDisplay renders the tile dimensions for bill line items, or ""
// when dimensions were never recorded.
func (t TileDetails) DimensionDisplay() string {
	if t.DimensionLength <= 0 || t.DimensionWidth <= 0 {
		return ""
	}
	return fmt.Sprintf("%g x %g %s", t.DimensionLength, t.DimensionWidth, t.DimensionUnit)
}
