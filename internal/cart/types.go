package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkotecha/tilebill-backend/pkg/enums"
)

// StagedItem is one calculation staged in a session cart, carrying
// everything a committed bill line needs. ProductID is set only for
// inventory-sourced tiles.
type StagedItem struct {
	ProductID       *uuid.UUID            `json:"product_id,omitempty"`
	SourceType      enums.SourceType      `json:"source_type"`
	CalculationType enums.CalculationType `json:"calculation_type"`
	TileName        string                `json:"tile_name"`
	Dimensions      string                `json:"dimensions"`
	RoomDimensions  string                `json:"room_dimensions"`
	TileSize        string                `json:"tile_size"`
	TilesPerBox     int                   `json:"tiles_per_box"`
	CoveragePerBox  float64               `json:"coverage_per_box"`
	AreaCalculated  int                   `json:"area_calculated"`
	BoxesExact      float64               `json:"boxes_exact"`
	BoxesNeeded     int                   `json:"boxes_needed"`
	PricePerBox     *decimal.Decimal      `json:"price_per_box,omitempty"`
	TotalPrice      *decimal.Decimal      `json:"total_price,omitempty"`
}
