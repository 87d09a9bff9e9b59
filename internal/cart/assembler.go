package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkotecha/tilebill-backend/internal/calc"
	"github.com/rkotecha/tilebill-backend/internal/inventory"
	"github.com/rkotecha/tilebill-backend/pkg/enums"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
)

type tileLookup interface {
	LookupTile(ctx context.Context, productID uuid.UUID) (*inventory.TileProduct, error)
}

// Assembler turns calculation requests into staged cart items. It resolves
// the tile source (preset catalog, inventory, or a manual spec) and prices
// the line when a box price is known.
type Assembler struct {
	tiles tileLookup
}

// NewAssembler builds an assembler backed by the inventory lookup.
func NewAssembler(tiles tileLookup) *Assembler {
	return &Assembler{tiles: tiles}
}

// FloorInput is a floor calculation request. Exactly one of DirectArea or
// the RoomWidth/RoomLength pair selects the dimension mode.
type FloorInput struct {
	DirectArea *float64
	RoomWidth  *float64
	RoomLength *float64

	Source      enums.SourceType
	TileSize    string
	ProductID   *uuid.UUID
	TileLength  *float64
	TileWidth   *float64
	TileUnit    enums.DimensionUnit
	TilesPerBox *int
	PricePerBox *decimal.Decimal
}

// WallInput is a wall calculation request.
type WallInput struct {
	DirectArea *float64
	RoomWidth  *float64
	RoomLength *float64
	RoomHeight *float64
	DeductDoor bool

	Source      enums.SourceType
	TileSize    string
	ProductID   *uuid.UUID
	TileLength  *float64
	TileWidth   *float64
	TileUnit    enums.DimensionUnit
	TilesPerBox *int
	PricePerBox *decimal.Decimal
}

type resolvedTile struct {
	selection  calc.Selection
	name       string
	dimensions string
	productID  *uuid.UUID
	price      *decimal.Decimal
}

// AssembleFloor runs a floor calculation and stages its outcome.
func (a *Assembler) AssembleFloor(ctx context.Context, input FloorInput) (*StagedItem, error) {
	tile, err := a.resolveTile(ctx, tileSource{
		source:      input.Source,
		tileSize:    input.TileSize,
		unitLabel:   "ft",
		productID:   input.ProductID,
		tileLength:  input.TileLength,
		tileWidth:   input.TileWidth,
		tileUnit:    input.TileUnit,
		tilesPerBox: input.TilesPerBox,
		price:       input.PricePerBox,
	})
	if err != nil {
		return nil, err
	}

	var (
		result         calc.FloorResult
		roomDimensions string
	)
	switch {
	case input.DirectArea != nil:
		result, err = calc.FloorBoxesFromArea(*input.DirectArea, tile.selection)
		roomDimensions = fmt.Sprintf("%g sq ft (direct)", *input.DirectArea)
	case input.RoomWidth != nil && input.RoomLength != nil:
		result, err = calc.FloorBoxes(*input.RoomWidth, *input.RoomLength, tile.selection)
		roomDimensions = fmt.Sprintf("%gx%g ft", *input.RoomWidth, *input.RoomLength)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "provide either a direct area or room width and length")
	}
	if err != nil {
		return nil, err
	}

	return stage(tile, enums.CalculationTypeFloor, input.Source, roomDimensions, result.TileSize,
		result.TilesPerBox, result.CoveragePerBox, result.Area, result.BoxesExact, result.BoxesNeeded), nil
}

// AssembleWall runs a wall calculation and stages its outcome.
func (a *Assembler) AssembleWall(ctx context.Context, input WallInput) (*StagedItem, error) {
	tile, err := a.resolveTile(ctx, tileSource{
		source:      input.Source,
		tileSize:    input.TileSize,
		unitLabel:   "inch",
		productID:   input.ProductID,
		tileLength:  input.TileLength,
		tileWidth:   input.TileWidth,
		tileUnit:    input.TileUnit,
		tilesPerBox: input.TilesPerBox,
		price:       input.PricePerBox,
	})
	if err != nil {
		return nil, err
	}

	var (
		result         calc.WallResult
		roomDimensions string
	)
	switch {
	case input.DirectArea != nil:
		result, err = calc.WallBoxesFromArea(*input.DirectArea, input.DeductDoor, tile.selection)
		displayArea := *input.DirectArea
		if input.DeductDoor {
			displayArea -= calc.DoorAreaDeduction
		}
		roomDimensions = fmt.Sprintf("%g sq ft (direct)", displayArea)
	case input.RoomWidth != nil && input.RoomLength != nil && input.RoomHeight != nil:
		result, err = calc.WallBoxes(*input.RoomWidth, *input.RoomLength, *input.RoomHeight, input.DeductDoor, tile.selection)
		roomDimensions = fmt.Sprintf("%gx%gx%g ft", *input.RoomWidth, *input.RoomLength, *input.RoomHeight)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "provide either a direct area or room width, length, and height")
	}
	if err != nil {
		return nil, err
	}

	return stage(tile, enums.CalculationTypeWall, input.Source, roomDimensions, result.TileSize,
		result.TilesPerBox, result.CoveragePerBox, result.WallArea, result.BoxesExact, result.BoxesNeeded), nil
}

type tileSource struct {
	source      enums.SourceType
	tileSize    string
	unitLabel   string
	productID   *uuid.UUID
	tileLength  *float64
	tileWidth   *float64
	tileUnit    enums.DimensionUnit
	tilesPerBox *int
	price       *decimal.Decimal
}

func (a *Assembler) resolveTile(ctx context.Context, src tileSource) (*resolvedTile, error) {
	switch src.source {
	case enums.SourceTypePredefined:
		if src.tileSize == "" {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTileSpec, "tile size is required for predefined tiles")
		}
		return &resolvedTile{
			selection:  calc.Selection{PresetKey: src.tileSize},
			name:       fmt.Sprintf("Predefined %s %s", src.tileSize, src.unitLabel),
			dimensions: fmt.Sprintf("%s %s", src.tileSize, src.unitLabel),
			price:      src.price,
		}, nil

	case enums.SourceTypeInventory:
		if src.productID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTileSpec, "product id is required for inventory tiles")
		}
		tile, err := a.tiles.LookupTile(ctx, *src.productID)
		if err != nil {
			return nil, err
		}
		return &resolvedTile{
			selection: calc.Selection{
				TilesPerBox:    tile.TilesPerBox,
				CoveragePerBox: tile.SqFeetPerBox,
			},
			name:       tile.Name,
			dimensions: tile.Dimensions,
			productID:  src.productID,
			price:      tile.Price,
		}, nil

	case enums.SourceTypeManual:
		if src.tileLength == nil || src.tileWidth == nil || src.tilesPerBox == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTileSpec, "tile length, width, and tiles per box are required for manual tiles")
		}
		coverage, err := calc.CustomCoverage(*src.tileLength, *src.tileWidth, src.tileUnit, *src.tilesPerBox)
		if err != nil {
			return nil, err
		}
		return &resolvedTile{
			selection: calc.Selection{
				TilesPerBox:    *src.tilesPerBox,
				CoveragePerBox: coverage,
			},
			name:       "Manual Entry",
			dimensions: fmt.Sprintf("%gx%g %s", *src.tileLength, *src.tileWidth, src.tileUnit),
			price:      src.price,
		}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid source type")
	}
}

func stage(tile *resolvedTile, calcType enums.CalculationType, source enums.SourceType,
	roomDimensions, tileSize string, tilesPerBox int, coverage float64,
	area int, boxesExact float64, boxesNeeded int) *StagedItem {

	item := &StagedItem{
		ProductID:       tile.productID,
		SourceType:      source,
		CalculationType: calcType,
		TileName:        tile.name,
		Dimensions:      tile.dimensions,
		RoomDimensions:  roomDimensions,
		TileSize:        tileSize,
		TilesPerBox:     tilesPerBox,
		CoveragePerBox:  coverage,
		AreaCalculated:  area,
		BoxesExact:      boxesExact,
		BoxesNeeded:     boxesNeeded,
		PricePerBox:     tile.price,
	}
	if tile.price != nil {
		total := tile.price.Mul(decimal.NewFromInt(int64(boxesNeeded)))
		item.TotalPrice = &total
	}
	return item
}
