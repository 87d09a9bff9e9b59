package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkotecha/tilebill-backend/pkg/db/models"
	"github.com/rkotecha/tilebill-backend/pkg/enums"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

// Service exposes read-only tile inventory lookups for the calculator.
type Service interface {
	LookupTile(ctx context.Context, productID uuid.UUID) (*TileProduct, error)
	ListTiles(ctx context.Context) ([]TileProduct, error)
}

// TileProduct is the calculator-facing view of an inventory tile.
type TileProduct struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Dimensions      string              `json:"dimensions"`
	TilesPerBox     int                 `json:"tiles_per_box"`
	SqFeetPerBox    float64             `json:"sq_feet_per_box"`
	DimensionLength float64             `json:"dimension_length"`
	DimensionWidth  float64             `json:"dimension_width"`
	DimensionUnit   enums.DimensionUnit `json:"dimension_unit"`
	Price           *decimal.Decimal    `json:"price,omitempty"`
}

type tileReader interface {
	FindTileProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListTileProducts(ctx context.Context) ([]models.Product, error)
}

type service struct {
	repo tileReader
	logg *logger.Logger
}

// NewService builds the inventory lookup service.
func NewService(repo tileReader, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) LookupTile(ctx context.Context, productID uuid.UUID) (*TileProduct, error) {
	product, err := s.repo.FindTileProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading tile product")
	}
	if product.TileDetails == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product has no tile details")
	}
	return toTileProduct(product), nil
}

func (s *service) ListTiles(ctx context.Context) ([]TileProduct, error) {
	products, err := s.repo.ListTileProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing tile products")
	}

	tiles := make([]TileProduct, 0, len(products))
	for i := range products {
		product := &products[i]
		if product.TileDetails == nil {
			// inventory rows without tile specs cannot feed the calculator
			continue
		}
		tiles = append(tiles, *toTileProduct(product))
	}
	return tiles, nil
}

func toTileProduct(product *models.Product) *TileProduct {
	details := product.TileDetails
	return &TileProduct{
		ID:              product.ID,
		Name:            product.Name,
		Dimensions:      details.DimensionDisplay(),
		TilesPerBox:     details.TilesPerBox,
		SqFeetPerBox:    details.SqFeetPerBox,
		DimensionLength: details.DimensionLength,
		DimensionWidth:  details.DimensionWidth,
		DimensionUnit:   details.DimensionUnit,
		Price:           product.SellingPrice,
	}
}
