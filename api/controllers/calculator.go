package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkotecha/tilebill-backend/api/middleware"
	"github.com/rkotecha/tilebill-backend/api/responses"
	"github.com/rkotecha/tilebill-backend/api/validators"
	"github.com/rkotecha/tilebill-backend/internal/calc"
	cartsvc "github.com/rkotecha/tilebill-backend/internal/cart"
	"github.com/rkotecha/tilebill-backend/pkg/enums"
	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
)

// CalculateFloor runs a floor calculation and stages the result in the
// caller's session cart.
func CalculateFloor(assembler *cartsvc.Assembler, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assembler == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calculator unavailable"))
			return
		}

		var payload floorCalculationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := assembler.AssembleFloor(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		count, err := svc.Add(r.Context(), sessionID, *item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, calculationResponse{
			Item:      *item,
			CartItems: count,
		})
	}
}

// CalculateWall runs a wall calculation and stages the result in the
// caller's session cart.
func CalculateWall(assembler *cartsvc.Assembler, svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assembler == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calculator unavailable"))
			return
		}

		var payload wallCalculationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := assembler.AssembleWall(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		count, err := svc.Add(r.Context(), sessionID, *item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, calculationResponse{
			Item:      *item,
			CartItems: count,
		})
	}
}

// TilePresets returns the built-in floor and wall tile catalogs.
func TilePresets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]map[string]calc.TileSpec{
			"floor": calc.FloorPresets(),
			"wall":  calc.WallPresets(),
		})
	}
}

type tileSpecPayload struct {
	Source      string           `json:"source" validate:"required,oneof=predefined inventory manual"`
	TileSize    string           `json:"tile_size"`
	ProductID   *uuid.UUID       `json:"product_id"`
	TileLength  *float64         `json:"tile_length"`
	TileWidth   *float64         `json:"tile_width"`
	TileUnit    string           `json:"tile_unit" validate:"omitempty,oneof=feet inch"`
	TilesPerBox *int             `json:"tiles_per_box" validate:"omitempty,gt=0"`
	PricePerBox *decimal.Decimal `json:"price_per_box"`
}

type floorCalculationRequest struct {
	Area       *float64 `json:"area" validate:"omitempty,gt=0"`
	RoomWidth  *float64 `json:"room_width" validate:"omitempty,gt=0"`
	RoomLength *float64 `json:"room_length" validate:"omitempty,gt=0"`

	tileSpecPayload
}

type wallCalculationRequest struct {
	Area       *float64 `json:"area" validate:"omitempty,gt=0"`
	RoomWidth  *float64 `json:"room_width" validate:"omitempty,gt=0"`
	RoomLength *float64 `json:"room_length" validate:"omitempty,gt=0"`
	RoomHeight *float64 `json:"room_height" validate:"omitempty,gt=0"`
	DeductDoor bool     `json:"deduct_door"`

	tileSpecPayload
}

type calculationResponse struct {
	Item      cartsvc.StagedItem `json:"item"`
	CartItems int                `json:"cart_items"`
}

func (p tileSpecPayload) sourceAndUnit() (enums.SourceType, enums.DimensionUnit, error) {
	source, err := enums.ParseSourceType(p.Source)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source type")
	}

	var unit enums.DimensionUnit
	if p.TileUnit != "" {
		unit, err = enums.ParseDimensionUnit(p.TileUnit)
		if err != nil {
			return "", "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tile unit")
		}
	}

	return source, unit, nil
}

func (p floorCalculationRequest) toInput() (cartsvc.FloorInput, error) {
	source, unit, err := p.sourceAndUnit()
	if err != nil {
		return cartsvc.FloorInput{}, err
	}

	return cartsvc.FloorInput{
		DirectArea:  p.Area,
		RoomWidth:   p.RoomWidth,
		RoomLength:  p.RoomLength,
		Source:      source,
		TileSize:    p.TileSize,
		ProductID:   p.ProductID,
		TileLength:  p.TileLength,
		TileWidth:   p.TileWidth,
		TileUnit:    unit,
		TilesPerBox: p.TilesPerBox,
		PricePerBox: p.PricePerBox,
	}, nil
}

func (p wallCalculationRequest) toInput() (cartsvc.WallInput, error) {
	source, unit, err := p.sourceAndUnit()
	if err != nil {
		return cartsvc.WallInput{}, err
	}

	return cartsvc.WallInput{
		DirectArea:  p.Area,
		RoomWidth:   p.RoomWidth,
		RoomLength:  p.RoomLength,
		RoomHeight:  p.RoomHeight,
		DeductDoor:  p.DeductDoor,
		Source:      source,
		TileSize:    p.TileSize,
		ProductID:   p.ProductID,
		TileLength:  p.TileLength,
		TileWidth:   p.TileWidth,
		TileUnit:    unit,
		TilesPerBox: p.TilesPerBox,
		PricePerBox: p.PricePerBox,
	}, nil
}
