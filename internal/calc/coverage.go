package calc

import (
	apperrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/enums"
)

const sqInchesPerSqFoot = 144

// CustomCoverage computes the square feet one box of custom tiles covers.
// Tile dimensions may be given in feet or inches; the result is rounded to
// two decimal places.
func CustomCoverage(length, width float64, unit enums.DimensionUnit, tilesPerBox int) (float64, error) {
	if length <= 0 || width <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidInput, "tile length and width must be positive numbers")
	}
	if tilesPerBox <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidTileSpec, "tiles per box must be a positive number")
	}
	if !unit.IsValid() {
		return 0, apperrors.New(apperrors.CodeInvalidTileSpec, "tile unit must be feet or inch")
	}

	tileSqFt := length * width
	if unit == enums.DimensionUnitInch {
		tileSqFt /= sqInchesPerSqFoot
	}
	return Round2(tileSqFt * float64(tilesPerBox)), nil
}
