package calc

import (
	apperrors "github.com/rkotecha/tilebill-backend/pkg/errors"
)

const (
	// DoorPerimeterDeduction is the linear feet removed from a room
	// perimeter for the door entrance.
	DoorPerimeterDeduction = 2.0
	// DoorAreaDeduction is the square feet removed from a directly
	// supplied wall area for a standard door.
	DoorAreaDeduction = 21.0
)

// Selection identifies the tile a calculation should use: a preset key, an
// explicit spec, or both. A recognized preset key wins over the explicit
// spec; an unrecognized key falls through to the explicit spec.
type Selection struct {
	PresetKey      string
	TilesPerBox    int
	CoveragePerBox float64
}

// FloorResult is the outcome of a floor box calculation.
type FloorResult struct {
	Area           int     `json:"area"`
	TileSize       string  `json:"tile_size"`
	TilesPerBox    int     `json:"tiles_per_box"`
	CoveragePerBox float64 `json:"coverage_per_box"`
	BoxesExact     float64 `json:"boxes_exact"`
	BoxesNeeded    int     `json:"boxes_needed"`
}

// WallResult is the outcome of a wall box calculation. Perimeter is zero
// when the wall area was supplied directly.
type WallResult struct {
	Perimeter      int     `json:"perimeter,omitempty"`
	WallArea       int     `json:"wall_area"`
	DoorDeducted   bool    `json:"door_deducted"`
	TileSize       string  `json:"tile_size"`
	TilesPerBox    int     `json:"tiles_per_box"`
	CoveragePerBox float64 `json:"coverage_per_box"`
	BoxesExact     float64 `json:"boxes_exact"`
	BoxesNeeded    int     `json:"boxes_needed"`
}

// FloorArea computes a room's floor area in square feet, rounded up.
func FloorArea(width, length float64) (int, error) {
	if width <= 0 || length <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidInput, "width and length must be positive numbers")
	}
	return RoundUp(width * length), nil
}

// WallArea computes the tileable wall area of a room. The perimeter loses
// two linear feet for the door entrance when deductDoor is set, and both the
// perimeter and the area round up independently.
func WallArea(width, length, height float64, deductDoor bool) (perimeter int, wallArea int, err error) {
	if width <= 0 || length <= 0 || height <= 0 {
		return 0, 0, apperrors.New(apperrors.CodeInvalidInput, "width, length, and height must be positive numbers")
	}

	raw := 2 * (width + length)
	if deductDoor {
		raw -= DoorPerimeterDeduction
	}
	perimeter = RoundUp(raw)
	wallArea = RoundUp(float64(perimeter) * height)
	return perimeter, wallArea, nil
}

// FloorBoxes computes the boxes needed to tile a floor from room dimensions.
func FloorBoxes(width, length float64, sel Selection) (FloorResult, error) {
	area, err := FloorArea(width, length)
	if err != nil {
		return FloorResult{}, err
	}
	return floorBoxes(area, sel)
}

// FloorBoxesFromArea computes the boxes needed to tile a floor from a
// directly supplied area in square feet.
func FloorBoxesFromArea(area float64, sel Selection) (FloorResult, error) {
	if area <= 0 {
		return FloorResult{}, apperrors.New(apperrors.CodeInvalidInput, "area must be a positive number")
	}
	return floorBoxes(RoundUp(area), sel)
}

func floorBoxes(area int, sel Selection) (FloorResult, error) {
	tileSize, spec, err := resolveSelection(sel, FloorPreset)
	if err != nil {
		return FloorResult{}, err
	}

	exact := float64(area) / spec.CoveragePerBox
	return FloorResult{
		Area:           area,
		TileSize:       tileSize,
		TilesPerBox:    spec.TilesPerBox,
		CoveragePerBox: spec.CoveragePerBox,
		BoxesExact:     Round2(exact),
		BoxesNeeded:    RoundUp(exact),
	}, nil
}

// WallBoxes computes the boxes needed to tile the walls of a room from its
// dimensions.
func WallBoxes(width, length, height float64, deductDoor bool, sel Selection) (WallResult, error) {
	perimeter, wallArea, err := WallArea(width, length, height, deductDoor)
	if err != nil {
		return WallResult{}, err
	}
	result, err := wallBoxes(wallArea, deductDoor, sel)
	if err != nil {
		return WallResult{}, err
	}
	result.Perimeter = perimeter
	return result, nil
}

// WallBoxesFromArea computes the boxes needed for a directly supplied wall
// area. A standard door worth of area is removed first when deductDoor is
// set.
func WallBoxesFromArea(area float64, deductDoor bool, sel Selection) (WallResult, error) {
	if deductDoor {
		area -= DoorAreaDeduction
	}
	if area <= 0 {
		return WallResult{}, apperrors.New(apperrors.CodeInvalidInput, "wall area must be a positive number after door deduction")
	}
	return wallBoxes(RoundUp(area), deductDoor, sel)
}

func wallBoxes(wallArea int, deductDoor bool, sel Selection) (WallResult, error) {
	tileSize, spec, err := resolveSelection(sel, WallPreset)
	if err != nil {
		return WallResult{}, err
	}

	exact := float64(wallArea) / spec.CoveragePerBox
	return WallResult{
		WallArea:       wallArea,
		DoorDeducted:   deductDoor,
		TileSize:       tileSize,
		TilesPerBox:    spec.TilesPerBox,
		CoveragePerBox: spec.CoveragePerBox,
		BoxesExact:     Round2(exact),
		BoxesNeeded:    RoundUp(exact),
	}, nil
}

func resolveSelection(sel Selection, preset func(string) (TileSpec, bool)) (string, TileSpec, error) {
	if sel.PresetKey != "" {
		if spec, ok := preset(sel.PresetKey); ok {
			return sel.PresetKey, spec, nil
		}
	}
	if sel.TilesPerBox > 0 && sel.CoveragePerBox > 0 {
		return TileSizeCustom, TileSpec{TilesPerBox: sel.TilesPerBox, CoveragePerBox: sel.CoveragePerBox}, nil
	}
	return "", TileSpec{}, apperrors.New(apperrors.CodeInvalidTileSpec, "either provide a valid tile size or both tiles per box and coverage per box")
}
