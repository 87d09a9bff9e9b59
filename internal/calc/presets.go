package calc

// TileSpec describes how much floor or wall a single box of tiles covers.
type TileSpec struct {
	TilesPerBox    int     `json:"tiles_per_box"`
	CoveragePerBox float64 `json:"coverage_per_box"`
}

// TileSizeCustom is the tile_size value reported for explicit tile specs.
const TileSizeCustom = "custom"

// Preset dimensions are feet for floor tiles and inches for wall tiles.
var floorTiles = map[string]TileSpec{
	"1x1": {TilesPerBox: 10, CoveragePerBox: 10},
	"2x2": {TilesPerBox: 4, CoveragePerBox: 16},
	"4x2": {TilesPerBox: 2, CoveragePerBox: 16},
}

var wallTiles = map[string]TileSpec{
	"12x8":  {TilesPerBox: 12, CoveragePerBox: 8},
	"10x15": {TilesPerBox: 8, CoveragePerBox: 9},
	"12x18": {TilesPerBox: 6, CoveragePerBox: 9},
}

// FloorPreset returns the floor tile spec for a preset key.
func FloorPreset(key string) (TileSpec, bool) {
	spec, ok := floorTiles[key]
	return spec, ok
}

// WallPreset returns the wall tile spec for a preset key.
func WallPreset(key string) (TileSpec, bool) {
	spec, ok := wallTiles[key]
	return spec, ok
}

// FloorPresets returns a copy of the floor preset catalog.
func FloorPresets() map[string]TileSpec {
	return copyPresets(floorTiles)
}

// WallPresets returns a copy of the wall preset catalog.
func WallPresets() map[string]TileSpec {
	return copyPresets(wallTiles)
}

func copyPresets(src map[string]TileSpec) map[string]TileSpec {
	out := make(map[string]TileSpec, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
