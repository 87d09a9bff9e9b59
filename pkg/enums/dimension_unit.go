package enums

import "fmt"

// DimensionUnit is the linear unit a tile dimension is expressed in.
type DimensionUnit string

const (
	DimensionUnitFeet DimensionUnit = "feet"
	DimensionUnitInch DimensionUnit = "inch"
)

var validDimensionUnits = []DimensionUnit{
	DimensionUnitFeet,
	DimensionUnitInch,
}

// String implements fmt.Stringer.
func (d DimensionUnit) String() string {
	return string(d)
}

// IsValid reports whether the unit is recognized.
func (d DimensionUnit) IsValid() bool {
	for _, candidate := range validDimensionUnits {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDimensionUnit converts a raw string into a DimensionUnit.
func ParseDimensionUnit(value string) (DimensionUnit, error) {
	for _, candidate := range validDimensionUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dimension unit %q", value)
}
