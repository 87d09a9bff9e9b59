package enums

import "fmt"

// CalculationType distinguishes floor and wall tile calculations.
type CalculationType string

const (
	CalculationTypeFloor CalculationType = "floor"
	CalculationTypeWall  CalculationType = "wall"
)

var validCalculationTypes = []CalculationType{
	CalculationTypeFloor,
	CalculationTypeWall,
}

// String implements fmt.Stringer.
func (c CalculationType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CalculationType.
func (c CalculationType) IsValid() bool {
	for _, candidate := range validCalculationTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCalculationType converts raw input into a CalculationType.
func ParseCalculationType(value string) (CalculationType, error) {
	for _, candidate := range validCalculationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid calculation type %q", value)
}
