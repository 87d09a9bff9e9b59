package enums

import "fmt"

// SourceType identifies where a tile specification came from.
type SourceType string

const (
	SourceTypePredefined SourceType = "predefined"
	SourceTypeInventory  SourceType = "inventory"
	SourceTypeManual     SourceType = "manual"
)

var validSourceTypes = []SourceType{
	SourceTypePredefined,
	SourceTypeInventory,
	SourceTypeManual,
}

// String implements fmt.Stringer.
func (s SourceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SourceType.
func (s SourceType) IsValid() bool {
	for _, candidate := range validSourceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSourceType converts raw input into a SourceType.
func ParseSourceType(value string) (SourceType, error) {
	for _, candidate := range validSourceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid source type %q", value)
}
