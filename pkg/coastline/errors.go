package coastline

import (
	"fmt"
)

// ErrInvalidGeometry indicates a feature geometry that cannot be converted
// to boundary segments.
type ErrInvalidGeometry struct {
	FeatureID int64
	Type      GeometryType
	Reason    string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("feature %d: invalid geometry (%v): %s", e.FeatureID, e.Type, e.Reason)
}

// ErrInvalidOptions indicates a configuration value rejected before the
// engine runs.
type ErrInvalidOptions struct {
	Field  string
	Reason string
}

func (e *ErrInvalidOptions) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// ErrGeometryOperation indicates a polygon boolean operation that failed on
// degenerate input.
type ErrGeometryOperation struct {
	Operation string
	Reason    string
}

func (e *ErrGeometryOperation) Error() string {
	return fmt.Sprintf("geometry operation %s failed: %s", e.Operation, e.Reason)
}
