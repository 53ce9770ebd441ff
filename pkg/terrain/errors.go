package terrain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every parameter validation failure.
// Generation never starts when it is returned.
var ErrInvalidParams = errors.New("invalid generation parameters")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

func checkSize(size int) error {
	if size <= 0 {
		return invalid("size must be positive, got %d", size)
	}
	return nil
}

func checkRange(name string, v, min, max float64) error {
	if math.IsNaN(v) || v < min || v > max {
		return invalid("%s must be in [%g, %g], got %g", name, min, max, v)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("%s must be positive, got %g", name, v)
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be finite, got %g", name, v)
	}
	return nil
}
