// Package heightmap provides the square height field and packed raster types
// exchanged between generation stages.
package heightmap

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Field errors.
var (
	ErrInvalidSize  = errors.New("field size must be positive")
	ErrSizeMismatch = errors.New("data length does not match field size")
)

// FlatValue is written to every cell when a field has no height variation.
const FlatValue = 0.5

// Field is a square grid of heights stored row-major.
// Stages never mutate a field they received; they return a new one.
type Field struct {
	Size int
	Data []float64
}

// New allocates a zeroed size×size field.
func New(size int) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Field{Size: size, Data: make([]float64, size*size)}, nil
}

// FromData wraps row-major data as a field without copying.
func FromData(size int, data []float64) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if len(data) != size*size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, size*size, len(data))
	}
	return &Field{Size: size, Data: data}, nil
}

// Filled returns a field with every cell set to v.
func Filled(size int, v float64) *Field {
	f := &Field{Size: size, Data: make([]float64, size*size)}
	for i := range f.Data {
		f.Data[i] = v
	}
	return f
}

// At returns the height at column x, row y.
func (f *Field) At(x, y int) float64 {
	return f.Data[y*f.Size+x]
}

// Set stores the height at column x, row y.
func (f *Field) Set(x, y int, v float64) {
	f.Data[y*f.Size+x] = v
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	data := make([]float64, len(f.Data))
	copy(data, f.Data)
	return &Field{Size: f.Size, Data: data}
}

// MinMax returns the smallest and largest heights.
func (f *Field) MinMax() (float64, float64) {
	if len(f.Data) == 0 {
		return 0, 0
	}
	lo, hi := f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Max returns the largest height.
func (f *Field) Max() float64 {
	_, hi := f.MinMax()
	return hi
}

// Normalized stretches the field to [0, 1].
// A flat field becomes FlatValue everywhere.
func (f *Field) Normalized() *Field {
	lo, hi := f.MinMax()
	if hi == lo || math.IsNaN(hi-lo) || math.IsInf(hi-lo, 0) {
		return Filled(f.Size, FlatValue)
	}
	out := &Field{Size: f.Size, Data: make([]float64, len(f.Data))}
	span := hi - lo
	for i, v := range f.Data {
		out.Data[i] = clamp01((v - lo) / span)
	}
	return out
}

// Clipped returns a copy with every value clamped to [0, 1].
// NaN becomes 0.
func (f *Field) Clipped() *Field {
	out := &Field{Size: f.Size, Data: make([]float64, len(f.Data))}
	for i, v := range f.Data {
		out.Data[i] = clamp01(v)
	}
	return out
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks.
func (f *Field) Percentile(p float64) float64 {
	return Percentile(f.Data, p)
}

// Percentile computes the p-th percentile (0-100) of values with linear
// interpolation between closest ranks. Empty input yields FlatValue.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return FlatValue
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Validate checks that every value is finite and within [0, 1].
func (f *Field) Validate() error {
	if len(f.Data) != f.Size*f.Size {
		return fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, f.Size*f.Size, len(f.Data))
	}
	for i, v := range f.Data {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("cell (%d,%d) out of range: %v", i%f.Size, i/f.Size, v)
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	// Negative or NaN
	return 0
}
