package tiles

// DefaultBaseOffset moves sampling away from the origin where lattice
// artifacts and precision loss are most visible.
const DefaultBaseOffset = 1000.0

// Mapping converts pixel coordinates to noise sample coordinates. Every band
// of a grid uses the same Mapping, which keeps band seams invisible.
type Mapping struct {
	Size       int
	FocusX     float64
	FocusY     float64
	Scale      float64 // adjusted scale, pixels per noise unit
	BaseOffset float64
}

// NewMapping builds a mapping for a size×size grid. Focus values are clamped
// to [0, 1]. When referenceSize is positive the scale is multiplied by
// size/referenceSize so a large export matches a small preview.
func NewMapping(size int, focusX, focusY, scale, baseOffset float64, referenceSize int) Mapping {
	adjusted := scale
	if referenceSize > 0 {
		adjusted = scale * float64(size) / float64(referenceSize)
	}
	return Mapping{
		Size:       size,
		FocusX:     clamp01(focusX),
		FocusY:     clamp01(focusY),
		Scale:      adjusted,
		BaseOffset: baseOffset,
	}
}

// WorldOffset returns the pixel shift applied for the focus point.
func (m Mapping) WorldOffset() (float64, float64) {
	return (m.FocusX - 0.5) * float64(m.Size), (m.FocusY - 0.5) * float64(m.Size)
}

// Coord maps pixel (px, py) to sample space.
func (m Mapping) Coord(px, py int) (float64, float64) {
	ox, oy := m.WorldOffset()
	sx := m.BaseOffset + (float64(px)-ox)/m.Scale
	sy := m.BaseOffset + (float64(py)-oy)/m.Scale
	return sx, sy
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
