package terrain

import (
	"math"

	"github.com/Faultbox/voxmap/pkg/heightmap"
)

// ShapePattern tiles the grid on a ShapeSize+Spacing stride and draws one
// shape per tile, centred in the tile. Circles and squares are 0/1 masks,
// pyramids fall off linearly with Chebyshev distance.
func (g *Generator) ShapePattern(p ShapeParams) (*heightmap.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	defer g.timed("shapes", p.Size)()

	size := p.Size
	stride := p.ShapeSize + p.Spacing
	offset := float64(stride) / 2
	half := float64(p.ShapeSize) / 2

	data, err := g.scheduler().Generate(size, func(start, end int) []float64 {
		rows := make([]float64, 0, (end-start)*size)
		for y := start; y < end; y++ {
			dy := float64(y) - (float64(y/stride*stride) + offset)
			for x := 0; x < size; x++ {
				dx := float64(x) - (float64(x/stride*stride) + offset)
				rows = append(rows, shapeValue(p.Type, dx, dy, half))
			}
		}
		return rows
	})
	if err != nil {
		return nil, err
	}
	return heightmap.FromData(size, data)
}

// shapeValue evaluates a shape at offset (dx, dy) from its centre.
func shapeValue(t ShapeType, dx, dy, half float64) float64 {
	cheb := math.Max(math.Abs(dx), math.Abs(dy))
	switch t {
	case ShapeCircle:
		if math.Hypot(dx, dy) <= half {
			return 1
		}
	case ShapeSquare:
		if cheb <= half {
			return 1
		}
	case ShapePyramid:
		return math.Max(0, half-cheb) / half
	}
	return 0
}
