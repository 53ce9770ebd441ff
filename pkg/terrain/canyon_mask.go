package terrain

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/vector"

	"github.com/Faultbox/voxmap/pkg/heightmap"
)

// Stroke profile of rasterized canyons.
const (
	mainWidthScale   = 15.0
	mainMinWidth     = 2
	mainIntensity    = 255.0
	mainFade         = 0.2
	branchWidthScale = 5.0
	branchMinWidth   = 1
	branchIntensity  = 220.0
	branchFade       = 0.3
	widthTaper       = 0.7
	minDrawnPoints   = 4 // shorter paths are not drawn
)

// CarveCanyons traces canyons across the field, rasterizes them into a
// blurred mask and darkens the field multiplicatively under the mask.
// The input field is left untouched.
func (g *Generator) CarveCanyons(f *heightmap.Field, p CanyonParams) (*heightmap.Field, error) {
	if f == nil {
		return nil, invalid("nil height field")
	}
	if err := checkSize(f.Size); err != nil {
		return nil, err
	}
	if len(f.Data) != f.Size*f.Size {
		return nil, invalid("field data length %d does not match size %d", len(f.Data), f.Size)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Strength == 0 || p.CountPerEdge == 0 {
		return f.Clone(), nil
	}
	defer g.timed("canyons", f.Size)()

	paths := g.traceCanyons(f.Size, p)
	out := blendCanyons(f, CanyonMask(f.Size, paths, p.Strength), p.Strength)

	g.log().Debug("canyons carved",
		zap.Int("canyons", len(paths)),
		zap.Int("branches", countBranches(paths)))
	return out, nil
}

// blendCanyons darkens f multiplicatively by min(1, 1.2·strength) of the mask.
func blendCanyons(f, mask *heightmap.Field, strength float64) *heightmap.Field {
	depth := math.Min(1.0, strength*1.2)
	out := f.Clone()
	for i, h := range out.Data {
		out.Data[i] = clamp01(h * (1.0 - mask.Data[i]*depth))
	}
	return out
}

// CanyonMask rasterizes smoothed canyon paths into an 8-bit mask and blurs
// it. Paths with fewer than four points are skipped. Mask values are in
// [0, 1].
func CanyonMask(size int, paths []CanyonPath, strength float64) *heightmap.Field {
	img := image.NewGray(image.Rect(0, 0, size, size))

	for _, c := range paths {
		if len(c.Main) >= minDrawnPoints {
			main := smoothPath(c.Main)
			for j := 0; j+1 < len(main); j++ {
				progress := float64(j) / float64(len(main)-1)
				width := max(mainMinWidth, int((1.0-progress*widthTaper)*strength*mainWidthScale))
				intensity := uint8(mainIntensity * (1.0 - progress*mainFade))
				drawSegment(img, main[j], main[j+1], float64(width), intensity)
			}
		}

		for _, b := range c.Branches {
			if len(b.Points) < minDrawnPoints {
				continue
			}
			pts := smoothPath(b.Points)
			for k := 0; k+1 < len(pts); k++ {
				progress := float64(k) / float64(len(pts)-1)
				width := max(branchMinWidth, int((1.0-progress*widthTaper)*strength*branchWidthScale))
				intensity := uint8(branchIntensity * (1.0 - progress*branchFade))
				drawSegment(img, pts[k], pts[k+1], float64(width), intensity)
			}
		}
	}

	sigma := clampf(float64(size)/256.0*strength*2.0, 1.0, 3.0)
	blurred := imaging.Blur(img, sigma)

	mask := &heightmap.Field{Size: size, Data: make([]float64, size*size)}
	for i := range mask.Data {
		mask.Data[i] = float64(blurred.Pix[i*4]) / 255.0
	}
	return mask
}

// drawSegment fills the width-wide quad around segment a-b. A zero-length
// segment becomes a width×width square.
func drawSegment(img *image.Gray, a, b Point, width float64, intensity uint8) {
	// Pixel centres
	ax, ay := float64(a.X)+0.5, float64(a.Y)+0.5
	bx, by := float64(b.X)+0.5, float64(b.Y)+0.5

	ux, uy := bx-ax, by-ay
	length := math.Hypot(ux, uy)
	half := width / 2
	extend := 0.0
	if length == 0 {
		ux, uy = 1, 0
		extend = half
	} else {
		ux, uy = ux/length, uy/length
	}
	nx, ny := -uy*half, ux*half
	ex, ey := ux*extend, uy*extend

	corners := [4][2]float64{
		{ax - nx - ex, ay - ny - ey},
		{ax + nx - ex, ay + ny - ey},
		{bx + nx + ex, by + ny + ey},
		{bx - nx + ex, by - ny + ey},
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, maxX = math.Min(minX, c[0]), math.Max(maxX, c[0])
		minY, maxY = math.Min(minY, c[1]), math.Max(maxY, c[1])
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY))).Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	// The rasterizer origin maps to r.Min.
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(float32(corners[0][0]-ox), float32(corners[0][1]-oy))
	for _, c := range corners[1:] {
		z.LineTo(float32(c[0]-ox), float32(c[1]-oy))
	}
	z.ClosePath()
	z.Draw(img, r, image.NewUniform(color.Gray{Y: intensity}), image.Point{})
}

func countBranches(paths []CanyonPath) int {
	n := 0
	for _, p := range paths {
		n += len(p.Branches)
	}
	return n
}
