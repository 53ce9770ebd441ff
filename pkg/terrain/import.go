package terrain

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/Faultbox/voxmap/pkg/heightmap"
)

// MaxImportSize caps the longest side of an imported image.
const MaxImportSize = 4096

// ImportSize returns the resized dimensions of a w×h image so that its
// longest side equals min(target, MaxImportSize).
func ImportSize(w, h, target int) (int, int) {
	side := min(target, MaxImportSize)
	aspect := float64(w) / float64(h)
	if w > h {
		return side, max(1, int(float64(side)/aspect))
	}
	return max(1, int(float64(side)*aspect)), side
}

// ProcessImport resizes an external image and converts it into a raster.
// The red channel becomes height after optional inversion, lightness lift
// and scaling; a GreenValue-opaque green overlay fills vegetation and dims
// height by the same opacity. The auxiliary channel stays zero.
func ProcessImport(src image.Image, p ImportParams) (*heightmap.Raster, error) {
	if src == nil {
		return nil, invalid("nil source image")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, invalid("empty source image")
	}

	w, h := ImportSize(b.Dx(), b.Dy(), p.TargetSize)
	resized := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, b, draw.Src, nil)

	out, err := heightmap.NewRaster(w, h)
	if err != nil {
		return nil, err
	}

	alpha := float64(int(p.GreenValue * 255))
	green := alpha
	keep := 1 - alpha/255
	for i := 0; i < w*h; i++ {
		r := float64(resized.Pix[i*4])
		if p.InvertRed {
			r = 255 - r
		}
		if p.RedLightness > 0 {
			r += (255 - r) * p.RedLightness
		}
		r = float64(uint8(math.Min(255, math.Max(0, r*p.RedValue))))

		out.Pix[i*heightmap.Channels+heightmap.ChannelHeight] = uint8(math.Round(r * keep))
		out.Pix[i*heightmap.Channels+heightmap.ChannelVegetation] = uint8(green)
	}

	if p.Blur > 0 {
		blurRaster(out, p.Blur)
	}
	return out, nil
}

// blurRaster applies a Gaussian blur to every channel in place.
func blurRaster(r *heightmap.Raster, sigma float64) {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < r.Width*r.Height; i++ {
		copy(img.Pix[i*4:i*4+heightmap.Channels], r.Pix[i*heightmap.Channels:(i+1)*heightmap.Channels])
		img.Pix[i*4+3] = 255
	}

	blurred := imaging.Blur(img, sigma)
	for i := 0; i < r.Width*r.Height; i++ {
		copy(r.Pix[i*heightmap.Channels:(i+1)*heightmap.Channels], blurred.Pix[i*4:i*4+heightmap.Channels])
	}
}

// Grayscale converts a raster's height channel into a gray image scaled by
// exposure and clipped to [0, 255].
func Grayscale(r *heightmap.Raster, exposure float64) (*image.Gray, error) {
	if r == nil {
		return nil, invalid("nil raster")
	}
	if err := checkRange("exposure", exposure, 0, 10); err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for i, v := range r.Channel(heightmap.ChannelHeight) {
		img.Pix[i] = uint8(math.Min(255, float64(v)*exposure))
	}
	return img, nil
}
