package heightmap

import "fmt"

// Channel indices within a packed raster pixel.
const (
	ChannelHeight     = 0
	ChannelVegetation = 1
	ChannelAux        = 2

	// Channels is the number of bytes per pixel.
	Channels = 3
)

// Raster is a row-major Width×Height×3 byte image in (height, vegetation,
// auxiliary) channel order. This layout is read by the voxel-world importer
// and must stay byte-exact.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster %dx%d", ErrInvalidSize, width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*Channels),
	}, nil
}

// Offset returns the index of the first byte of pixel (x, y).
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * Channels
}

// At returns the three channel bytes of pixel (x, y).
func (r *Raster) At(x, y int) (height, vegetation, aux byte) {
	o := r.Offset(x, y)
	return r.Pix[o], r.Pix[o+1], r.Pix[o+2]
}

// Set writes the three channel bytes of pixel (x, y).
func (r *Raster) Set(x, y int, height, vegetation, aux byte) {
	o := r.Offset(x, y)
	r.Pix[o] = height
	r.Pix[o+1] = vegetation
	r.Pix[o+2] = aux
}

// Channel extracts one channel as a Width×Height plane.
func (r *Raster) Channel(c int) []byte {
	out := make([]byte, r.Width*r.Height)
	for i := range out {
		out[i] = r.Pix[i*Channels+c]
	}
	return out
}

// SetChannel overwrites one channel from a Width×Height plane.
func (r *Raster) SetChannel(c int, plane []byte) error {
	if len(plane) != r.Width*r.Height {
		return fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, r.Width*r.Height, len(plane))
	}
	for i, v := range plane {
		r.Pix[i*Channels+c] = v
	}
	return nil
}

// FillChannel sets one channel of every pixel to v.
func (r *Raster) FillChannel(c int, v byte) {
	for i := c; i < len(r.Pix); i += Channels {
		r.Pix[i] = v
	}
}
