// Package imageio reads source images and writes generated heightmaps,
// vegetation masks and packed rasters as PNG files.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder

	"github.com/Faultbox/voxmap/pkg/heightmap"
)

// RasterImage exposes a packed raster as an opaque RGB image with the
// height, vegetation and auxiliary channels in R, G and B.
func RasterImage(r *heightmap.Raster) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < r.Width*r.Height; i++ {
		src := r.Pix[i*heightmap.Channels : (i+1)*heightmap.Channels]
		dst := img.Pix[i*4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 255
	}
	return img
}

// FieldImage quantizes a height field in [0, 1] to 8-bit gray.
func FieldImage(f *heightmap.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Size, f.Size))
	for i, v := range f.Clipped().Data {
		img.Pix[i] = uint8(v * 255)
	}
	return img
}

// GrayImage wraps a row-major width×height byte plane.
func GrayImage(plane []byte, width, height int) (*image.Gray, error) {
	if len(plane) != width*height {
		return nil, fmt.Errorf("plane size mismatch: expected %d, got %d", width*height, len(plane))
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, plane)
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Decode reads a PNG, JPEG, BMP or TIFF image. When name ends in .tga the
// data is decoded as TGA.
func Decode(r io.Reader, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// DecodeFile opens and decodes an image file.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data), path)
}

// Writer saves generated images under an output directory.
type Writer struct {
	outputDir string
	prefix    string
	stamp     bool
}

// NewWriter creates a writer. With stamp set, file names carry the
// generation time so repeated runs do not overwrite each other.
func NewWriter(outputDir, prefix string, stamp bool) *Writer {
	return &Writer{outputDir: outputDir, prefix: prefix, stamp: stamp}
}

// Filename returns the path an image of the given kind is written to.
func (w *Writer) Filename(kind string) string {
	name := kind
	if w.prefix != "" {
		name = w.prefix + "_" + kind
	}
	if w.stamp {
		name += "_" + time.Now().Format("2006-01-02_15-04-05")
	}
	name += ".png"
	if w.outputDir != "" {
		name = filepath.Join(w.outputDir, name)
	}
	return name
}

// Write encodes img as PNG and returns the written path.
func (w *Writer) Write(kind string, img image.Image) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename(kind)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := EncodePNG(file, img); err != nil {
		return "", err
	}
	return filename, file.Close()
}
