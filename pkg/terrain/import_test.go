package terrain

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/voxmap/pkg/heightmap"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestImportSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, target int
		wantW, wantH int
	}{
		{"landscape", 800, 400, 512, 512, 256},
		{"portrait", 300, 600, 512, 256, 512},
		{"square", 100, 100, 64, 64, 64},
		{"capped", 10000, 5000, 8192, MaxImportSize, MaxImportSize / 2},
		{"thin", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ImportSize(tt.w, tt.h, tt.target)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}
}

func TestProcessImport(t *testing.T) {
	src := uniformImage(16, 8, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

	tests := []struct {
		name      string
		params    ImportParams
		wantRed   uint8
		wantGreen uint8
	}{
		{"plain", ImportParams{TargetSize: 8, RedValue: 1}, 200, 0},
		{"inverted", ImportParams{TargetSize: 8, RedValue: 1, InvertRed: true}, 55, 0},
		{"lightness", ImportParams{TargetSize: 8, RedValue: 1, RedLightness: 0.5}, 227, 0},
		{"scaled", ImportParams{TargetSize: 8, RedValue: 2}, 255, 0},
		{"overlay", ImportParams{TargetSize: 8, RedValue: 1, GreenValue: 0.5}, 100, 127},
		{"blurred", ImportParams{TargetSize: 8, RedValue: 1, Blur: 1.5}, 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ProcessImport(src, tt.params)
			if err != nil {
				t.Fatalf("ProcessImport failed: %v", err)
			}
			if r.Width != 8 || r.Height != 4 {
				t.Fatalf("expected 8x4, got %dx%d", r.Width, r.Height)
			}
			h, g, aux := r.At(3, 2)
			if !near(h, tt.wantRed) {
				t.Errorf("expected red %d, got %d", tt.wantRed, h)
			}
			if !near(g, tt.wantGreen) {
				t.Errorf("expected green %d, got %d", tt.wantGreen, g)
			}
			if aux != 0 {
				t.Errorf("expected empty aux channel, got %d", aux)
			}
		})
	}
}

func TestProcessImportInvalid(t *testing.T) {
	src := uniformImage(4, 4, color.NRGBA{A: 255})
	if _, err := ProcessImport(src, ImportParams{TargetSize: 0, RedValue: 1}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for zero size, got %v", err)
	}
	if _, err := ProcessImport(nil, ImportParams{TargetSize: 4, RedValue: 1}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for nil image, got %v", err)
	}
	if _, err := ProcessImport(src, ImportParams{TargetSize: 4, GreenValue: 2}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for green value, got %v", err)
	}
}

func TestGrayscale(t *testing.T) {
	r, _ := heightmap.NewRaster(2, 1)
	r.Set(0, 0, 100, 0, 0)
	r.Set(1, 0, 200, 0, 0)

	img, err := Grayscale(r, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if img.GrayAt(0, 0).Y != 200 {
		t.Errorf("expected 200, got %d", img.GrayAt(0, 0).Y)
	}
	if img.GrayAt(1, 0).Y != 255 {
		t.Errorf("expected clipped 255, got %d", img.GrayAt(1, 0).Y)
	}
}
