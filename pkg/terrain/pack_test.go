package terrain

import (
	"testing"

	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

func ramp(size int) *heightmap.Field {
	f := &heightmap.Field{Size: size, Data: make([]float64, size*size)}
	for i := range f.Data {
		f.Data[i] = float64(i) / float64(len(f.Data)-1)
	}
	return f
}

func TestPackHeightmapBytes(t *testing.T) {
	field := ramp(4)
	r, err := PackHeightmap(field, DefaultPackingParams())
	if err != nil {
		t.Fatalf("PackHeightmap failed: %v", err)
	}
	if r.Width != 4 || r.Height != 4 || len(r.Pix) != 4*4*heightmap.Channels {
		t.Fatalf("unexpected raster shape %dx%d (%d bytes)", r.Width, r.Height, len(r.Pix))
	}

	for i, v := range field.Data {
		h, veg, aux := r.At(i%4, i/4)
		if want := uint8(v * 255); h != want {
			t.Errorf("cell %d: expected height %d, got %d", i, want, h)
		}
		if veg != 128 {
			t.Errorf("cell %d: expected vegetation 128, got %d", i, veg)
		}
		if aux != 255 {
			t.Errorf("cell %d: expected aux 255, got %d", i, aux)
		}
	}
}

func TestPackHeightmapShiftAndRescale(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
		in   float64
		want uint8
	}{
		{"unchanged", 0, 1, 0.5, 127},
		{"shift up", 0.25, 1, 0.5, 191},
		{"shift clips", 0.8, 1, 0.5, 255},
		{"rescale", 0, 0.5, 0.5, 63},
		{"shift down clips", -0.75, 1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := heightmap.Filled(2, tt.in)
			field.Set(1, 1, 1.0)
			p := DefaultPackingParams()
			p.MinHeight = tt.min
			p.MaxHeight = tt.max
			r, err := PackHeightmap(field, p)
			if err != nil {
				t.Fatal(err)
			}
			if h, _, _ := r.At(0, 0); h != tt.want {
				t.Errorf("expected %d, got %d", tt.want, h)
			}
		})
	}
}

func TestPackHeightmapVignette(t *testing.T) {
	field := heightmap.Filled(64, 1.0)
	p := DefaultPackingParams()
	p.VignetteStrength = 1.0
	p.VignetteRadius = 1.0

	r, err := PackHeightmap(field, p)
	if err != nil {
		t.Fatal(err)
	}
	centre, _, _ := r.At(32, 32)
	corner, _, _ := r.At(0, 0)
	if centre != 255 {
		t.Errorf("expected untouched centre, got %d", centre)
	}
	if corner != 0 {
		t.Errorf("expected black corner at full strength, got %d", corner)
	}
	mid, _, _ := r.At(48, 32)
	if mid == 0 || mid == 255 {
		t.Errorf("expected partial falloff, got %d", mid)
	}
}

func TestPackHeightmapGrassNoise(t *testing.T) {
	const size = 48
	terrain := DefaultNoiseParams(size)
	field, err := GenerateNoiseField(terrain)
	if err != nil {
		t.Fatal(err)
	}

	p := DefaultPackingParams()
	p.GrassAmount = 200
	p.Terrain = terrain
	p.Grass = &GrassNoiseParams{Scale: 0.05, Octaves: 3, Persistence: 0.5, Density: 0.5}

	seq, err := NewGenerator(tiles.Sequential()).Pack(field, p)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	par, err := NewGenerator(tiles.NewScheduler(4, nil)).Pack(field, p)
	if err != nil {
		t.Fatal(err)
	}

	grass, bare := 0, 0
	for i := range seq.Pix {
		if seq.Pix[i] != par.Pix[i] {
			t.Fatalf("byte %d differs between sequential and parallel", i)
		}
	}
	for _, v := range seq.Channel(heightmap.ChannelVegetation) {
		switch v {
		case 200:
			grass++
		case 0:
			bare++
		default:
			t.Fatalf("unexpected vegetation value %d", v)
		}
	}
	if grass == 0 || bare == 0 {
		t.Errorf("expected mixed vegetation, got %d grass / %d bare", grass, bare)
	}

	// Grass follows the terrain window.
	moved := p
	moved.Terrain.FocusX = 1.0
	shifted, err := PackHeightmap(field, moved)
	if err != nil {
		t.Fatal(err)
	}
	_, a, _ := shifted.At(size/2, 5)
	_, b, _ := seq.At(0, 5)
	if a != b {
		t.Errorf("expected grass to move with focus: %d vs %d", a, b)
	}
}

func TestShapePattern(t *testing.T) {
	tests := []struct {
		name  string
		shape ShapeType
		x, y  int
		want  float64
	}{
		{"circle centre", ShapeCircle, 10, 10, 1},
		{"circle origin", ShapeCircle, 0, 0, 0},
		{"square corner", ShapeSquare, 3, 3, 1},
		{"square gap", ShapeSquare, 14, 7, 0},
		{"pyramid apex", ShapePyramid, 7, 7, 0.9},
		{"pyramid gap", ShapePyramid, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := GenerateShapePattern(ShapeParams{Size: 20, Type: tt.shape, ShapeSize: 10, Spacing: 5})
			if err != nil {
				t.Fatal(err)
			}
			if got := f.At(tt.x, tt.y); got != tt.want {
				t.Errorf("(%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
			}
			if err := f.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestGrassMap(t *testing.T) {
	p := GrassMapParams{Size: 40, Density: 0.5, PerlinAmount: 1, SimpleAmount: 0.5, Lightness: 0.25, Seed: 9}
	seq, err := NewGenerator(tiles.Sequential()).GrassMap(p)
	if err != nil {
		t.Fatalf("GrassMap failed: %v", err)
	}
	par, err := NewGenerator(tiles.NewScheduler(4, nil)).GrassMap(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 40*40 {
		t.Fatalf("expected %d cells, got %d", 40*40, len(seq))
	}

	bare := uint8(int(255 * p.Lightness))
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("cell %d differs between sequential and parallel", i)
		}
		if seq[i] != 255 && seq[i] != bare {
			t.Fatalf("cell %d: unexpected value %d", i, seq[i])
		}
	}

	p.Density = 0
	none, err := GenerateGrassMap(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range none {
		if v != bare {
			t.Fatal("expected no vegetation at zero density")
		}
	}
}

func TestCellHash(t *testing.T) {
	if cellHash(3, 4, 1) != cellHash(3, 4, 1) {
		t.Error("hash is not stable")
	}
	if cellHash(3, 4, 1) == cellHash(4, 3, 1) {
		t.Error("expected transposed cells to differ")
	}
	for x := 0; x < 64; x++ {
		if v := cellHash(x, x*7, 5); v < 0 || v >= 1 {
			t.Fatalf("hash out of range: %v", v)
		}
	}
}
