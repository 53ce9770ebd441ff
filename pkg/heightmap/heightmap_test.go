package heightmap

import (
	"errors"
	"math"
	"testing"
)

func TestNewInvalidSize(t *testing.T) {
	for _, size := range []int{0, -4} {
		if _, err := New(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d): expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestFromDataMismatch(t *testing.T) {
	_, err := FromData(3, make([]float64, 8))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestAtSet(t *testing.T) {
	f, err := New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f.Set(3, 1, 0.75)
	if f.At(3, 1) != 0.75 {
		t.Errorf("expected 0.75, got %f", f.At(3, 1))
	}
	if f.Data[1*4+3] != 0.75 {
		t.Error("expected row-major storage")
	}
}

func TestNormalized(t *testing.T) {
	f, _ := FromData(2, []float64{-1, 0, 1, 3})
	n := f.Normalized()

	want := []float64{0, 0.25, 0.5, 1}
	for i, v := range n.Data {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("cell %d: expected %f, got %f", i, want[i], v)
		}
	}
	if f.Data[0] != -1 {
		t.Error("Normalized must not modify the receiver")
	}
}

func TestNormalizedFlat(t *testing.T) {
	f := Filled(3, 7)
	n := f.Normalized()
	for i, v := range n.Data {
		if v != FlatValue {
			t.Errorf("cell %d: expected %f for flat field, got %f", i, FlatValue, v)
		}
	}
}

func TestClipped(t *testing.T) {
	f, _ := FromData(2, []float64{-0.5, 0.5, 1.5, math.NaN()})
	c := f.Clipped()
	want := []float64{0, 0.5, 1, 0}
	for i, v := range c.Data {
		if v != want[i] {
			t.Errorf("cell %d: expected %f, got %f", i, want[i], v)
		}
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{4, 1, 3, 2, 5}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 2},
		{50, 3},
		{62.5, 3.5},
		{100, 5},
		{150, 5},
		{-10, 1},
	}

	for _, tt := range tests {
		got := Percentile(values, tt.p)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if values[0] != 4 {
		t.Error("Percentile must not reorder its input")
	}
	if Percentile(nil, 50) != FlatValue {
		t.Error("expected FlatValue for empty input")
	}
}

func TestValidate(t *testing.T) {
	good := Filled(2, 0.3)
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad, _ := FromData(2, []float64{0, 0.2, math.Inf(1), 0.4})
	if err := bad.Validate(); err == nil {
		t.Error("expected error for infinite value")
	}
}

func TestRaster(t *testing.T) {
	r, err := NewRaster(3, 2)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	if len(r.Pix) != 18 {
		t.Fatalf("expected 18 bytes, got %d", len(r.Pix))
	}

	r.Set(2, 1, 10, 20, 30)
	h, v, a := r.At(2, 1)
	if h != 10 || v != 20 || a != 30 {
		t.Errorf("expected (10,20,30), got (%d,%d,%d)", h, v, a)
	}
	// Row-major, height first
	if r.Pix[15] != 10 || r.Pix[16] != 20 || r.Pix[17] != 30 {
		t.Errorf("unexpected byte layout: %v", r.Pix[15:])
	}

	r.FillChannel(ChannelAux, 255)
	aux := r.Channel(ChannelAux)
	for i, b := range aux {
		if b != 255 {
			t.Errorf("aux pixel %d = %d, want 255", i, b)
		}
	}

	if err := r.SetChannel(ChannelVegetation, make([]byte, 5)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}

	if _, err := NewRaster(0, 3); err == nil {
		t.Error("expected error for empty raster")
	}
}
