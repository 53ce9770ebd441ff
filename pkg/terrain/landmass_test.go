package terrain

import (
	"math"
	"testing"

	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

func landShare(f *heightmap.Field, threshold float64) float64 {
	n := 0
	for _, v := range f.Data {
		if v >= threshold {
			n++
		}
	}
	return float64(n) / float64(len(f.Data))
}

func TestShapeLandmassProportion(t *testing.T) {
	const size = 48
	for _, land := range []float64{0.1, 0.35, 0.6, 0.9} {
		p := DefaultLandmassParams(size)
		p.LandProportion = land

		base, err := defaultGenerator.landmassBase(p)
		if err != nil {
			t.Fatalf("landmassBase failed: %v", err)
		}
		shaped, threshold := ShapeLandmass(base, p)
		if err := shaped.Validate(); err != nil {
			t.Fatalf("land %.2f: %v", land, err)
		}

		got := landShare(shaped, threshold)
		tolerance := 2.0 / float64(size*size)
		if math.Abs(got-land) > tolerance {
			t.Errorf("land %.2f: expected share within %g, got %v", land, tolerance, got)
		}
	}
}

func TestLandmassNoLand(t *testing.T) {
	const size = 32
	p := DefaultLandmassParams(size)
	p.LandProportion = 0

	base, err := defaultGenerator.landmassBase(p)
	if err != nil {
		t.Fatal(err)
	}
	shaped, threshold := ShapeLandmass(base, p)
	if err := shaped.Validate(); err != nil {
		t.Fatalf("range: %v", err)
	}
	// Only the maximum itself reaches the threshold.
	if got := landShare(shaped, threshold); got > 1.0/float64(size*size) {
		t.Errorf("expected at most one land cell, got share %v", got)
	}
}

func TestShapeLandmassFlatInput(t *testing.T) {
	p := DefaultLandmassParams(8)
	shaped, threshold := ShapeLandmass(heightmap.Filled(8, 0.3), p)
	if threshold != heightmap.FlatValue {
		t.Errorf("expected threshold %v, got %v", heightmap.FlatValue, threshold)
	}
	for i, v := range shaped.Data {
		if v != heightmap.FlatValue {
			t.Fatalf("cell %d: expected %v, got %v", i, heightmap.FlatValue, v)
		}
	}
}

func TestShapeLandmassAllLand(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}
	base, _ := heightmap.FromData(4, data)

	p := DefaultLandmassParams(4)
	p.LandProportion = 1
	p.PlainFactor = 1
	shaped, threshold := ShapeLandmass(base, p)

	// A linear curve over the whole range leaves the ramp unchanged.
	for i, v := range shaped.Data {
		want := float64(i) / 15
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("cell %d: expected %v, got %v", i, want, v)
		}
	}
	if threshold != 0 {
		t.Errorf("expected threshold 0, got %v", threshold)
	}
}

func TestLandmassDeterministic(t *testing.T) {
	p := DefaultLandmassParams(33)
	seq, err := NewGenerator(tiles.Sequential()).Landmass(p)
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewGenerator(tiles.NewScheduler(3, nil)).Landmass(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := range seq.Data {
		if seq.Data[i] != par.Data[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, seq.Data[i], par.Data[i])
		}
	}
	if err := seq.Validate(); err != nil {
		t.Error(err)
	}
}
