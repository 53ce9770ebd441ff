package terrain

import (
	"math"

	"github.com/Faultbox/voxmap/pkg/noise"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

// NoiseParams configures a plain, fractal or turbulence noise field.
type NoiseParams struct {
	Size        int
	Seed        int64
	Type        noise.Mode
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Scale       float64

	// Focus selects the window centre in [0, 1]; values outside are clamped.
	FocusX float64
	FocusY float64

	// BaseOffset is added to every sample coordinate.
	BaseOffset float64

	// ReferenceSize is the preview resolution an export should match.
	// Zero disables zoom matching.
	ReferenceSize int

	// Provider selects the noise implementation; empty means simplex.
	Provider noise.Provider
}

// DefaultNoiseParams returns fractal noise settings for a size×size grid.
func DefaultNoiseParams(size int) NoiseParams {
	return NoiseParams{
		Size:        size,
		Seed:        42,
		Type:        noise.Fractal,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Scale:       100.0,
		FocusX:      0.5,
		FocusY:      0.5,
		BaseOffset:  tiles.DefaultBaseOffset,
		Provider:    noise.ProviderSimplex,
	}
}

// Validate reports the first out-of-range parameter.
func (p NoiseParams) Validate() error {
	if err := checkSize(p.Size); err != nil {
		return err
	}
	if err := p.validateSampling(); err != nil {
		return err
	}
	if p.Octaves < 1 {
		return invalid("octaves must be at least 1, got %d", p.Octaves)
	}
	if p.Type < noise.Perlin || p.Type > noise.Turbulence {
		return invalid("unknown noise type %v", p.Type)
	}
	if err := checkFinite("persistence", p.Persistence); err != nil {
		return err
	}
	return checkPositive("lacunarity", p.Lacunarity)
}

// validateSampling checks the fields that define the coordinate mapping.
func (p NoiseParams) validateSampling() error {
	if err := checkPositive("scale", p.Scale); err != nil {
		return err
	}
	if err := checkFinite("focus x", p.FocusX); err != nil {
		return err
	}
	if err := checkFinite("focus y", p.FocusY); err != nil {
		return err
	}
	if err := checkFinite("base offset", p.BaseOffset); err != nil {
		return err
	}
	if p.ReferenceSize < 0 {
		return invalid("reference size must not be negative, got %d", p.ReferenceSize)
	}
	return nil
}

// Mapping returns the pixel to sample-space mapping for a size×size grid.
func (p NoiseParams) Mapping(size int) tiles.Mapping {
	return tiles.NewMapping(size, p.FocusX, p.FocusY, p.Scale, p.BaseOffset, p.ReferenceSize)
}

// LandmassParams configures water/land shaping.
type LandmassParams struct {
	Size           int
	LandProportion float64 // share of cells at or above the water threshold
	PlainFactor    float64 // exponent applied to land heights, >= 1 flattens
	ShoreHeight    float64 // drop applied to water cells
	NoiseScale     float64
	Octaves        int
	Seed           int64

	// Persistence and Lacunarity default to 0.5 and 2.0 when zero.
	Persistence float64
	Lacunarity  float64

	Provider noise.Provider
}

// DefaultLandmassParams returns a 60% land continent setup.
func DefaultLandmassParams(size int) LandmassParams {
	return LandmassParams{
		Size:           size,
		LandProportion: 0.6,
		PlainFactor:    2.0,
		ShoreHeight:    0.05,
		NoiseScale:     150.0,
		Octaves:        6,
		Seed:           42,
		Persistence:    0.5,
		Lacunarity:     2.0,
		Provider:       noise.ProviderSimplex,
	}
}

// Validate reports the first out-of-range parameter.
func (p LandmassParams) Validate() error {
	if err := checkSize(p.Size); err != nil {
		return err
	}
	if err := checkRange("land proportion", p.LandProportion, 0, 1); err != nil {
		return err
	}
	if err := checkRange("plain factor", p.PlainFactor, 1, 100); err != nil {
		return err
	}
	if err := checkRange("shore height", p.ShoreHeight, 0, 1); err != nil {
		return err
	}
	if err := checkPositive("noise scale", p.NoiseScale); err != nil {
		return err
	}
	if p.Octaves < 1 {
		return invalid("octaves must be at least 1, got %d", p.Octaves)
	}
	if err := checkFinite("persistence", p.Persistence); err != nil {
		return err
	}
	if p.Lacunarity < 0 {
		return invalid("lacunarity must not be negative, got %g", p.Lacunarity)
	}
	return nil
}

func (p LandmassParams) octaves() noise.Octaves {
	o := noise.Octaves{
		Count:       p.Octaves,
		Persistence: p.Persistence,
		Lacunarity:  p.Lacunarity,
		Scale:       p.NoiseScale,
	}
	if o.Persistence == 0 {
		o.Persistence = 0.5
	}
	if o.Lacunarity == 0 {
		o.Lacunarity = 2.0
	}
	return o
}

// CanyonParams configures the canyon carver.
type CanyonParams struct {
	Strength      float64 // carve depth and stroke width, 0 disables
	LengthRatio   float64 // share of each traced path that is drawn
	BranchDensity float64 // branch probability per eligible path point
	CountPerEdge  int
	Seed          int64
}

// DefaultCanyonParams returns moderate canyon settings.
func DefaultCanyonParams() CanyonParams {
	return CanyonParams{
		Strength:      0.5,
		LengthRatio:   0.6,
		BranchDensity: 0.05,
		CountPerEdge:  2,
		Seed:          1337,
	}
}

// Validate reports the first out-of-range parameter.
func (p CanyonParams) Validate() error {
	if err := checkRange("canyon strength", p.Strength, 0, 1); err != nil {
		return err
	}
	if math.IsNaN(p.LengthRatio) || p.LengthRatio <= 0 || p.LengthRatio >= 1 {
		return invalid("canyon length ratio must be in (0, 1), got %g", p.LengthRatio)
	}
	if err := checkRange("branch density", p.BranchDensity, 0, 0.5); err != nil {
		return err
	}
	if p.CountPerEdge < 0 {
		return invalid("canyon count must not be negative, got %d", p.CountPerEdge)
	}
	return nil
}

// GrassSeedOffset separates the vegetation noise seed from the terrain seed.
const GrassSeedOffset = 1000

// GrassNoiseParams enables noise-driven vegetation in the packed raster.
type GrassNoiseParams struct {
	Scale       float64
	Octaves     int
	Persistence float64
	Density     float64 // normalized noise below Density receives grass

	// SeedOffset is added to the terrain seed; zero means GrassSeedOffset.
	SeedOffset int64
}

// Validate reports the first out-of-range parameter.
func (p GrassNoiseParams) Validate() error {
	if err := checkPositive("grass noise scale", p.Scale); err != nil {
		return err
	}
	if p.Octaves < 1 {
		return invalid("grass octaves must be at least 1, got %d", p.Octaves)
	}
	if err := checkFinite("grass persistence", p.Persistence); err != nil {
		return err
	}
	return checkRange("grass density", p.Density, 0, 1)
}

func (p GrassNoiseParams) seedOffset() int64 {
	if p.SeedOffset == 0 {
		return GrassSeedOffset
	}
	return p.SeedOffset
}

// PackingParams configures conversion of a field into a Raster.
type PackingParams struct {
	MinHeight float64 // added to every height when non-zero
	MaxHeight float64 // peak height after rescale; 1 leaves heights untouched

	VignetteStrength float64
	VignetteRadius   float64 // fraction of the corner distance

	GrassAmount uint8
	Grass       *GrassNoiseParams // nil selects uniform GrassAmount

	// Terrain supplies the seed and coordinate mapping that grass noise
	// shares with the height field. Its Size is ignored.
	Terrain NoiseParams

	AuxValue uint8
}

// DefaultPackingParams returns packing settings that leave heights unchanged.
func DefaultPackingParams() PackingParams {
	return PackingParams{
		MaxHeight:      1.0,
		VignetteRadius: 1.0,
		GrassAmount:    128,
		Terrain:        DefaultNoiseParams(1),
		AuxValue:       255,
	}
}

// Validate reports the first out-of-range parameter.
func (p PackingParams) Validate() error {
	if err := checkRange("min height", p.MinHeight, -1, 1); err != nil {
		return err
	}
	if err := checkPositive("max height", p.MaxHeight); err != nil {
		return err
	}
	if err := checkRange("vignette strength", p.VignetteStrength, 0, 1); err != nil {
		return err
	}
	if p.VignetteStrength > 0 {
		if err := checkPositive("vignette radius", p.VignetteRadius); err != nil {
			return err
		}
	}
	if p.Grass != nil {
		if err := p.Grass.Validate(); err != nil {
			return err
		}
		if err := p.Terrain.validateSampling(); err != nil {
			return err
		}
	}
	return nil
}

// ShapeType names a geometric tile shape.
type ShapeType string

// Shape types.
const (
	ShapeCircle  ShapeType = "circle"
	ShapeSquare  ShapeType = "square"
	ShapePyramid ShapeType = "pyramid"
)

// ShapeParams configures the geometric pattern generator.
type ShapeParams struct {
	Size      int
	Type      ShapeType
	ShapeSize int
	Spacing   int
}

// Validate reports the first out-of-range parameter.
func (p ShapeParams) Validate() error {
	if err := checkSize(p.Size); err != nil {
		return err
	}
	switch p.Type {
	case ShapeCircle, ShapeSquare, ShapePyramid:
	default:
		return invalid("unknown shape type %q", p.Type)
	}
	if p.ShapeSize < 1 {
		return invalid("shape size must be at least 1, got %d", p.ShapeSize)
	}
	if p.Spacing < 0 {
		return invalid("spacing must not be negative, got %d", p.Spacing)
	}
	return nil
}

// GrassMapParams configures the standalone vegetation mask.
type GrassMapParams struct {
	Size         int
	Density      float64
	PerlinAmount float64 // weight and zoom of the smooth component
	SimpleAmount float64 // weight of the per-cell random component
	Lightness    float64 // brightness of cells without grass
	Seed         int64
}

// Validate reports the first out-of-range parameter.
func (p GrassMapParams) Validate() error {
	if err := checkSize(p.Size); err != nil {
		return err
	}
	if err := checkRange("grass density", p.Density, 0, 1); err != nil {
		return err
	}
	if err := checkPositive("perlin amount", p.PerlinAmount); err != nil {
		return err
	}
	if err := checkRange("simple amount", p.SimpleAmount, 0, 1e6); err != nil {
		return err
	}
	return checkRange("lightness", p.Lightness, 0, 1)
}

// ImportParams configures conversion of an external image into a Raster.
type ImportParams struct {
	TargetSize   int // longest side after resize, capped at MaxImportSize
	InvertRed    bool
	RedLightness float64 // lifts red towards 255
	RedValue     float64 // multiplier applied to red
	GreenValue   float64 // opacity of the green vegetation overlay
	Blur         float64 // Gaussian sigma, 0 disables
	Exposure     float64 // grayscale multiplier
}

// Validate reports the first out-of-range parameter.
func (p ImportParams) Validate() error {
	if err := checkSize(p.TargetSize); err != nil {
		return err
	}
	if err := checkRange("red lightness", p.RedLightness, 0, 1); err != nil {
		return err
	}
	if err := checkRange("red value", p.RedValue, 0, 10); err != nil {
		return err
	}
	if err := checkRange("green value", p.GreenValue, 0, 1); err != nil {
		return err
	}
	if err := checkRange("blur", p.Blur, 0, 100); err != nil {
		return err
	}
	return checkRange("exposure", p.Exposure, 0, 10)
}
