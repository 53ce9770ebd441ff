// Package config handles voxmap configuration loading and management.
package config

// Config holds all generation settings.
type Config struct {
	Noise    NoiseConfig    `yaml:"noise"`
	Landmass LandmassConfig `yaml:"landmass"`
	Canyon   CanyonConfig   `yaml:"canyon"`
	Packing  PackingConfig  `yaml:"packing"`
	Shape    ShapeConfig    `yaml:"shape"`
	Grass    GrassConfig    `yaml:"grass"`
	Import   ImportConfig   `yaml:"import"`
	Output   OutputConfig   `yaml:"output"`
	Workers  int            `yaml:"workers"` // 0 uses every core, capped at 4
	Logging  LoggingConfig  `yaml:"logging"`
}

// NoiseConfig holds the base terrain noise settings. Size and Seed are
// shared by every generator.
type NoiseConfig struct {
	Size          int     `yaml:"size"`
	Seed          int64   `yaml:"seed"`
	Type          string  `yaml:"type"` // perlin, fractal or turbulence
	Octaves       int     `yaml:"octaves"`
	Persistence   float64 `yaml:"persistence"`
	Lacunarity    float64 `yaml:"lacunarity"`
	Scale         float64 `yaml:"scale"`
	FocusX        float64 `yaml:"focus_x"`
	FocusY        float64 `yaml:"focus_y"`
	BaseOffset    float64 `yaml:"base_offset"`
	ReferenceSize int     `yaml:"reference_size"`
	Provider      string  `yaml:"provider"` // simplex, perlin or opensimplex
}

// LandmassConfig holds water/land shaping settings.
type LandmassConfig struct {
	LandProportion float64 `yaml:"land_proportion"`
	PlainFactor    float64 `yaml:"plain_factor"`
	ShoreHeight    float64 `yaml:"shore_height"`
	NoiseScale     float64 `yaml:"noise_scale"`
	Octaves        int     `yaml:"octaves"`
	Persistence    float64 `yaml:"persistence"`
	Lacunarity     float64 `yaml:"lacunarity"`
}

// CanyonConfig holds canyon carving settings.
type CanyonConfig struct {
	Strength      float64 `yaml:"strength"`
	LengthRatio   float64 `yaml:"length_ratio"`
	BranchDensity float64 `yaml:"branch_density"`
	CountPerEdge  int     `yaml:"count_per_edge"`
	Seed          int64   `yaml:"seed"`
}

// PackingConfig holds raster packing settings.
type PackingConfig struct {
	MinHeight        float64 `yaml:"min_height"`
	MaxHeight        float64 `yaml:"max_height"`
	VignetteStrength float64 `yaml:"vignette_strength"`
	VignetteRadius   float64 `yaml:"vignette_radius"`
	GrassAmount      uint8   `yaml:"grass_amount"`
	AuxValue         uint8   `yaml:"aux_value"`

	// GrassNoise replaces the uniform GrassAmount with thresholded noise.
	GrassNoise       bool    `yaml:"grass_noise"`
	GrassScale       float64 `yaml:"grass_scale"`
	GrassOctaves     int     `yaml:"grass_octaves"`
	GrassPersistence float64 `yaml:"grass_persistence"`
	GrassDensity     float64 `yaml:"grass_density"`
}

// ShapeConfig holds geometric pattern settings.
type ShapeConfig struct {
	Type      string `yaml:"type"`
	ShapeSize int    `yaml:"shape_size"`
	Spacing   int    `yaml:"spacing"`
}

// GrassConfig holds standalone vegetation mask settings.
type GrassConfig struct {
	Density      float64 `yaml:"density"`
	PerlinAmount float64 `yaml:"perlin_amount"`
	SimpleAmount float64 `yaml:"simple_amount"`
	Lightness    float64 `yaml:"lightness"`
}

// ImportConfig holds external image import settings.
type ImportConfig struct {
	TargetSize   int     `yaml:"target_size"`
	InvertRed    bool    `yaml:"invert_red"`
	RedLightness float64 `yaml:"red_lightness"`
	RedValue     float64 `yaml:"red_value"`
	GreenValue   float64 `yaml:"green_value"`
	Blur         float64 `yaml:"blur"`
	Grayscale    bool    `yaml:"grayscale"`
	Exposure     float64 `yaml:"exposure"`
}

// OutputConfig holds where generated images are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Prefix    string `yaml:"prefix"`
	Timestamp bool   `yaml:"timestamp"` // append generation time to file names
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Noise: NoiseConfig{
			Size:        512,
			Seed:        42,
			Type:        "fractal",
			Octaves:     6,
			Persistence: 0.5,
			Lacunarity:  2.0,
			Scale:       100.0,
			FocusX:      0.5,
			FocusY:      0.5,
			BaseOffset:  1000.0,
			Provider:    "simplex",
		},
		Landmass: LandmassConfig{
			LandProportion: 0.6,
			PlainFactor:    2.0,
			ShoreHeight:    0.05,
			NoiseScale:     150.0,
			Octaves:        6,
			Persistence:    0.5,
			Lacunarity:     2.0,
		},
		Canyon: CanyonConfig{
			Strength:      0.0,
			LengthRatio:   0.6,
			BranchDensity: 0.05,
			CountPerEdge:  2,
			Seed:          1337,
		},
		Packing: PackingConfig{
			MaxHeight:        1.0,
			VignetteRadius:   1.0,
			GrassAmount:      128,
			AuxValue:         255,
			GrassScale:       0.5,
			GrassOctaves:     4,
			GrassPersistence: 0.5,
			GrassDensity:     0.5,
		},
		Shape: ShapeConfig{
			Type:      "circle",
			ShapeSize: 32,
			Spacing:   16,
		},
		Grass: GrassConfig{
			Density:      0.5,
			PerlinAmount: 1.0,
			SimpleAmount: 0.5,
			Lightness:    0.0,
		},
		Import: ImportConfig{
			TargetSize:   1024,
			RedLightness: 0.0,
			RedValue:     1.0,
			GreenValue:   0.0,
			Exposure:     1.0,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
