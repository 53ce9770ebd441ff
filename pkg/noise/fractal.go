package noise

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how octaves are combined.
type Mode int

// Composition modes.
const (
	Perlin     Mode = iota // Single octave
	Fractal                // Amplitude-weighted octave sum
	Turbulence             // Octave sum of absolute values
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case Perlin:
		return "perlin"
	case Fractal:
		return "fractal"
	case Turbulence:
		return "turbulence"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration name to a Mode.
// Names like "fractal noise" are accepted as well.
func ParseMode(s string) (Mode, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), " noise")
	switch name {
	case "perlin", "":
		return Perlin, nil
	case "fractal", "fbm":
		return Fractal, nil
	case "turbulence":
		return Turbulence, nil
	default:
		return Perlin, fmt.Errorf("unknown noise mode %q", s)
	}
}

// Octaves describes an octave stack.
type Octaves struct {
	Count       int
	Persistence float64
	Lacunarity  float64
	Scale       float64
}

// Evaluate combines octaves of src at (x, y) according to mode.
func Evaluate(src Sampler, mode Mode, x, y float64, o Octaves) float64 {
	scale := o.Scale
	if scale == 0 {
		scale = 1
	}
	sx, sy := x/scale, y/scale

	if mode == Perlin {
		return src.Sample(sx, sy)
	}

	total := 0.0
	maxValue := 0.0
	amplitude := 1.0
	frequency := 1.0
	for range o.Count {
		v := src.Sample(sx*frequency, sy*frequency)
		if mode == Turbulence {
			v = math.Abs(v)
		}
		total += v * amplitude
		maxValue += amplitude
		amplitude *= o.Persistence
		frequency *= o.Lacunarity
	}

	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}
