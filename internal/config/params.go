package config

import (
	"fmt"

	"github.com/Faultbox/voxmap/pkg/noise"
	"github.com/Faultbox/voxmap/pkg/terrain"
)

// NoiseParams converts the noise section into generator parameters.
func (c *Config) NoiseParams() (terrain.NoiseParams, error) {
	mode, err := noise.ParseMode(c.Noise.Type)
	if err != nil {
		return terrain.NoiseParams{}, fmt.Errorf("noise.type: %w", err)
	}
	n := c.Noise
	return terrain.NoiseParams{
		Size:          n.Size,
		Seed:          n.Seed,
		Type:          mode,
		Octaves:       n.Octaves,
		Persistence:   n.Persistence,
		Lacunarity:    n.Lacunarity,
		Scale:         n.Scale,
		FocusX:        n.FocusX,
		FocusY:        n.FocusY,
		BaseOffset:    n.BaseOffset,
		ReferenceSize: n.ReferenceSize,
		Provider:      noise.Provider(n.Provider),
	}, nil
}

// LandmassParams converts the landmass section. Size, seed and provider
// come from the noise section.
func (c *Config) LandmassParams() terrain.LandmassParams {
	l := c.Landmass
	return terrain.LandmassParams{
		Size:           c.Noise.Size,
		LandProportion: l.LandProportion,
		PlainFactor:    l.PlainFactor,
		ShoreHeight:    l.ShoreHeight,
		NoiseScale:     l.NoiseScale,
		Octaves:        l.Octaves,
		Seed:           c.Noise.Seed,
		Persistence:    l.Persistence,
		Lacunarity:     l.Lacunarity,
		Provider:       noise.Provider(c.Noise.Provider),
	}
}

// CanyonParams converts the canyon section.
func (c *Config) CanyonParams() terrain.CanyonParams {
	return terrain.CanyonParams{
		Strength:      c.Canyon.Strength,
		LengthRatio:   c.Canyon.LengthRatio,
		BranchDensity: c.Canyon.BranchDensity,
		CountPerEdge:  c.Canyon.CountPerEdge,
		Seed:          c.Canyon.Seed,
	}
}

// PackingParams converts the packing section. Grass noise shares the
// terrain mapping of the noise section.
func (c *Config) PackingParams() (terrain.PackingParams, error) {
	p := c.Packing
	out := terrain.PackingParams{
		MinHeight:        p.MinHeight,
		MaxHeight:        p.MaxHeight,
		VignetteStrength: p.VignetteStrength,
		VignetteRadius:   p.VignetteRadius,
		GrassAmount:      p.GrassAmount,
		AuxValue:         p.AuxValue,
	}
	if !p.GrassNoise {
		return out, nil
	}

	np, err := c.NoiseParams()
	if err != nil {
		return terrain.PackingParams{}, err
	}
	out.Terrain = np
	out.Grass = &terrain.GrassNoiseParams{
		Scale:       p.GrassScale,
		Octaves:     p.GrassOctaves,
		Persistence: p.GrassPersistence,
		Density:     p.GrassDensity,
	}
	return out, nil
}

// ShapeParams converts the shape section.
func (c *Config) ShapeParams() terrain.ShapeParams {
	return terrain.ShapeParams{
		Size:      c.Noise.Size,
		Type:      terrain.ShapeType(c.Shape.Type),
		ShapeSize: c.Shape.ShapeSize,
		Spacing:   c.Shape.Spacing,
	}
}

// GrassMapParams converts the grass section.
func (c *Config) GrassMapParams() terrain.GrassMapParams {
	return terrain.GrassMapParams{
		Size:         c.Noise.Size,
		Density:      c.Grass.Density,
		PerlinAmount: c.Grass.PerlinAmount,
		SimpleAmount: c.Grass.SimpleAmount,
		Lightness:    c.Grass.Lightness,
		Seed:         c.Noise.Seed,
	}
}

// ImportParams converts the import section.
func (c *Config) ImportParams() terrain.ImportParams {
	i := c.Import
	return terrain.ImportParams{
		TargetSize:   i.TargetSize,
		InvertRed:    i.InvertRed,
		RedLightness: i.RedLightness,
		RedValue:     i.RedValue,
		GreenValue:   i.GreenValue,
		Blur:         i.Blur,
		Exposure:     i.Exposure,
	}
}
