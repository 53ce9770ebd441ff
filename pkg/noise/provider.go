package noise

import (
	"fmt"
	"strings"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Provider names a noise implementation.
type Provider string

// Known providers.
const (
	ProviderSimplex     Provider = "simplex"
	ProviderPerlin      Provider = "perlin"
	ProviderOpenSimplex Provider = "opensimplex"
)

// NewSampler builds a seeded sampler for the named provider.
// An empty name selects the built-in simplex kernel.
func NewSampler(p Provider, seed int64) (Sampler, error) {
	switch Provider(strings.ToLower(string(p))) {
	case ProviderSimplex, "":
		return NewKernel(seed), nil
	case ProviderPerlin:
		return NewPerlinProvider(seed), nil
	case ProviderOpenSimplex:
		return NewOpenSimplexProvider(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise provider %q", p)
	}
}

// PerlinProvider adapts github.com/aquilax/go-perlin to Sampler.
type PerlinProvider struct {
	p *perlin.Perlin
}

// NewPerlinProvider creates a single-octave Perlin source.
func NewPerlinProvider(seed int64) *PerlinProvider {
	return &PerlinProvider{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Sample returns classic Perlin noise clamped to [-1, 1].
func (pp *PerlinProvider) Sample(x, y float64) float64 {
	return clamp(pp.p.Noise2D(x, y), -1, 1)
}

// OpenSimplexProvider adapts github.com/ojrac/opensimplex-go to Sampler.
type OpenSimplexProvider struct {
	n opensimplex.Noise
}

// NewOpenSimplexProvider creates an OpenSimplex source.
func NewOpenSimplexProvider(seed int64) *OpenSimplexProvider {
	return &OpenSimplexProvider{n: opensimplex.New(seed)}
}

// Sample returns OpenSimplex noise in [-1, 1].
func (op *OpenSimplexProvider) Sample(x, y float64) float64 {
	return clamp(op.n.Eval2(x, y), -1, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
