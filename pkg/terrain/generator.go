// Package terrain turns noise into height fields and packs them into the
// three-channel raster read by the voxel-world importer.
//
// Every entry point is a pure function of its parameters: identical input
// yields bit-identical output regardless of how many workers evaluate it.
package terrain

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/noise"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

// Generator runs generation stages on a scheduler.
// The zero value is ready to use.
type Generator struct {
	Scheduler *tiles.Scheduler
}

// NewGenerator creates a generator bound to a scheduler.
func NewGenerator(s *tiles.Scheduler) *Generator {
	return &Generator{Scheduler: s}
}

var defaultGenerator = &Generator{}

func (g *Generator) scheduler() *tiles.Scheduler {
	if g == nil || g.Scheduler == nil {
		return &tiles.Scheduler{}
	}
	return g.Scheduler
}

func (g *Generator) log() *zap.Logger {
	if s := g.scheduler(); s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}

func (g *Generator) timed(stage string, size int) func() {
	start := time.Now()
	return func() {
		g.log().Debug("stage complete",
			zap.String("stage", stage),
			zap.Int("size", size),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// sampler builds the seeded noise source for a provider.
func sampler(p noise.Provider, seed int64) (noise.Sampler, error) {
	s, err := noise.NewSampler(p, seed)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return s, nil
}

// GenerateNoiseField evaluates a noise field with the default generator.
func GenerateNoiseField(p NoiseParams) (*heightmap.Field, error) {
	return defaultGenerator.NoiseField(p)
}

// GenerateLandmass shapes a landmass with the default generator.
func GenerateLandmass(p LandmassParams) (*heightmap.Field, error) {
	return defaultGenerator.Landmass(p)
}

// CarveCanyons carves canyons with the default generator.
func CarveCanyons(f *heightmap.Field, p CanyonParams) (*heightmap.Field, error) {
	return defaultGenerator.CarveCanyons(f, p)
}

// TraceCanyons traces canyon paths with the default generator.
func TraceCanyons(size int, p CanyonParams) ([]CanyonPath, error) {
	return defaultGenerator.TraceCanyons(size, p)
}

// GenerateShapePattern draws a geometric pattern with the default generator.
func GenerateShapePattern(p ShapeParams) (*heightmap.Field, error) {
	return defaultGenerator.ShapePattern(p)
}

// PackHeightmap packs a field into a raster with the default generator.
func PackHeightmap(f *heightmap.Field, p PackingParams) (*heightmap.Raster, error) {
	return defaultGenerator.Pack(f, p)
}

// GenerateGrassMap builds a vegetation mask with the default generator.
func GenerateGrassMap(p GrassMapParams) ([]byte, error) {
	return defaultGenerator.GrassMap(p)
}
