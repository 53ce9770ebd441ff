package terrain

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/voxmap/pkg/noise"
	"github.com/Faultbox/voxmap/pkg/tiles"
)

// Canyon tracing constants.
const (
	canyonReach        = 0.95 // share of the distance to centre a path may cover
	canyonCenterRadius = 10.0 // tracing stops this close to the centre
	canyonBendEvery    = 8    // steps between extra bends
	branchMinPoints    = 6    // shorter branches are discarded
	minDrawRatio       = 0.2
	maxDrawRatio       = 0.95
	branchRatioBoost   = 1.2
)

// PCG stream selectors keep the master, canyon and branch generators
// independent even when their seeds coincide.
const (
	streamMaster = 0x6d6173746572
	streamCanyon = 0x63616e796f6e
	streamBranch = 0x6272616e6368
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Branch is a side path forking from a canyon's main path.
type Branch struct {
	Fork   int // index in the traced main path where the branch starts
	Points []Point
}

// CanyonPath is one canyon after length truncation.
type CanyonPath struct {
	Main        []Point
	Branches    []Branch
	LengthRatio float64 // effective share of the traced path kept
}

// rawCanyon is a fully traced canyon before truncation.
type rawCanyon struct {
	main     []Point
	branches []Branch
}

// TraceCanyons traces every canyon for a size×size grid and truncates the
// paths to their drawn length. All coordinates lie in [0, size-1].
func (g *Generator) TraceCanyons(size int, p CanyonParams) ([]CanyonPath, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return g.traceCanyons(size, p), nil
}

func (g *Generator) traceCanyons(size int, p CanyonParams) []CanyonPath {
	if p.CountPerEdge == 0 {
		return nil
	}

	master := rand.New(rand.NewPCG(uint64(p.Seed), streamMaster))
	starts := edgePoints(size, p.CountPerEdge, master)
	centre := mgl64.Vec2{float64(size) / 2, float64(size) / 2}

	raws := tiles.Map(g.scheduler(), len(starts), func(i int) *rawCanyon {
		return traceCanyon(starts[i], centre, size, canyonSeed(p.Seed, i), p.BranchDensity)
	})

	var paths []CanyonPath
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		// Drawn in canyon order after tracing, so worker count cannot affect it.
		ratio := p.LengthRatio + uniform(master, -0.05, 0.05)
		ratio = math.Max(minDrawRatio, math.Min(maxDrawRatio, ratio))
		paths = append(paths, truncateCanyon(raw, ratio))
	}
	return paths
}

// edgePoints places count jittered start points on each edge in
// top, bottom, left, right order.
func edgePoints(size, count int, rng *rand.Rand) []Point {
	spacing := float64(size) / float64(count)
	last := size - 1

	var points []Point
	for _, edge := range []string{"top", "bottom", "left", "right"} {
		for i := 0; i < count; i++ {
			along := int((float64(i) + uniform(rng, 0.2, 0.8)) * spacing)
			if along > last {
				along = last
			}
			switch edge {
			case "top":
				points = append(points, Point{along, 0})
			case "bottom":
				points = append(points, Point{along, last})
			case "left":
				points = append(points, Point{0, along})
			case "right":
				points = append(points, Point{last, along})
			}
		}
	}
	return points
}

// canyonSeed derives an independent seed per canyon index.
func canyonSeed(seed int64, index int) int64 {
	v := uint64(seed) + uint64(index+1)*0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return int64(v ^ (v >> 31))
}

// traceCanyon walks from start towards centre with noise-driven wiggle and
// collects candidate branches. It returns nil when start is the centre.
func traceCanyon(start Point, centre mgl64.Vec2, size int, seed int64, branchDensity float64) *rawCanyon {
	pos := mgl64.Vec2{float64(start.X), float64(start.Y)}
	toCentre := centre.Sub(pos)
	if math.Abs(toCentre.X()) < 1 && math.Abs(toCentre.Y()) < 1 {
		return nil
	}

	rng := rand.New(rand.NewPCG(uint64(seed), streamCanyon))
	wiggle := noise.NewKernel(seed)

	dist := toCentre.Len()
	dir := toCentre.Mul(1 / dist)
	dir = mgl64.Rotate2D(uniform(rng, -0.1, 0.1)).Mul2x1(dir)

	maxPoints := int(dist * canyonReach)
	freq := uniform(rng, 30, 50)
	amp := uniform(rng, 0.2, 0.5)
	phase := uniform(rng, 0, 100)

	limit := float64(size - 1)
	main := []Point{start}
	for step := 1; len(main) < maxPoints; step++ {
		angle := wiggle.Sample(float64(step)/freq, phase)*amp*math.Pi + uniform(rng, -0.05, 0.05)
		if step%canyonBendEvery == 0 {
			angle += uniform(rng, -0.2, 0.2)
		}
		d := mgl64.Rotate2D(angle).Mul2x1(dir)
		pos = pos.Add(d.Mul(uniform(rng, 1, 2)))
		pos = mgl64.Vec2{clampf(pos.X(), 0, limit), clampf(pos.Y(), 0, limit)}
		main = append(main, Point{int(pos.X()), int(pos.Y())})

		if pos.Sub(centre).Len() < canyonCenterRadius {
			break
		}
	}

	c := &rawCanyon{main: main}
	for i := range main {
		progress := float64(i) / float64(len(main))
		if progress <= 0.3 || progress >= 0.7 {
			continue
		}
		if rng.Float64() >= branchDensity {
			continue
		}
		if b := traceBranch(main, i, size, seed, wiggle); keepBranch(b) {
			c.branches = append(c.branches, b)
		}
	}
	return c
}

// keepBranch reports whether a traced branch is long enough to draw.
func keepBranch(b Branch) bool {
	return len(b.Points) >= branchMinPoints
}

// traceBranch grows a side path from main[fork] along the rotated local tangent.
func traceBranch(main []Point, fork, size int, canyonSeed int64, wiggle *noise.Kernel) Branch {
	pt := main[fork]
	seed := canyonSeed + int64(fork) + int64(pt.X*100+pt.Y)
	rng := rand.New(rand.NewPCG(uint64(seed), streamBranch))

	angle := uniform(rng, -math.Pi/4, math.Pi/4)

	var tangent mgl64.Vec2
	if fork < len(main)-1 {
		tangent = mgl64.Vec2{float64(main[fork+1].X - pt.X), float64(main[fork+1].Y - pt.Y)}
	} else {
		tangent = mgl64.Vec2{float64(pt.X - main[fork-1].X), float64(pt.Y - main[fork-1].Y)}
	}
	if l := tangent.Len(); l > 0 {
		tangent = tangent.Mul(1 / l)
	}
	dir := mgl64.Rotate2D(angle).Mul2x1(tangent)

	length := int(uniform(rng, 20, 50))
	freq := uniform(rng, 20, 40)
	amp := uniform(rng, 0.2, 0.4)
	phase := uniform(rng, 0, 100)

	pos := mgl64.Vec2{float64(pt.X), float64(pt.Y)}
	points := []Point{pt}
	bound := float64(size)
	for step := 0; step < length; step++ {
		w := wiggle.Sample(float64(step)/freq, phase)*amp*math.Pi + uniform(rng, -0.05, 0.05)
		d := mgl64.Rotate2D(w).Mul2x1(dir)
		pos = pos.Add(d.Mul(uniform(rng, 1, 1.5)))
		if pos.X() < 0 || pos.X() >= bound || pos.Y() < 0 || pos.Y() >= bound {
			break
		}
		points = append(points, Point{int(pos.X()), int(pos.Y())})
	}
	return Branch{Fork: fork, Points: points}
}

// truncateCanyon keeps ratio of the main path and every branch that still
// touches the kept part.
func truncateCanyon(c *rawCanyon, ratio float64) CanyonPath {
	kept := prefix(c.main, ratio)
	out := CanyonPath{Main: kept, LengthRatio: ratio}

	branchRatio := math.Min(1.0, ratio*branchRatioBoost)
	for _, b := range c.branches {
		if !touches(kept, b.Points[0]) {
			continue
		}
		out.Branches = append(out.Branches, Branch{
			Fork:   b.Fork,
			Points: prefix(b.Points, branchRatio),
		})
	}
	return out
}

// prefix returns the first max(2, int(len*ratio)) points, bounded by len.
func prefix(points []Point, ratio float64) []Point {
	n := int(float64(len(points)) * ratio)
	if n < 2 {
		n = 2
	}
	if n > len(points) {
		n = len(points)
	}
	out := make([]Point, n)
	copy(out, points[:n])
	return out
}

// touches reports whether p is within one cell of any point on path.
func touches(path []Point, p Point) bool {
	for _, q := range path {
		if abs(q.X-p.X) <= 1 && abs(q.Y-p.Y) <= 1 {
			return true
		}
	}
	return false
}

// smoothPath applies a 3-point moving average, keeping the endpoints.
func smoothPath(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	if len(points) <= 3 {
		return out
	}
	for i := 1; i < len(points)-1; i++ {
		sx := points[i-1].X + points[i].X + points[i+1].X
		sy := points[i-1].Y + points[i].Y + points[i+1].Y
		out[i] = Point{sx / 3, sy / 3}
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
