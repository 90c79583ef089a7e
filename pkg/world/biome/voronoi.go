package biome

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxel-terrain/internal/mathx"
	"github.com/OCharnyshevich/voxel-terrain/internal/memo"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

// VoronoiConfig configures biome regions.
type VoronoiConfig struct {
	CellSize int `yaml:"cell_size"`
	// Jitter moves each cell seed away from the cell center, as a fraction
	// of half a cell. 0 gives a square grid.
	Jitter float64 `yaml:"jitter"`
	// DistortionStrength bounds the per-axis query offset in blocks.
	DistortionStrength float64           `yaml:"distortion_strength"`
	Distortion         noise.FieldConfig `yaml:"distortion"`
}

// DefaultVoronoiConfig returns 96-block regions with a 24-block wobble.
func DefaultVoronoiConfig() VoronoiConfig {
	return VoronoiConfig{
		CellSize:           96,
		Jitter:             0.8,
		DistortionStrength: 24,
		Distortion:         noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 72},
	}
}

// Validate reports a degenerate configuration.
func (c VoronoiConfig) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("cell_size must be > 0, got %d", c.CellSize)
	case c.Jitter < 0 || c.Jitter > 1:
		return fmt.Errorf("jitter must be in [0,1], got %g", c.Jitter)
	case c.DistortionStrength < 0:
		return fmt.Errorf("distortion_strength must be >= 0, got %g", c.DistortionStrength)
	}
	if err := c.Distortion.Validate(); err != nil {
		return fmt.Errorf("distortion: %w", err)
	}
	return nil
}

// CellKey identifies a Voronoi cell by its grid coordinates.
type CellKey struct {
	X, Z int
}

func (k CellKey) String() string {
	return strconv.Itoa(k.X) + ":" + strconv.Itoa(k.Z)
}

// Decider chooses the biome of a cell from its seed position.
type Decider func(x, z float64) ID

// Voronoi assigns one biome per distorted, jittered cell and memoizes it.
type Voronoi struct {
	cfg    VoronoiConfig
	seed   int64
	dx, dz *noise.Field
	decide Decider
	cells  *memo.Cache[CellKey, ID]
}

// NewVoronoi creates a Voronoi region map. cfg must be valid.
func NewVoronoi(seed int64, cfg VoronoiConfig, decide Decider) *Voronoi {
	return &Voronoi{
		cfg:    cfg,
		seed:   seed,
		dx:     noise.NewField(noise.DistortionX.Seed(seed), cfg.Distortion),
		dz:     noise.NewField(noise.DistortionZ.Seed(seed), cfg.Distortion),
		decide: decide,
		cells:  memo.New[CellKey, ID](),
	}
}

// Distort returns the query position after the boundary wobble.
func (v *Voronoi) Distort(x, z float64) (float64, float64) {
	s := v.cfg.DistortionStrength
	return x + v.dx.Sample2D(x, z)*s, z + v.dz.Sample2D(x, z)*s
}

// Seed returns the world position of the cell's seed point.
func (v *Voronoi) Seed(k CellKey) mgl64.Vec2 {
	u, w := mathx.Unit2(mathx.Hash2(v.seed, k.X, k.Z))
	size := float64(v.cfg.CellSize)
	return mgl64.Vec2{
		(float64(k.X) + 0.5 + (u-0.5)*v.cfg.Jitter) * size,
		(float64(k.Z) + 0.5 + (w-0.5)*v.cfg.Jitter) * size,
	}
}

// CellAt returns the cell whose seed is nearest to the distorted position.
// The 3×3 neighbourhood is exact while seeds stay within a quarter cell of
// their centers; larger jitter searches 5×5.
func (v *Voronoi) CellAt(x, z float64) CellKey {
	px, pz := v.Distort(x, z)
	p := mgl64.Vec2{px, pz}
	size := float64(v.cfg.CellSize)
	gx := int(math.Floor(px / size))
	gz := int(math.Floor(pz / size))

	r := 1
	if v.cfg.Jitter > 0.5 {
		r = 2
	}
	best := CellKey{gx, gz}
	bestDist := math.Inf(1)
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			k := CellKey{gx + dx, gz + dz}
			d := v.Seed(k).Sub(p)
			if dist := d.Dot(d); dist < bestDist {
				best, bestDist = k, dist
			}
		}
	}
	return best
}

// BiomeAt returns the biome of the cell enclosing block (x, z).
func (v *Voronoi) BiomeAt(x, z int) ID {
	return v.CellBiome(v.CellAt(float64(x)+0.5, float64(z)+0.5))
}

// CellBiome returns the memoized biome of cell k, deciding it at the cell
// seed on first use.
func (v *Voronoi) CellBiome(k CellKey) ID {
	return v.cells.GetOrCompute(k, func() ID {
		s := v.Seed(k)
		return v.decide(s.X(), s.Y())
	})
}

// Len returns the number of cached cells.
func (v *Voronoi) Len() int {
	return v.cells.Len()
}

// Clear drops all cached cells. Not safe to call during queries.
func (v *Voronoi) Clear() {
	v.cells.Clear()
}
