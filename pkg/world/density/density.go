// Package density evaluates the 3D terrain density field and recovers
// surface heights from it.
package density

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/spline"
)

// Mode selects full 3D density or the cave-free 2D heightmap.
type Mode string

const (
	Mode3D Mode = "3d"
	Mode2D Mode = "2d"
)

// Search selects the height resolution algorithm in 3D mode.
type Search string

const (
	SearchLinear   Search = "linear"
	SearchAdaptive Search = "adaptive"
)

// Config holds the density field and height search settings.
type Config struct {
	Mode         Mode        `yaml:"mode"`
	Search       Search      `yaml:"search"`
	SplineMode   spline.Mode `yaml:"spline_mode"`
	MinY         int         `yaml:"min_y"`
	MaxY         int         `yaml:"max_y"`
	SearchWindow int         `yaml:"search_window"`

	// NoiseAmplitude converts factor * noise3D into blocks.
	NoiseAmplitude float64           `yaml:"noise_amplitude"`
	Caves          noise.FieldConfig `yaml:"caves"`
	Jaggedness     noise.FieldConfig `yaml:"jaggedness"`

	Arches        noise.FieldConfig `yaml:"arches"`
	ArchWeirdness float64           `yaml:"arch_weirdness"`
	ArchThreshold float64           `yaml:"arch_threshold"`
	ArchStrength  float64           `yaml:"arch_strength"`
	ArchBelow     int               `yaml:"arch_below"`
	ArchAbove     int               `yaml:"arch_above"`

	// 2D mode erosion shaping.
	ErosionBoost   float64 `yaml:"erosion_boost"`
	ErosionDamping float64 `yaml:"erosion_damping"`
}

// DefaultConfig returns the standard 0..255 world.
func DefaultConfig() Config {
	return Config{
		Mode:           Mode3D,
		Search:         SearchAdaptive,
		SplineMode:     spline.Linear,
		MinY:           0,
		MaxY:           255,
		SearchWindow:   50,
		NoiseAmplitude: 24,
		Caves:          noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 3, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 48},
		Jaggedness:     noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 12},
		Arches:         noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 96},
		ArchWeirdness:  0.7,
		ArchThreshold:  0.35,
		ArchStrength:   48,
		ArchBelow:      20,
		ArchAbove:      10,
		ErosionBoost:   0.5,
		ErosionDamping: 0.6,
	}
}

// Validate reports a degenerate configuration.
func (c Config) Validate() error {
	switch {
	case c.Mode != Mode3D && c.Mode != Mode2D:
		return fmt.Errorf("unknown mode %q", c.Mode)
	case c.Search != SearchLinear && c.Search != SearchAdaptive:
		return fmt.Errorf("unknown search %q", c.Search)
	case c.MinY >= c.MaxY:
		return fmt.Errorf("min_y %d must be below max_y %d", c.MinY, c.MaxY)
	case c.SearchWindow <= 0:
		return fmt.Errorf("search_window must be > 0, got %d", c.SearchWindow)
	case c.NoiseAmplitude < 0:
		return fmt.Errorf("noise_amplitude must be >= 0, got %g", c.NoiseAmplitude)
	case c.ArchBelow < 0 || c.ArchAbove < 0:
		return fmt.Errorf("arch band must be non-negative, got -%d/+%d", c.ArchBelow, c.ArchAbove)
	case c.ErosionDamping < 0 || c.ErosionBoost < 0:
		return fmt.Errorf("erosion boost/damping must be >= 0")
	}
	for name, fc := range map[string]noise.FieldConfig{"caves": c.Caves, "jaggedness": c.Jaggedness, "arches": c.Arches} {
		if err := fc.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ElevationFactor scales 3D noise by altitude so caves concentrate at
// explorable depths.
func ElevationFactor(y int) float64 {
	switch {
	case y < 20 || y > 200:
		return 0.2
	case y >= 40 && y <= 120:
		return 1.5
	default:
		return 1.0
	}
}

// WeirdnessMultiplier sharpens jaggedness into needles at extreme weirdness.
func WeirdnessMultiplier(w float64) float64 {
	return 1 + 2*math.Max(0, math.Abs(w)-0.5)
}

// Terrain evaluates density and heights for one world seed. Read-only after
// construction.
type Terrain struct {
	cfg     Config
	params  *noise.Router
	splines *spline.Routers
	caves   *noise.Field
	jag     *noise.Field
	arches  *noise.Field
}

// New creates a Terrain. cfg must be valid.
func New(seed int64, cfg Config, params *noise.Router, splines *spline.Routers) *Terrain {
	return &Terrain{
		cfg:     cfg,
		params:  params,
		splines: splines,
		caves:   noise.NewField(noise.Caves.Seed(seed), cfg.Caves),
		jag:     noise.NewField(noise.Jaggedness.Seed(seed), cfg.Jaggedness),
		arches:  noise.NewField(noise.Arches.Seed(seed), cfg.Arches),
	}
}

// Config returns the terrain configuration.
func (t *Terrain) Config() Config {
	return t.cfg
}

// Column holds the spline terms of one (x, z) column so that densities
// along y only pay for the 3D noise.
type Column struct {
	X, Z       int
	Params     noise.Parameters
	Offset     float64
	Jaggedness float64
	Factor     float64
	// Estimate is the cheap surface guess from offset alone.
	Estimate int

	t *Terrain
}

// Column samples parameters at (x, z) and resolves the column terms.
func (t *Terrain) Column(x, z int) Column {
	return t.ColumnFor(x, z, t.params.Sample(float64(x), float64(z)))
}

// ColumnFor resolves the column terms for externally supplied parameters.
func (t *Terrain) ColumnFor(x, z int, p noise.Parameters) Column {
	p = p.Clamp()
	offset := t.splines.Offset.Sample(p.Continentalness, p.Erosion, p.PeaksValleys)
	return Column{
		X:          x,
		Z:          z,
		Params:     p,
		Offset:     offset,
		Jaggedness: t.jaggedness(x, z, p),
		Factor:     t.splines.Factor.Sample(p.Continentalness, p.Erosion, p.Weirdness),
		Estimate:   int(math.Round(offset)),
		t:          t,
	}
}

func (t *Terrain) jaggedness(x, z int, p noise.Parameters) float64 {
	base := t.splines.Jaggedness.Sample(p.Continentalness, p.Erosion, p.PeaksValleys)
	if base <= 0 {
		return 0
	}
	hf := math.Abs(t.jag.Sample2D(float64(x), float64(z)))
	return base * hf * WeirdnessMultiplier(p.Weirdness)
}

// Density returns the field value at height y; positive is solid.
func (c *Column) Density(y int) float64 {
	t := c.t
	n := t.caves.Sample3D(float64(c.X), float64(y), float64(c.Z))
	d := c.Offset + c.Jaggedness + n*c.Factor*t.cfg.NoiseAmplitude*ElevationFactor(y)
	return d + c.archCarving(y) - float64(y)
}

// archCarving is negative inside arch voids near the estimated surface of
// highly weird terrain, zero elsewhere.
func (c *Column) archCarving(y int) float64 {
	cfg := &c.t.cfg
	if c.Params.Weirdness <= cfg.ArchWeirdness {
		return 0
	}
	if y < c.Estimate-cfg.ArchBelow || y > c.Estimate+cfg.ArchAbove {
		return 0
	}
	if c.t.arches.Sample3D(float64(c.X), float64(y), float64(c.Z)) <= cfg.ArchThreshold {
		return 0
	}
	return -cfg.ArchStrength
}

// Height resolves the column's surface with the configured search.
func (c *Column) Height() int {
	cfg := &c.t.cfg
	if cfg.Search == SearchLinear {
		return ScanHeight(c.Density, cfg.MinY, cfg.MaxY)
	}
	return SearchHeight(c.Density, c.Estimate, cfg.SearchWindow, cfg.MinY, cfg.MaxY)
}

// Density returns the density at a block position.
func (t *Terrain) Density(x, y, z int) float64 {
	col := t.Column(x, z)
	return col.Density(y)
}

// Solid reports whether the block at (x, y, z) is terrain.
func (t *Terrain) Solid(x, y, z int) bool {
	return t.Density(x, y, z) > 0
}

// Estimate returns the cheap offset-only height guess at (x, z).
func (t *Terrain) Estimate(x, z int) int {
	return t.Column(x, z).Estimate
}

// HeightAt returns the base terrain height at (x, z) in the configured mode.
func (t *Terrain) HeightAt(x, z int) int {
	if t.cfg.Mode == Mode2D {
		return t.Height2D(x, z)
	}
	col := t.Column(x, z)
	return col.Height()
}

// Height2D is the cave-free heightmap: offset shaped by erosion plus
// jaggedness gated to mountainous, eroded-negative, non-valley terrain.
func (t *Terrain) Height2D(x, z int) int {
	return t.FlatHeight(t.Column(x, z))
}

// FlatHeight is Height2D for an already resolved column.
func (t *Terrain) FlatHeight(col Column) int {
	p := col.Params
	sea := float64(t.params.SeaLevel())

	rel := (col.Offset - sea) * ErosionScale(p.Erosion, t.cfg.ErosionBoost, t.cfg.ErosionDamping)
	h := sea + rel
	if p.Continentalness > 0.4 && p.Erosion < 0 && p.PeaksValleys > -0.3 {
		h += col.Jaggedness
	}
	h = math.Round(h)
	return int(math.Max(float64(t.cfg.MinY), math.Min(float64(t.cfg.MaxY), h)))
}

// ErosionScale amplifies relief linearly for negative erosion and damps it
// quadratically for positive erosion.
func ErosionScale(e, boost, damping float64) float64 {
	if e < 0 {
		return 1 + (-e)*boost
	}
	return math.Max(0, 1-e*e*damping)
}
