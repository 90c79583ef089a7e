// Package water places flat surface lakes from a coarse cached corner grid
// and decides underground aquifer fluids.
package water

import (
	"fmt"
	"math"
	"strconv"

	"github.com/OCharnyshevich/voxel-terrain/internal/mathx"
	"github.com/OCharnyshevich/voxel-terrain/internal/memo"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

// Sampler supplies the world data the grid needs at block coordinates.
type Sampler interface {
	// Regional returns the candidate lake surface height.
	Regional(x, z int) float64
	TerrainHeight(x, z int) int
	// Climate returns temperature and humidity in [0, 1].
	Climate(x, z int) (temperature, humidity float64)
}

// RegionalConfig configures the regional elevation field that proposes lake
// surfaces.
type RegionalConfig struct {
	Base      float64           `yaml:"base"`
	Variation float64           `yaml:"variation"`
	Noise     noise.FieldConfig `yaml:"noise"`
}

// Regional is the default regional elevation field.
type Regional struct {
	cfg   RegionalConfig
	field *noise.Field
}

// NewRegional creates a Regional field on the regional noise channel.
func NewRegional(seed int64, cfg RegionalConfig) *Regional {
	return &Regional{cfg: cfg, field: noise.NewField(noise.Regional.Seed(seed), cfg.Noise)}
}

// Level returns Base + noise*Variation at (x, z).
func (r *Regional) Level(x, z int) float64 {
	return r.cfg.Base + r.field.Sample2D(float64(x), float64(z))*r.cfg.Variation
}

// GridConfig configures surface water placement.
type GridConfig struct {
	CellSize   int `yaml:"cell_size"`
	SubSamples int `yaml:"sub_samples"` // per side, spanning one cell

	DepthThreshold float64 `yaml:"depth_threshold"`
	// SweetSpotBias lowers DepthThreshold for corners whose regional level
	// lies within SweetSpotRange of sea level.
	SweetSpotBias  float64 `yaml:"sweet_spot_bias"`
	SweetSpotRange float64 `yaml:"sweet_spot_range"`
	FillOffset     int     `yaml:"fill_offset"`
	MaxDepth       int     `yaml:"max_depth"`

	MinHumidity    float64 `yaml:"min_humidity"`
	MinTemperature float64 `yaml:"min_temperature"`
	MaxTemperature float64 `yaml:"max_temperature"`

	// RimDetection accepts a corner only when a spill rim surrounds it and
	// uses the rim height as the level.
	RimDetection bool `yaml:"rim_detection"`
	RimRadius    int  `yaml:"rim_radius"`
	RimSamples   int  `yaml:"rim_samples"`

	Regional RegionalConfig `yaml:"regional"`
}

// DefaultGridConfig returns 256-block cells sampled 17x17.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellSize:       256,
		SubSamples:     17,
		DepthThreshold: 8,
		SweetSpotBias:  4,
		SweetSpotRange: 12,
		FillOffset:     -1,
		MaxDepth:       24,
		MinHumidity:    0.2,
		MinTemperature: 0.1,
		MaxTemperature: 0.95,
		RimRadius:      48,
		RimSamples:     16,
		Regional: RegionalConfig{
			Base:      66,
			Variation: 14,
			Noise:     noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 3, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 1024},
		},
	}
}

// Validate reports a degenerate configuration.
func (c GridConfig) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("cell_size must be > 0, got %d", c.CellSize)
	case c.SubSamples < 2:
		return fmt.Errorf("sub_samples must be >= 2, got %d", c.SubSamples)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max_depth must be > 0, got %d", c.MaxDepth)
	case c.SweetSpotRange < 0:
		return fmt.Errorf("sweet_spot_range must be >= 0, got %g", c.SweetSpotRange)
	case c.MinTemperature >= c.MaxTemperature:
		return fmt.Errorf("min_temperature %g must be below max_temperature %g", c.MinTemperature, c.MaxTemperature)
	case c.RimDetection && c.RimRadius <= 0:
		return fmt.Errorf("rim_radius must be > 0, got %d", c.RimRadius)
	case c.RimDetection && c.RimSamples < 3:
		return fmt.Errorf("rim_samples must be >= 3, got %d", c.RimSamples)
	case c.Regional.Variation < 0:
		return fmt.Errorf("regional variation must be >= 0, got %g", c.Regional.Variation)
	}
	if err := c.Regional.Noise.Validate(); err != nil {
		return fmt.Errorf("regional noise: %w", err)
	}
	return nil
}

// CornerKey identifies a grid corner by its cell coordinates.
type CornerKey struct {
	X, Z int
}

func (k CornerKey) String() string {
	return strconv.Itoa(k.X) + ":" + strconv.Itoa(k.Z)
}

// Corner is a cached corner result. OK is false when the corner holds no
// lake.
type Corner struct {
	Level float64
	Depth float64
	OK    bool
}

// Grid answers flat water level queries. Corners are computed once and
// shared by every column that interpolates them.
type Grid struct {
	cfg      GridConfig
	seaLevel int
	sampler  Sampler
	corners  *memo.Cache[CornerKey, Corner]
}

// NewGrid creates a Grid. cfg must be valid.
func NewGrid(cfg GridConfig, seaLevel int, sampler Sampler) *Grid {
	return &Grid{
		cfg:      cfg,
		seaLevel: seaLevel,
		sampler:  sampler,
		corners:  memo.New[CornerKey, Corner](),
	}
}

// Corner returns the memoized corner at cell coordinates k.
func (g *Grid) Corner(k CornerKey) Corner {
	return g.corners.GetOrCompute(k, func() Corner { return g.computeCorner(k) })
}

func (g *Grid) threshold(regional float64) float64 {
	if math.Abs(regional-float64(g.seaLevel)) <= g.cfg.SweetSpotRange {
		return g.cfg.DepthThreshold - g.cfg.SweetSpotBias
	}
	return g.cfg.DepthThreshold
}

func (g *Grid) computeCorner(k CornerKey) Corner {
	wx, wz := k.X*g.cfg.CellSize, k.Z*g.cfg.CellSize

	if g.cfg.RimDetection {
		b := FindRim(g.sampler.TerrainHeight, wx, wz, g.cfg.RimRadius, g.cfg.RimSamples)
		if !b.OK {
			return Corner{}
		}
		return Corner{Level: float64(b.Rim), Depth: float64(b.Depth), OK: true}
	}

	regional := g.sampler.Regional(wx, wz)
	depth := regional - g.averageTerrain(wx, wz)
	if depth <= g.threshold(regional) {
		return Corner{Depth: depth}
	}
	return Corner{Level: regional, Depth: depth, OK: true}
}

// averageTerrain averages SubSamples x SubSamples heights over one cell
// centered on (wx, wz).
func (g *Grid) averageTerrain(wx, wz int) float64 {
	n := g.cfg.SubSamples
	half := float64(g.cfg.CellSize) / 2
	step := float64(g.cfg.CellSize) / float64(n-1)
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := wx + int(math.Round(-half+float64(i)*step))
			z := wz + int(math.Round(-half+float64(j)*step))
			sum += float64(g.sampler.TerrainHeight(x, z))
		}
	}
	return sum / float64(n*n)
}

// Level returns the water surface at column (x, z) whose terrain height is
// terrainHeight. ok is false when the column holds no lake water.
func (g *Grid) Level(x, z, terrainHeight int) (level int, ok bool) {
	temp, hum := g.sampler.Climate(x, z)
	if hum < g.cfg.MinHumidity || temp <= g.cfg.MinTemperature || temp >= g.cfg.MaxTemperature {
		return 0, false
	}

	size := g.cfg.CellSize
	cx, cz := mathx.FloorDiv(x, size), mathx.FloorDiv(z, size)
	fx := float64(x-cx*size) / float64(size)
	fz := float64(z-cz*size) / float64(size)

	var sum, total float64
	for _, c := range [4]struct {
		k CornerKey
		w float64
	}{
		{CornerKey{cx, cz}, (1 - fx) * (1 - fz)},
		{CornerKey{cx + 1, cz}, fx * (1 - fz)},
		{CornerKey{cx, cz + 1}, (1 - fx) * fz},
		{CornerKey{cx + 1, cz + 1}, fx * fz},
	} {
		if c.w == 0 {
			continue
		}
		corner := g.Corner(c.k)
		if !corner.OK {
			continue
		}
		sum += corner.Level * c.w
		total += c.w
	}
	if total == 0 {
		return 0, false
	}

	level = int(math.Floor(sum/total)) + g.cfg.FillOffset
	if level <= terrainHeight {
		return 0, false
	}
	if level-terrainHeight > g.cfg.MaxDepth {
		level = terrainHeight + g.cfg.MaxDepth
	}
	return level, true
}

// Len returns the number of cached corners.
func (g *Grid) Len() int {
	return g.corners.Len()
}

// Clear drops all cached corners. Not safe to call during queries.
func (g *Grid) Clear() {
	g.corners.Clear()
}
