// Package gen ties the noise, spline, density, biome and water layers into a
// per-seed terrain engine and fills chunk columns from it.
package gen

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/biome"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/density"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/spline"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/water"
)

// Engine is the generation context for one seed. Everything but the Voronoi
// and water caches is read-only after New, and every query method is safe
// for concurrent use.
type Engine struct {
	cfg config.Config
	log *slog.Logger

	router    *noise.Router
	terrain   *density.Terrain
	voronoi   *biome.Voronoi
	blender   *biome.Blender
	modifiers biome.Registry
	regional  *water.Regional
	grid      *water.Grid
	aquifer   *water.Aquifer
}

var _ Generator = (*Engine)(nil)

// CacheStats reports the size of the engine's memo caches.
type CacheStats struct {
	VoronoiCells int
	WaterCorners int
}

// New validates cfg and builds every field, spline and table for its seed.
func New(cfg config.Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	splines, err := spline.NewRouters(cfg.Splines, cfg.Terrain.SplineMode)
	if err != nil {
		return nil, fmt.Errorf("build splines: %w", err)
	}

	seed := cfg.Seed
	router := noise.NewRouter(seed, cfg.Noise)
	e := &Engine{
		cfg:       cfg,
		log:       log,
		router:    router,
		terrain:   density.New(seed, cfg.Terrain, router, splines),
		blender:   biome.NewBlender(cfg.Blend, cfg.Noise.SeaLevel, router.Climate),
		modifiers: biome.DefaultRegistry(seed, cfg.Modifiers),
		regional:  water.NewRegional(seed, cfg.Water.Regional),
		aquifer:   water.NewAquifer(seed, cfg.Aquifer),
	}
	e.voronoi = biome.NewVoronoi(seed, cfg.Voronoi, func(x, z float64) biome.ID {
		return biome.Select(router.Sample(x, z))
	})
	e.grid = water.NewGrid(cfg.Water, cfg.Noise.SeaLevel, gridSampler{e})

	log.Info("terrain engine ready",
		"seed", seed,
		"mode", cfg.Terrain.Mode,
		"search", cfg.Terrain.Search,
		"sea_level", cfg.Noise.SeaLevel,
		"rim_detection", cfg.Water.RimDetection,
	)
	return e, nil
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// SeaLevel returns the configured sea level.
func (e *Engine) SeaLevel() int {
	return e.router.SeaLevel()
}

// Parameters returns the parameter tuple at (x, z).
func (e *Engine) Parameters(x, z int) noise.Parameters {
	return e.router.Sample(float64(x), float64(z))
}

// Density returns the terrain density at a block; positive is solid.
func (e *Engine) Density(x, y, z int) float64 {
	return e.terrain.Density(x, y, z)
}

// BaseHeightAt returns the terrain height before biome modifiers.
func (e *Engine) BaseHeightAt(x, z int) int {
	return e.terrain.HeightAt(x, z)
}

// HeightAt returns the final terrain height: base height, then the modifier
// of the biome at (x, z).
func (e *Engine) HeightAt(x, z int) int {
	return e.modify(e.voronoi.BiomeAt(x, z), x, z, e.terrain.HeightAt(x, z))
}

func (e *Engine) modify(id biome.ID, x, z, base int) int {
	h := e.modifiers.Apply(id, x, z, float64(base))
	lo, hi := float64(e.cfg.Terrain.MinY), float64(e.cfg.Terrain.MaxY)
	return int(math.Floor(math.Max(lo, math.Min(hi, h))))
}

// BiomeAt returns the Voronoi region biome at (x, z).
func (e *Engine) BiomeAt(x, z int) biome.ID {
	return e.voronoi.BiomeAt(x, z)
}

// Classify maps temperature and humidity to a biome.
func (e *Engine) Classify(temperature, humidity float64) biome.ID {
	return biome.Classify(temperature, humidity)
}

// BiomeAtAltitude classifies (x, z) with temperature lowered for height.
func (e *Engine) BiomeAtAltitude(x, z, height int) biome.ID {
	return e.blender.AltitudeBiome(x, z, height)
}

// Blend returns the weighted biome mix around (x, z) at height.
func (e *Engine) Blend(x, z, height int) biome.Assignment {
	return e.blender.Blend(x, z, height)
}

// WaterLevel returns the lake surface at (x, z); ok is false for no water.
func (e *Engine) WaterLevel(x, z int) (level int, ok bool) {
	return e.grid.Level(x, z, e.HeightAt(x, z))
}

// FluidAt returns the aquifer fluid of the block at (x, y, z). Solid blocks
// and blocks above the surface hold none.
func (e *Engine) FluidAt(x, y, z int) water.Fluid {
	col := e.column(x, z)
	if y > col.height || col.solid(y) {
		return water.FluidNone
	}
	return e.aquifer.Fluid(x, y, z)
}

// Clear drops the Voronoi and water caches. It must not run concurrently
// with queries.
func (e *Engine) Clear() {
	stats := e.CacheStats()
	e.voronoi.Clear()
	e.grid.Clear()
	e.log.Debug("terrain caches cleared", "voronoi_cells", stats.VoronoiCells, "water_corners", stats.WaterCorners)
}

// CacheStats returns the current cache sizes.
func (e *Engine) CacheStats() CacheStats {
	return CacheStats{VoronoiCells: e.voronoi.Len(), WaterCorners: e.grid.Len()}
}

// column is everything Generate needs about one (x, z) column.
type column struct {
	density density.Column
	base    int
	height  int
	biome   biome.ID
	flat    bool
}

func (e *Engine) column(x, z int) column {
	d := e.terrain.Column(x, z)
	flat := e.cfg.Terrain.Mode == density.Mode2D
	var base int
	if flat {
		base = e.terrain.FlatHeight(d)
	} else {
		base = d.Height()
	}
	id := e.voronoi.BiomeAt(x, z)
	return column{density: d, base: base, height: e.modify(id, x, z, base), biome: id, flat: flat}
}

// solid reports whether y is terrain. Blocks raised by a modifier above the
// base surface are solid; below it the density field decides.
func (c *column) solid(y int) bool {
	if y > c.height {
		return false
	}
	if c.flat || y > c.base {
		return true
	}
	return c.density.Density(y) > 0
}

// gridSampler feeds engine terrain and climate to the water grid.
type gridSampler struct {
	e *Engine
}

func (s gridSampler) Regional(x, z int) float64 {
	return s.e.regional.Level(x, z)
}

func (s gridSampler) TerrainHeight(x, z int) int {
	return s.e.HeightAt(x, z)
}

func (s gridSampler) Climate(x, z int) (float64, float64) {
	return s.e.router.Climate(float64(x), float64(z))
}
