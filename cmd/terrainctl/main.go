// Command terrainctl samples a region of a generated world into a compressed
// preview dump.
package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/preview"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/density"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
)

func main() {
	cfg := config.Default()

	var (
		mode      = string(cfg.Terrain.Mode)
		search    = string(cfg.Terrain.Search)
		cfgPath   = flag.String("config", "", "YAML config file")
		cfgSrc    = flag.String("config-src", "", "config source URL fetched with go-getter (overrides -config)")
		x         = flag.Int("x", -256, "world x of the first sampled column")
		z         = flag.Int("z", -256, "world z of the first sampled column")
		width     = flag.Int("width", 128, "sampled columns along x")
		depth     = flag.Int("depth", 128, "sampled columns along z")
		step      = flag.Int("step", 4, "blocks between sampled columns")
		workers   = flag.Int("workers", runtime.NumCPU(), "sampling workers")
		out       = flag.String("o", "region.zst", "output preview path")
		verbose   = flag.Bool("v", false, "debug logging")
		chunkDump = flag.Bool("chunks", false, "also generate every chunk under the region and report block counts")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.Noise.SeaLevel, "sea-level", cfg.Noise.SeaLevel, "sea level")
	flag.StringVar(&mode, "mode", mode, "density mode: 3d or 2d")
	flag.StringVar(&search, "search", search, "height search: adaptive or linear")
	flag.BoolVar(&cfg.Water.RimDetection, "rim-detection", cfg.Water.RimDetection, "place lakes only inside rimmed basins")
	flag.Parse()

	cfg.Terrain.Mode = density.Mode(mode)
	cfg.Terrain.Search = density.Search(search)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	path, cleanup := *cfgPath, func() {}
	if *cfgSrc != "" {
		log.Info("fetching config", "src", *cfgSrc)
		fetched, rm, err := fetchConfig(*cfgSrc)
		if err != nil {
			log.Error("fetch config", "src", *cfgSrc, "error", err)
			os.Exit(1)
		}
		path, cleanup = fetched, rm
	}
	if path != "" {
		fromFile, err := config.Load(path)
		cleanup()
		if err != nil {
			log.Error("load config", "path", path, "error", err)
			os.Exit(1)
		}
		config.Merge(&cfg, &fromFile, explicit)
	}

	eng, err := gen.New(cfg, log)
	if err != nil {
		log.Error("build engine", "error", err)
		os.Exit(1)
	}

	region := preview.NewRegion(preview.Header{
		Seed:     cfg.Seed,
		X:        *x,
		Z:        *z,
		Width:    *width,
		Depth:    *depth,
		Step:     *step,
		SeaLevel: cfg.Noise.SeaLevel,
	})

	start := time.Now()
	sampleRegion(eng, region, *workers)
	sum := region.Summary()
	stats := eng.CacheStats()
	log.Info("region sampled",
		"columns", len(region.Columns),
		"elapsed", time.Since(start),
		"min_height", sum.MinHeight,
		"max_height", sum.MaxHeight,
		"water_columns", sum.WaterColumns,
		"biomes", len(sum.Biomes),
		"voronoi_cells", stats.VoronoiCells,
		"water_corners", stats.WaterCorners,
	)

	if *chunkDump {
		start = time.Now()
		counts := countBlocks(eng, region, *workers)
		log.Info("chunks generated",
			"chunks", counts.Chunks,
			"elapsed", time.Since(start),
			"stone", counts.Stone,
			"water", counts.Water,
			"lava", counts.Lava,
		)
	}

	if err := preview.WriteFile(*out, region); err != nil {
		log.Error("write preview", "path", *out, "error", err)
		os.Exit(1)
	}
	log.Info("preview written", "path", *out)
}
