package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/density"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/spline"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"sea level", func(c *Config) { c.Noise.SeaLevel = 300 }},
		{"noise", func(c *Config) { c.Noise.Erosion.Octaves = 0 }},
		{"terrain range", func(c *Config) { c.Terrain.MinY = 200; c.Terrain.MaxY = 100 }},
		{"above chunk top", func(c *Config) { c.Terrain.MaxY = 320; c.Noise.SeaLevel = 290 }},
		{"below chunk floor", func(c *Config) { c.Terrain.MinY = -64 }},
		{"voronoi", func(c *Config) { c.Voronoi.CellSize = 0 }},
		{"blend", func(c *Config) { c.Blend.Distance = 0 }},
		{"modifiers", func(c *Config) { c.Modifiers.Terraces.Step = 0 }},
		{"water", func(c *Config) { c.Water.CellSize = -1 }},
		{"aquifer", func(c *Config) { c.Aquifer.Variation = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateEmptySpline(t *testing.T) {
	cfg := Default()
	cfg.Splines.Factor = nil
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, spline.ErrNoPoints) {
		t.Errorf("Validate() = %v, want ErrInvalid wrapping ErrNoPoints", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.yaml")
	doc := []byte(`
seed: 42
noise:
  sea_level: 58
terrain:
  mode: 2d
water:
  rim_detection: true
  max_depth: 12
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || cfg.Noise.SeaLevel != 58 {
		t.Errorf("seed/sea level = %d/%d, want 42/58", cfg.Seed, cfg.Noise.SeaLevel)
	}
	if cfg.Terrain.Mode != density.Mode2D {
		t.Errorf("terrain mode = %q, want 2d", cfg.Terrain.Mode)
	}
	if !cfg.Water.RimDetection || cfg.Water.MaxDepth != 12 {
		t.Errorf("water = %+v, want rim detection and max depth 12", cfg.Water)
	}

	def := Default()
	if cfg.Water.CellSize != def.Water.CellSize {
		t.Errorf("water cell size = %d, want default %d", cfg.Water.CellSize, def.Water.CellSize)
	}
	if cfg.Noise.Continentalness != def.Noise.Continentalness {
		t.Errorf("continentalness = %+v, want default", cfg.Noise.Continentalness)
	}
	if len(cfg.Splines.Offset) != len(def.Splines.Offset) {
		t.Errorf("offset table has %d points, want default %d", len(cfg.Splines.Offset), len(def.Splines.Offset))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadSplineTable(t *testing.T) {
	cfg := Default()
	doc := []byte(`
splines:
  factor:
    - at: -1
      value: 0.5
    - at: 1
      spline:
        - at: -1
          value: 1
        - at: 1
          value: 2
`)
	if err := Parse(doc, &cfg); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, err := spline.NewRouters(cfg.Splines, spline.Linear)
	if err != nil {
		t.Fatalf("NewRouters: %v", err)
	}
	if got := r.Factor.Sample(1, 1); got != 2 {
		t.Errorf("Factor.Sample(1, 1) = %g, want 2", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML succeeded")
	}
}

func TestMergeExplicitFlagsWin(t *testing.T) {
	flags := Default()
	flags.Seed = 7
	flags.Noise.SeaLevel = 70
	flags.Terrain.Search = density.SearchLinear

	file := Default()
	file.Seed = 99
	file.Noise.SeaLevel = 50
	file.Terrain.Search = density.SearchAdaptive
	file.Water.MaxDepth = 9

	Merge(&flags, &file, map[string]bool{"seed": true, "search": true})

	if flags.Seed != 7 {
		t.Errorf("Seed = %d, want explicit 7", flags.Seed)
	}
	if flags.Terrain.Search != density.SearchLinear {
		t.Errorf("Search = %q, want explicit linear", flags.Terrain.Search)
	}
	if flags.Noise.SeaLevel != 50 {
		t.Errorf("SeaLevel = %d, want file value 50", flags.Noise.SeaLevel)
	}
	if flags.Water.MaxDepth != 9 {
		t.Errorf("Water.MaxDepth = %d, want file value 9", flags.Water.MaxDepth)
	}
}
