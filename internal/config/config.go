// Package config aggregates every generator setting into one YAML-backed
// Config.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/biome"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/density"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/spline"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/water"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// WorldTop is the highest block y a generated chunk column can hold.
const WorldTop = 255

// Config holds the generator configuration. It is fixed once an engine is
// built from it.
type Config struct {
	Seed      int64                `yaml:"seed"`
	Noise     noise.RouterConfig   `yaml:"noise"`
	Splines   spline.Tables        `yaml:"splines"`
	Terrain   density.Config       `yaml:"terrain"`
	Voronoi   biome.VoronoiConfig  `yaml:"voronoi"`
	Blend     biome.BlendConfig    `yaml:"blend"`
	Modifiers biome.ModifierConfig `yaml:"modifiers"`
	Water     water.GridConfig     `yaml:"water"`
	Aquifer   water.AquiferConfig  `yaml:"aquifer"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Noise:     noise.DefaultRouterConfig(),
		Splines:   spline.DefaultTables(),
		Terrain:   density.DefaultConfig(),
		Voronoi:   biome.DefaultVoronoiConfig(),
		Blend:     biome.DefaultBlendConfig(),
		Modifiers: biome.DefaultModifierConfig(),
		Water:     water.DefaultGridConfig(),
		Aquifer:   water.DefaultAquiferConfig(),
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Parse(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document does not set.
func Parse(raw []byte, cfg *Config) error {
	return yaml.Unmarshal(raw, cfg)
}

// Validate reports the first degenerate section.
func (c Config) Validate() error {
	if c.Terrain.MinY < 0 || c.Terrain.MaxY > WorldTop {
		return fmt.Errorf("%w: terrain range [%d, %d] outside chunk height [0, %d]", ErrInvalid, c.Terrain.MinY, c.Terrain.MaxY, WorldTop)
	}
	if c.Noise.SeaLevel < c.Terrain.MinY || c.Noise.SeaLevel > c.Terrain.MaxY {
		return fmt.Errorf("%w: sea_level %d outside [%d, %d]", ErrInvalid, c.Noise.SeaLevel, c.Terrain.MinY, c.Terrain.MaxY)
	}
	sections := []struct {
		name     string
		validate func() error
	}{
		{"noise", c.Noise.Validate},
		{"terrain", c.Terrain.Validate},
		{"splines", func() error {
			_, err := spline.NewRouters(c.Splines, c.Terrain.SplineMode)
			return err
		}},
		{"voronoi", c.Voronoi.Validate},
		{"blend", c.Blend.Validate},
		{"modifiers", c.Modifiers.Validate},
		{"water", c.Water.Validate},
		{"aquifer", c.Aquifer.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, s.name, err)
		}
	}
	return nil
}

// Merge applies file-loaded config values into cfg, except for the fields
// backed by flags that were explicitly set on the command line.
// explicitFlags contains the names of those flags.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	merged := *fromFile
	if explicitFlags["seed"] {
		merged.Seed = cfg.Seed
	}
	if explicitFlags["sea-level"] {
		merged.Noise.SeaLevel = cfg.Noise.SeaLevel
	}
	if explicitFlags["mode"] {
		merged.Terrain.Mode = cfg.Terrain.Mode
	}
	if explicitFlags["search"] {
		merged.Terrain.Search = cfg.Terrain.Search
	}
	if explicitFlags["rim-detection"] {
		merged.Water.RimDetection = cfg.Water.RimDetection
	}
	*cfg = merged
}
