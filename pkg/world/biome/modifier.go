package biome

import (
	"fmt"
	"maps"
	"math"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

// Modifier adjusts a base terrain height for one biome. It runs after base
// height generation, never before.
type Modifier interface {
	Modify(x, z int, height float64) float64
}

// ModifierFunc adapts a function to Modifier.
type ModifierFunc func(x, z int, height float64) float64

func (f ModifierFunc) Modify(x, z int, height float64) float64 { return f(x, z, height) }

// Registry maps biomes to height modifiers. It is immutable once built.
type Registry struct {
	mods map[ID]Modifier
}

// NewRegistry copies entries into a Registry.
func NewRegistry(entries map[ID]Modifier) Registry {
	return Registry{mods: maps.Clone(entries)}
}

// Apply runs id's modifier on height; biomes without one pass through.
func (r Registry) Apply(id ID, x, z int, height float64) float64 {
	m, ok := r.mods[id]
	if !ok {
		return height
	}
	return m.Modify(x, z, height)
}

// Has reports whether id has a modifier.
func (r Registry) Has(id ID) bool {
	_, ok := r.mods[id]
	return ok
}

// PeaksConfig configures spire amplification on high mountains.
type PeaksConfig struct {
	Threshold        float64           `yaml:"threshold"` // active at or above this height
	Gate             float64           `yaml:"gate"`      // spire noise must exceed this
	MaxSpire         float64           `yaml:"max_spire"`
	OutcropAmplitude float64           `yaml:"outcrop_amplitude"`
	Spires           noise.FieldConfig `yaml:"spires"`
	Outcrops         noise.FieldConfig `yaml:"outcrops"`
}

// DunesConfig configures desert rolling.
type DunesConfig struct {
	Amplitude float64           `yaml:"amplitude"`
	Noise     noise.FieldConfig `yaml:"noise"`
}

// TerracesConfig configures mesa terracing.
type TerracesConfig struct {
	Step float64 `yaml:"step"`
	// Riser is the fraction of each step spent climbing to the next shelf.
	Riser float64 `yaml:"riser"`
}

// ModifierConfig groups the built-in modifiers.
type ModifierConfig struct {
	Peaks    PeaksConfig    `yaml:"peaks"`
	Dunes    DunesConfig    `yaml:"dunes"`
	Terraces TerracesConfig `yaml:"terraces"`
}

// DefaultModifierConfig returns the built-in modifier tuning.
func DefaultModifierConfig() ModifierConfig {
	return ModifierConfig{
		Peaks: PeaksConfig{
			Threshold:        110,
			Gate:             0.3,
			MaxSpire:         20,
			OutcropAmplitude: 2,
			Spires:           noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 16},
			Outcrops:         noise.FieldConfig{Backend: noise.BackendPerlin, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 5},
		},
		Dunes: DunesConfig{
			Amplitude: 4,
			Noise:     noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.4, Lacunarity: 2, Scale: 1.0 / 24},
		},
		Terraces: TerracesConfig{Step: 8, Riser: 0.25},
	}
}

// Validate reports a degenerate configuration.
func (c ModifierConfig) Validate() error {
	switch {
	case c.Peaks.Gate < 0 || c.Peaks.Gate >= 1:
		return fmt.Errorf("peaks gate must be in [0,1), got %g", c.Peaks.Gate)
	case c.Peaks.MaxSpire < 0 || c.Peaks.OutcropAmplitude < 0:
		return fmt.Errorf("peaks amplitudes must be >= 0")
	case c.Dunes.Amplitude < 0:
		return fmt.Errorf("dunes amplitude must be >= 0, got %g", c.Dunes.Amplitude)
	case c.Terraces.Step <= 0:
		return fmt.Errorf("terrace step must be > 0, got %g", c.Terraces.Step)
	case c.Terraces.Riser <= 0 || c.Terraces.Riser > 1:
		return fmt.Errorf("terrace riser must be in (0,1], got %g", c.Terraces.Riser)
	}
	for name, fc := range map[string]noise.FieldConfig{
		"peaks.spires":   c.Peaks.Spires,
		"peaks.outcrops": c.Peaks.Outcrops,
		"dunes.noise":    c.Dunes.Noise,
	} {
		if err := fc.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Peaks raises high mountain columns into spires with small outcrops.
type Peaks struct {
	cfg      PeaksConfig
	spires   *noise.Field
	outcrops *noise.Field
}

// NewPeaks creates a Peaks modifier.
func NewPeaks(seed int64, cfg PeaksConfig) *Peaks {
	return &Peaks{
		cfg:      cfg,
		spires:   noise.NewField(noise.Spires.Seed(seed), cfg.Spires),
		outcrops: noise.NewField(noise.Outcrops.Seed(seed), cfg.Outcrops),
	}
}

func (p *Peaks) Modify(x, z int, height float64) float64 {
	if height < p.cfg.Threshold {
		return height
	}
	fx, fz := float64(x), float64(z)
	var spire float64
	if s := p.spires.Sample2D(fx, fz); s > p.cfg.Gate {
		spire = (s - p.cfg.Gate) / (1 - p.cfg.Gate) * p.cfg.MaxSpire
	}
	return height + spire + p.outcrops.Sample2D(fx, fz)*p.cfg.OutcropAmplitude
}

// Dunes rolls desert surfaces upward by up to Amplitude blocks.
type Dunes struct {
	cfg   DunesConfig
	noise *noise.Field
}

// NewDunes creates a Dunes modifier.
func NewDunes(seed int64, cfg DunesConfig) *Dunes {
	return &Dunes{cfg: cfg, noise: noise.NewField(noise.Dunes.Seed(seed), cfg.Noise)}
}

func (d *Dunes) Modify(x, z int, height float64) float64 {
	n := d.noise.Sample2D(float64(x), float64(z))
	return height + d.cfg.Amplitude*(0.5+0.5*n)
}

// Terraces flattens heights into shelves joined by steep risers. The result
// stays within the step containing height and never decreases with it.
type Terraces struct {
	cfg TerracesConfig
}

// NewTerraces creates a Terraces modifier.
func NewTerraces(cfg TerracesConfig) *Terraces {
	return &Terraces{cfg: cfg}
}

func (t *Terraces) Modify(_, _ int, height float64) float64 {
	step := t.cfg.Step
	base := math.Floor(height/step) * step
	frac := (height - base) / step
	shelf := 1 - t.cfg.Riser
	if frac <= shelf {
		return base
	}
	return base + (frac-shelf)/t.cfg.Riser*step
}

// DefaultRegistry wires the built-in modifiers to their biomes.
func DefaultRegistry(seed int64, cfg ModifierConfig) Registry {
	peaks := NewPeaks(seed, cfg.Peaks)
	return NewRegistry(map[ID]Modifier{
		ExtremeHills: peaks,
		IceMountains: peaks,
		Desert:       NewDunes(seed, cfg.Dunes),
		Mesa:         NewTerraces(cfg.Terraces),
	})
}
