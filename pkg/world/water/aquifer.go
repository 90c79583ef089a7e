package water

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

// Fluid is the content of an underground air cell.
type Fluid byte

const (
	FluidNone Fluid = iota
	FluidWater
	FluidMagma
)

func (f Fluid) String() string {
	switch f {
	case FluidWater:
		return "water"
	case FluidMagma:
		return "magma"
	}
	return "none"
}

// AquiferConfig configures the underground water table.
type AquiferConfig struct {
	BaseLevel  float64           `yaml:"base_level"`
	Variation  float64           `yaml:"variation"`
	MagmaLevel int               `yaml:"magma_level"` // cells below fill with magma
	Noise      noise.FieldConfig `yaml:"noise"`
}

// DefaultAquiferConfig returns a table around y=40 with magma below y=10.
func DefaultAquiferConfig() AquiferConfig {
	return AquiferConfig{
		BaseLevel:  40,
		Variation:  12,
		MagmaLevel: 10,
		Noise:      noise.FieldConfig{Backend: noise.BackendOpenSimplex, Octaves: 2, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 2048},
	}
}

// Validate reports a degenerate configuration.
func (c AquiferConfig) Validate() error {
	if c.Variation < 0 {
		return fmt.Errorf("variation must be >= 0, got %g", c.Variation)
	}
	if err := c.Noise.Validate(); err != nil {
		return fmt.Errorf("noise: %w", err)
	}
	return nil
}

// Aquifer decides fluids for cave air cells. It is evaluated per cell and
// needs no cache.
type Aquifer struct {
	cfg   AquiferConfig
	field *noise.Field
}

// NewAquifer creates an Aquifer on the aquifer noise channel.
func NewAquifer(seed int64, cfg AquiferConfig) *Aquifer {
	return &Aquifer{cfg: cfg, field: noise.NewField(noise.Aquifer.Seed(seed), cfg.Noise)}
}

// TableAt returns the water table height at column (x, z).
func (a *Aquifer) TableAt(x, z int) int {
	n := a.field.Sample2D(float64(x), float64(z))
	return int(math.Floor(a.cfg.BaseLevel + n*a.cfg.Variation))
}

// Fluid returns the fluid filling the air cell (x, y, z).
func (a *Aquifer) Fluid(x, y, z int) Fluid {
	if y > a.TableAt(x, z) {
		return FluidNone
	}
	if y < a.cfg.MagmaLevel {
		return FluidMagma
	}
	return FluidWater
}
