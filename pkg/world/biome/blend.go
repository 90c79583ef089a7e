package biome

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BlendConfig configures multi-sample biome blending.
type BlendConfig struct {
	Radius    int     `yaml:"radius"`     // samples per side: 2*Radius+1
	Spacing   int     `yaml:"spacing"`    // blocks between samples
	Distance  float64 `yaml:"distance"`   // weight falls to 0 at this range
	MinWeight float64 `yaml:"min_weight"` // entries below are pruned
	// LapseRate is the temperature drop per block above sea level.
	LapseRate float64 `yaml:"lapse_rate"`
}

// DefaultBlendConfig returns a 5x5 blend over 32 blocks.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		Radius:    2,
		Spacing:   8,
		Distance:  32,
		MinWeight: 0.05,
		LapseRate: 0.004,
	}
}

// Validate reports a degenerate configuration.
func (c BlendConfig) Validate() error {
	switch {
	case c.Radius < 0:
		return fmt.Errorf("radius must be >= 0, got %d", c.Radius)
	case c.Spacing <= 0:
		return fmt.Errorf("spacing must be > 0, got %d", c.Spacing)
	case c.Distance <= 0:
		return fmt.Errorf("distance must be > 0, got %g", c.Distance)
	case c.MinWeight < 0 || c.MinWeight >= 1:
		return fmt.Errorf("min_weight must be in [0,1), got %g", c.MinWeight)
	case c.LapseRate < 0:
		return fmt.Errorf("lapse_rate must be >= 0, got %g", c.LapseRate)
	}
	return nil
}

// Assignment is a dominant biome with its blend weights. Weights sum to 1.
type Assignment struct {
	ID      ID
	Weights map[ID]float64
}

// Climate returns temperature and humidity in [0, 1] at a position.
type Climate func(x, z float64) (temperature, humidity float64)

// Blender produces smooth biome weights around a position.
type Blender struct {
	cfg      BlendConfig
	seaLevel int
	climate  Climate
}

// NewBlender creates a Blender. cfg must be valid.
func NewBlender(cfg BlendConfig, seaLevel int, climate Climate) *Blender {
	return &Blender{cfg: cfg, seaLevel: seaLevel, climate: climate}
}

// AltitudeBiome classifies (x, z) with temperature chilled for height.
func (b *Blender) AltitudeBiome(x, z, height int) ID {
	temp, hum := b.climate(float64(x), float64(z))
	return Classify(Chill(temp, height, b.seaLevel, b.cfg.LapseRate), hum)
}

// Blend samples the surrounding grid and returns normalized, pruned weights.
// Every sample uses the same height for the altitude adjustment.
func (b *Blender) Blend(x, z, height int) Assignment {
	weights := make(map[ID]float64)
	spacing := float64(b.cfg.Spacing)
	for dz := -b.cfg.Radius; dz <= b.cfg.Radius; dz++ {
		for dx := -b.cfg.Radius; dx <= b.cfg.Radius; dx++ {
			off := mgl64.Vec2{float64(dx), float64(dz)}.Mul(spacing)
			w := 1 - off.Len()/b.cfg.Distance
			if w <= 0 {
				continue
			}
			id := b.AltitudeBiome(x+dx*b.cfg.Spacing, z+dz*b.cfg.Spacing, height)
			weights[id] += w * w
		}
	}
	return normalize(weights, b.cfg.MinWeight)
}

// normalize scales weights to sum 1, drops entries below minWeight and
// rescales the survivors. The strongest entry always survives.
func normalize(weights map[ID]float64, minWeight float64) Assignment {
	var total float64
	for _, w := range weights {
		total += w
	}

	best, bestW := ID(0), -1.0
	for id, w := range weights {
		if w > bestW || (w == bestW && id < best) {
			best, bestW = id, w
		}
	}

	kept := make(map[ID]float64, len(weights))
	var keptTotal float64
	for id, w := range weights {
		if w/total < minWeight && id != best {
			continue
		}
		kept[id] = w
		keptTotal += w
	}
	for id, w := range kept {
		kept[id] = w / keptTotal
	}
	return Assignment{ID: best, Weights: kept}
}

// Sum returns the total of the assignment weights.
func (a Assignment) Sum() float64 {
	var s float64
	for _, w := range a.Weights {
		s += w
	}
	return s
}

// Weight returns id's share, 0 when absent.
func (a Assignment) Weight(id ID) float64 {
	return a.Weights[id]
}
