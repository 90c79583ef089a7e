// Package noise provides seeded fractal noise fields and the multi-channel
// parameter router that drives terrain shaping and biome selection.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Backend selects the gradient noise implementation behind a Field.
type Backend string

const (
	BackendOpenSimplex Backend = "opensimplex"
	BackendPerlin      Backend = "perlin"
)

// Source is a single-octave gradient noise function.
type Source interface {
	Eval2(x, y float64) float64
	Eval3(x, y, z float64) float64
}

// perlinSource adapts go-perlin's single-octave output to Source.
type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval2(x, y float64) float64    { return s.p.Noise2D(x, y) }
func (s perlinSource) Eval3(x, y, z float64) float64 { return s.p.Noise3D(x, y, z) }

// NewSource returns the backend's noise function for seed.
func NewSource(backend Backend, seed int64) Source {
	if backend == BackendPerlin {
		return perlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
	}
	return opensimplex.New(seed)
}

// FieldConfig describes one fractal noise channel.
type FieldConfig struct {
	Backend     Backend `yaml:"backend"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"` // per-octave amplitude decay
	Lacunarity  float64 `yaml:"lacunarity"`  // per-octave frequency growth
	Scale       float64 `yaml:"scale"`       // base frequency in cycles per block
}

// Validate reports a degenerate configuration.
func (c FieldConfig) Validate() error {
	switch {
	case c.Backend != "" && c.Backend != BackendOpenSimplex && c.Backend != BackendPerlin:
		return fmt.Errorf("unknown noise backend %q", c.Backend)
	case c.Octaves < 1:
		return fmt.Errorf("octaves must be >= 1, got %d", c.Octaves)
	case c.Persistence <= 0:
		return fmt.Errorf("persistence must be > 0, got %g", c.Persistence)
	case c.Lacunarity <= 0:
		return fmt.Errorf("lacunarity must be > 0, got %g", c.Lacunarity)
	case c.Scale <= 0:
		return fmt.Errorf("scale must be > 0, got %g", c.Scale)
	}
	return nil
}

// Field is a seeded fractal noise function with output in [-1, 1].
// It holds no mutable state and is safe for concurrent use.
type Field struct {
	src         Source
	amplitudes  []float64
	frequencies []float64
	norm        float64
}

// NewField builds a Field for seed. cfg must be valid.
func NewField(seed int64, cfg FieldConfig) *Field {
	f := &Field{
		src:         NewSource(cfg.Backend, seed),
		amplitudes:  make([]float64, cfg.Octaves),
		frequencies: make([]float64, cfg.Octaves),
	}
	amp, freq := 1.0, cfg.Scale
	for i := 0; i < cfg.Octaves; i++ {
		f.amplitudes[i] = amp
		f.frequencies[i] = freq
		f.norm += amp
		amp *= cfg.Persistence
		freq *= cfg.Lacunarity
	}
	return f
}

// Sample2D returns the fractal noise value at block coordinates (x, z).
func (f *Field) Sample2D(x, z float64) float64 {
	var total float64
	for i, amp := range f.amplitudes {
		freq := f.frequencies[i]
		total += f.src.Eval2(x*freq, z*freq) * amp
	}
	return clamp(total/f.norm, -1, 1)
}

// Sample3D returns the fractal noise value at block coordinates (x, y, z).
func (f *Field) Sample3D(x, y, z float64) float64 {
	var total float64
	for i, amp := range f.amplitudes {
		freq := f.frequencies[i]
		total += f.src.Eval3(x*freq, y*freq, z*freq) * amp
	}
	return clamp(total/f.norm, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
