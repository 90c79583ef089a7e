package noise

import "fmt"

// Channel identifies a semantic noise channel. Its value is added to the
// world seed so that no two channels ever share a permutation.
type Channel int64

const (
	Continentalness Channel = 100
	Erosion         Channel = 200
	PeaksValleys    Channel = 300
	Weirdness       Channel = 400
	Temperature     Channel = 500
	Humidity        Channel = 600
	Jaggedness      Channel = 700
	Caves           Channel = 800
	Arches          Channel = 900
	DistortionX     Channel = 1000
	DistortionZ     Channel = 1100
	Regional        Channel = 1200
	Aquifer         Channel = 1300
	Spires          Channel = 1400
	Outcrops        Channel = 1500
	Dunes           Channel = 1600
)

// Seed derives the channel seed from the world seed.
func (c Channel) Seed(world int64) int64 {
	return world + int64(c)
}

// Parameters is the climate/shape tuple sampled at one horizontal position.
// Shape channels are in [-1, 1]; temperature and humidity are in [0, 1].
type Parameters struct {
	Continentalness float64
	Erosion         float64
	PeaksValleys    float64
	Weirdness       float64
	Temperature     float64
	Humidity        float64
}

// Clamp returns p with every channel clamped to its domain.
func (p Parameters) Clamp() Parameters {
	return Parameters{
		Continentalness: clamp(p.Continentalness, -1, 1),
		Erosion:         clamp(p.Erosion, -1, 1),
		PeaksValleys:    clamp(p.PeaksValleys, -1, 1),
		Weirdness:       clamp(p.Weirdness, -1, 1),
		Temperature:     clamp(p.Temperature, 0, 1),
		Humidity:        clamp(p.Humidity, 0, 1),
	}
}

// RouterConfig configures the six parameter channels.
type RouterConfig struct {
	SeaLevel        int         `yaml:"sea_level"`
	Continentalness FieldConfig `yaml:"continentalness"`
	Erosion         FieldConfig `yaml:"erosion"`
	PeaksValleys    FieldConfig `yaml:"peaks_valleys"`
	Weirdness       FieldConfig `yaml:"weirdness"`
	Temperature     FieldConfig `yaml:"temperature"`
	Humidity        FieldConfig `yaml:"humidity"`
}

// Validate reports the first invalid channel.
func (c RouterConfig) Validate() error {
	channels := []struct {
		name string
		cfg  FieldConfig
	}{
		{"continentalness", c.Continentalness},
		{"erosion", c.Erosion},
		{"peaks_valleys", c.PeaksValleys},
		{"weirdness", c.Weirdness},
		{"temperature", c.Temperature},
		{"humidity", c.Humidity},
	}
	for _, ch := range channels {
		if err := ch.cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
	}
	return nil
}

// Router samples every parameter channel at a position.
type Router struct {
	seaLevel        int
	continentalness *Field
	erosion         *Field
	peaksValleys    *Field
	weirdness       *Field
	temperature     *Field
	humidity        *Field
}

// NewRouter creates a Router for the world seed.
func NewRouter(seed int64, cfg RouterConfig) *Router {
	return &Router{
		seaLevel:        cfg.SeaLevel,
		continentalness: NewField(Continentalness.Seed(seed), cfg.Continentalness),
		erosion:         NewField(Erosion.Seed(seed), cfg.Erosion),
		peaksValleys:    NewField(PeaksValleys.Seed(seed), cfg.PeaksValleys),
		weirdness:       NewField(Weirdness.Seed(seed), cfg.Weirdness),
		temperature:     NewField(Temperature.Seed(seed), cfg.Temperature),
		humidity:        NewField(Humidity.Seed(seed), cfg.Humidity),
	}
}

// SeaLevel returns the sea level the router was configured with.
func (r *Router) SeaLevel() int {
	return r.seaLevel
}

// Sample returns the parameter tuple at block coordinates (x, z).
func (r *Router) Sample(x, z float64) Parameters {
	return Parameters{
		Continentalness: r.continentalness.Sample2D(x, z),
		Erosion:         r.erosion.Sample2D(x, z),
		PeaksValleys:    r.peaksValleys.Sample2D(x, z),
		Weirdness:       r.weirdness.Sample2D(x, z),
		Temperature:     r.temperature.Sample2D(x, z)*0.5 + 0.5,
		Humidity:        r.humidity.Sample2D(x, z)*0.5 + 0.5,
	}
}

// Climate returns only temperature and humidity at (x, z).
func (r *Router) Climate(x, z float64) (temperature, humidity float64) {
	return r.temperature.Sample2D(x, z)*0.5 + 0.5, r.humidity.Sample2D(x, z)*0.5 + 0.5
}

// DefaultRouterConfig returns continent-scale channels: continentalness and
// erosion vary over thousands of blocks, weirdness and climate a little faster.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		SeaLevel:        62,
		Continentalness: FieldConfig{Backend: BackendOpenSimplex, Octaves: 5, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 2048},
		Erosion:         FieldConfig{Backend: BackendOpenSimplex, Octaves: 4, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 1024},
		PeaksValleys:    FieldConfig{Backend: BackendOpenSimplex, Octaves: 4, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 512},
		Weirdness:       FieldConfig{Backend: BackendOpenSimplex, Octaves: 3, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 768},
		Temperature:     FieldConfig{Backend: BackendOpenSimplex, Octaves: 4, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 1536},
		Humidity:        FieldConfig{Backend: BackendOpenSimplex, Octaves: 4, Persistence: 0.5, Lacunarity: 2, Scale: 1.0 / 1536},
	}
}
