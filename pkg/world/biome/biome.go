// Package biome assigns discrete biomes to world positions: a climate lookup
// table, cached Voronoi regions, weighted blending and per-biome height
// modifiers.
package biome

import (
	"strconv"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

// ID is a biome id matching the Minecraft 1.8 protocol.
type ID byte

const (
	Ocean           ID = 0
	Plains          ID = 1
	Desert          ID = 2
	ExtremeHills    ID = 3
	Forest          ID = 4
	Taiga           ID = 5
	Swampland       ID = 6
	FrozenOcean     ID = 10
	IcePlains       ID = 12
	IceMountains    ID = 13
	Beach           ID = 16
	Jungle          ID = 21
	DeepOcean       ID = 24
	ColdBeach       ID = 26
	BirchForest     ID = 27
	RoofedForest    ID = 29
	ColdTaiga       ID = 30
	Savanna         ID = 35
	Mesa            ID = 37
	SunflowerPlains ID = 129
)

var names = map[ID]string{
	Ocean:           "ocean",
	Plains:          "plains",
	Desert:          "desert",
	ExtremeHills:    "extreme_hills",
	Forest:          "forest",
	Taiga:           "taiga",
	Swampland:       "swampland",
	FrozenOcean:     "frozen_ocean",
	IcePlains:       "ice_plains",
	IceMountains:    "ice_mountains",
	Beach:           "beach",
	Jungle:          "jungle",
	DeepOcean:       "deep_ocean",
	ColdBeach:       "cold_beach",
	BirchForest:     "birch_forest",
	RoofedForest:    "roofed_forest",
	ColdTaiga:       "cold_taiga",
	Savanna:         "savanna",
	Mesa:            "mesa",
	SunflowerPlains: "sunflower_plains",
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return "biome(" + strconv.Itoa(int(id)) + ")"
}

// PlainsFamily reports whether id is one of the plains variants.
func (id ID) PlainsFamily() bool {
	return id == Plains || id == SunflowerPlains
}

// Aquatic reports whether id is an ocean biome.
func (id ID) Aquatic() bool {
	switch id {
	case Ocean, DeepOcean, FrozenOcean:
		return true
	}
	return false
}

const buckets = 6

// table is indexed [temperature bucket][humidity bucket], cold/dry first.
var table = [buckets][buckets]ID{
	{IcePlains, IcePlains, IcePlains, ColdTaiga, ColdTaiga, ColdTaiga},
	{IcePlains, ColdTaiga, Taiga, Taiga, Taiga, Taiga},
	{Plains, Plains, Plains, Plains, Forest, BirchForest},
	{Plains, SunflowerPlains, Plains, Plains, Forest, Swampland},
	{Savanna, Savanna, Plains, Forest, RoofedForest, Jungle},
	{Desert, Desert, Mesa, Savanna, Jungle, Jungle},
}

func bucket(v float64) int {
	i := int(v * buckets)
	if i < 0 {
		return 0
	}
	if i >= buckets {
		return buckets - 1
	}
	return i
}

// Classify maps temperature and humidity in [0, 1] to a biome through the
// fixed 6x6 table. Out-of-range values clamp to the edge buckets.
func Classify(temperature, humidity float64) ID {
	return table[bucket(temperature)][bucket(humidity)]
}

// Continentalness and shape thresholds used by Select.
const (
	deepOceanEdge   = -0.7
	oceanEdge       = -0.45
	beachEdge       = -0.1
	frozenBelow     = 0.15
	peaksInland     = 0.3
	peaksErosion    = -0.5
	peaksRidgeAbove = 0.3
)

// Select picks a biome from the full parameter tuple: oceans and beaches by
// continentalness, peaks for inland eroded ridges, the climate table
// otherwise.
func Select(p noise.Parameters) ID {
	p = p.Clamp()
	cold := p.Temperature < frozenBelow
	switch {
	case p.Continentalness < deepOceanEdge:
		if cold {
			return FrozenOcean
		}
		return DeepOcean
	case p.Continentalness < oceanEdge:
		if cold {
			return FrozenOcean
		}
		return Ocean
	case p.Continentalness < beachEdge:
		if cold {
			return ColdBeach
		}
		return Beach
	case p.Continentalness > peaksInland && p.Erosion < peaksErosion && p.PeaksValleys > peaksRidgeAbove:
		if cold {
			return IceMountains
		}
		return ExtremeHills
	}
	return Classify(p.Temperature, p.Humidity)
}

// Chill lowers temperature by lapse per block above sea level, clamped to
// [0, 1].
func Chill(temperature float64, height, seaLevel int, lapse float64) float64 {
	if height > seaLevel {
		temperature -= lapse * float64(height-seaLevel)
	}
	switch {
	case temperature < 0:
		return 0
	case temperature > 1:
		return 1
	}
	return temperature
}
