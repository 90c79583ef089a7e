package gen

import "github.com/OCharnyshevich/voxel-terrain/pkg/world/biome"

// treeLine is the height above which mountain biomes show bare stone.
const treeLine = 100

// applySurface replaces the top stone of a column with biome-specific
// surface blocks. Cave air and fluids are left alone. top is the water
// surface, equal to height for dry columns.
func applySurface(c *ChunkData, x, z, height, top int, id biome.ID) {
	if height <= bedrockLayers || height >= chunkHeight {
		return
	}
	submerged := top > height

	switch id {
	case biome.Desert, biome.Beach, biome.ColdBeach:
		// Sand on top, sandstone below.
		layer(c, x, z, height, 4, blockSand<<4)
		layer(c, x, z, height-4, 2, blockSandstone<<4)

	case biome.Ocean, biome.DeepOcean, biome.FrozenOcean:
		// Gravel on the ocean floor.
		layer(c, x, z, height, 3, blockGravel<<4)
		layer(c, x, z, height-3, 2, blockDirt<<4)

	case biome.Mesa:
		layer(c, x, z, height, 6, blockHardenedClay<<4)

	case biome.ExtremeHills, biome.IceMountains:
		if height <= treeLine {
			applyDefaultSurface(c, x, z, height, submerged)
		}

	default:
		applyDefaultSurface(c, x, z, height, submerged)
	}

	if frozen(id) {
		if submerged {
			if top < chunkHeight {
				c.replace(x, top, z, blockWater<<4, blockIce<<4)
			}
		} else if height+1 < chunkHeight {
			c.replace(x, height+1, z, blockAir, blockSnowLayer<<4)
		}
	}
}

// applyDefaultSurface places grass on top with dirt below. Submerged
// columns get dirt instead of grass.
func applyDefaultSurface(c *ChunkData, x, z, height int, submerged bool) {
	if submerged {
		layer(c, x, z, height, 1, blockDirt<<4)
	} else {
		layer(c, x, z, height, 1, blockGrass<<4)
	}
	layer(c, x, z, height-1, 3, blockDirt<<4)
}

// layer replaces up to depth stone blocks downward from y, stopping at the
// bedrock floor.
func layer(c *ChunkData, x, z, y, depth int, state uint16) {
	for i := 0; i < depth && y-i > bedrockLayers; i++ {
		c.replace(x, y-i, z, blockStone<<4, state)
	}
}

func frozen(id biome.ID) bool {
	switch id {
	case biome.IcePlains, biome.IceMountains, biome.ColdTaiga, biome.FrozenOcean, biome.ColdBeach:
		return true
	}
	return false
}
