package gen

import (
	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/mathx"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/water"
)

const chunkHeight = config.WorldTop + 1

// Generate fills one chunk column: bedrock, density-carved stone, biome
// surface, lake and sea water, then aquifer fluids in cave air.
func (e *Engine) Generate(chunkX, chunkZ int) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := chunkX*16 + x
			bz := chunkZ*16 + z

			col := e.column(bx, bz)
			c.SetBiome(x, z, byte(col.biome))

			top := e.waterTop(bx, bz, col.height)
			e.fillColumn(c, x, z, bx, bz, &col, top)
			applySurface(c, x, z, col.height, top, col.biome)
		}
	}
	return c
}

// waterTop returns the highest water block over a column of the given
// height, or height itself when the column is dry. Columns below sea level
// fill to the sea; lakes may stand higher.
func (e *Engine) waterTop(x, z, height int) int {
	top := height
	if sea := e.SeaLevel(); height < sea {
		top = sea
	}
	if level, ok := e.grid.Level(x, z, height); ok && level > top {
		top = level
	}
	return top
}

func (e *Engine) fillColumn(c *ChunkData, x, z, bx, bz int, col *column, top int) {
	// Bedrock layers: y=0 always, above randomized per block.
	c.SetBlock(x, 0, z, blockBedrock<<4)
	for y := 1; y <= bedrockLayers; y++ {
		if mathx.Hash2(e.cfg.Seed+int64(y), bx, bz)&1 == 0 {
			c.SetBlock(x, y, z, blockBedrock<<4)
		} else {
			c.SetBlock(x, y, z, blockStone<<4)
		}
	}

	last := max(col.height, top)
	if last >= chunkHeight {
		last = chunkHeight - 1
	}
	for y := bedrockLayers + 1; y <= last; y++ {
		switch {
		case col.solid(y):
			c.SetBlock(x, y, z, blockStone<<4)
		case y <= col.height:
			switch e.aquifer.Fluid(bx, y, bz) {
			case water.FluidWater:
				c.SetBlock(x, y, z, blockWater<<4)
			case water.FluidMagma:
				c.SetBlock(x, y, z, blockLava<<4)
			}
		case y <= top:
			c.SetBlock(x, y, z, blockWater<<4)
		}
	}
}
