package gen

// Block IDs matching the Minecraft 1.8 protocol. States are id<<4 | meta.
const (
	blockAir          = 0
	blockStone        = 1
	blockGrass        = 2
	blockDirt         = 3
	blockBedrock      = 7
	blockWater        = 9  // stationary water
	blockLava         = 11 // stationary lava
	blockSand         = 12
	blockGravel       = 13
	blockSandstone    = 24
	blockSnowLayer    = 78
	blockIce          = 79
	blockHardenedClay = 172
)

// bedrockLayers is the height of the randomized bedrock floor.
const bedrockLayers = 3
