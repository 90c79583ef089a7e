package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/alitto/pond/v2"
	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/voxel-terrain/internal/mathx"
	"github.com/OCharnyshevich/voxel-terrain/internal/preview"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
)

// fetchConfig downloads src into a temp file. cleanup removes it.
func fetchConfig(src string) (path string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "terrainctl")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { os.RemoveAll(dir) }

	path = filepath.Join(dir, "terrain.yaml")
	if err := getter.GetFile(path, src); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// sampleRegion fills every region column from eng, one row per task.
func sampleRegion(eng *gen.Engine, r *preview.Region, workers int) {
	pool := pond.NewPool(max(workers, 1))
	defer pool.StopAndWait()

	var wg sync.WaitGroup
	for j := 0; j < r.Header.Depth; j++ {
		j := j
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			for i := 0; i < r.Header.Width; i++ {
				x, z := r.World(i, j)
				c := preview.Column{
					Height: int16(eng.HeightAt(x, z)),
					Water:  -1,
					Biome:  uint8(eng.BiomeAt(x, z)),
				}
				if level, ok := eng.WaterLevel(x, z); ok {
					c.Water = int16(level)
				}
				r.Set(i, j, c)
			}
		})
	}
	wg.Wait()
}

// chunkCounts totals the blocks of every chunk a region covers.
type chunkCounts struct {
	gen.Census
	Chunks int
}

// regionChunks lists every chunk holding at least one block of r.
func regionChunks(r *preview.Region) []gen.ChunkPos {
	h := r.Header
	x1, z1 := r.World(h.Width-1, h.Depth-1)
	cx0, cz0 := mathx.FloorDiv(h.X, 16), mathx.FloorDiv(h.Z, 16)
	cx1, cz1 := mathx.FloorDiv(x1, 16), mathx.FloorDiv(z1, 16)

	var out []gen.ChunkPos
	for cx := cx0; cx <= cx1; cx++ {
		for cz := cz0; cz <= cz1; cz++ {
			out = append(out, gen.ChunkPos{X: cx, Z: cz})
		}
	}
	return out
}

func countBlocks(eng *gen.Engine, r *preview.Region, workers int) chunkCounts {
	pool := pond.NewPool(max(workers, 1))
	defer pool.StopAndWait()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total chunkCounts
	)
	for _, pos := range regionChunks(r) {
		pos := pos
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			n := eng.Generate(pos.X, pos.Z).Census()
			mu.Lock()
			total.Add(n)
			total.Chunks++
			mu.Unlock()
		})
	}
	wg.Wait()
	return total
}
