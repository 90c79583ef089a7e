package water

import "math"

// Basin is the result of a rim scan. OK is false for an open valley.
type Basin struct {
	Center int
	Rim    int
	Depth  int // Rim - Center
	// SpillX and SpillZ locate the rim sample water would spill over.
	SpillX, SpillZ int
	OK             bool
}

// FindRim samples a ring of radius blocks around (x, z) and returns the
// lowest sample strictly higher than the center. No such sample means no
// basin.
func FindRim(heightAt func(x, z int) int, x, z, radius, samples int) Basin {
	center := heightAt(x, z)
	b := Basin{Center: center}
	for i := 0; i < samples; i++ {
		a := 2 * math.Pi * float64(i) / float64(samples)
		px := x + int(math.Round(float64(radius)*math.Cos(a)))
		pz := z + int(math.Round(float64(radius)*math.Sin(a)))
		h := heightAt(px, pz)
		if h <= center {
			continue
		}
		if !b.OK || h < b.Rim {
			b.Rim, b.SpillX, b.SpillZ, b.OK = h, px, pz, true
		}
	}
	if b.OK {
		b.Depth = b.Rim - center
	}
	return b
}
