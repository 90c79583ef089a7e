package density

// Profile is a density function along y for one column.
type Profile func(y int) float64

// ScanHeight returns the first y, scanning down from maxY, where the profile
// is solid. The floor counts as solid when nothing above it is.
func ScanHeight(profile Profile, minY, maxY int) int {
	for y := maxY; y >= minY; y-- {
		if profile(y) > 0 {
			return y
		}
	}
	return minY
}

// SearchHeight binary-searches the surface within estimate±window. When the
// window does not bracket a solid-to-air transition it falls back to a scan:
// a lower bound in air means the surface is below the window, an upper bound
// in solid means it is above. For profiles with a single transition the
// result equals ScanHeight.
func SearchHeight(profile Profile, estimate, window, minY, maxY int) int {
	lo := max(minY, estimate-window)
	hi := min(maxY, estimate+window)
	if lo >= hi {
		return ScanHeight(profile, minY, maxY)
	}
	if profile(lo) <= 0 {
		return ScanHeight(profile, minY, maxY)
	}
	if profile(hi) > 0 {
		// The topmost solid block is at or above hi.
		return ScanHeight(profile, hi, maxY)
	}

	// Invariant: lo solid, hi air.
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if profile(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
