package biome

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/noise"
)

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name      string
		temp, hum float64
		want      ID
	}{
		{"temperate mid", 0.5, 0.5, Plains},
		{"frozen dry", 0.0, 0.0, IcePlains},
		{"cold wet", 0.1, 0.9, ColdTaiga},
		{"hot dry", 0.95, 0.05, Desert},
		{"hot wet", 0.99, 0.99, Jungle},
		{"hot semi-dry", 0.9, 0.4, Mesa},
		{"warm wet", 0.55, 0.95, Swampland},
		{"below range clamps", -3, -3, IcePlains},
		{"above range clamps", 7, 7, Jungle},
		{"exactly one", 1, 1, Jungle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.temp, tt.hum); got != tt.want {
				t.Errorf("Classify(%g, %g) = %v, want %v", tt.temp, tt.hum, got, tt.want)
			}
		})
	}
}

func TestClassifyPlainsWithRouter(t *testing.T) {
	if got := Classify(0.5, 0.5); !got.PlainsFamily() {
		t.Fatalf("Classify(0.5, 0.5) = %v, want plains family", got)
	}
	r := noise.NewRouter(42, noise.DefaultRouterConfig())
	temp, hum := r.Climate(1000, 1000)
	if temp < 0 || temp > 1 || hum < 0 || hum > 1 {
		t.Fatalf("Climate(1000, 1000) = (%f, %f), out of [0,1]", temp, hum)
	}
	a, b := Classify(temp, hum), Classify(temp, hum)
	if a != b {
		t.Errorf("Classify not deterministic: %v vs %v", a, b)
	}
	if _, ok := names[a]; !ok {
		t.Errorf("Classify returned unnamed biome %d", a)
	}
}

func TestTableHasOnlyNamedBiomes(t *testing.T) {
	for ti, row := range table {
		for hi, id := range row {
			if _, ok := names[id]; !ok {
				t.Errorf("table[%d][%d] = %d has no name", ti, hi, id)
			}
		}
	}
}

func TestIDString(t *testing.T) {
	if got := Plains.String(); got != "plains" {
		t.Errorf("Plains.String() = %q", got)
	}
	if got := ID(200).String(); got != "biome(200)" {
		t.Errorf("ID(200).String() = %q", got)
	}
}

func TestSelect(t *testing.T) {
	temperate := noise.Parameters{Temperature: 0.5, Humidity: 0.5}
	with := func(c, e, pv, temp float64) noise.Parameters {
		p := temperate
		p.Continentalness, p.Erosion, p.PeaksValleys, p.Temperature = c, e, pv, temp
		return p
	}
	tests := []struct {
		name string
		p    noise.Parameters
		want ID
	}{
		{"deep ocean", with(-0.9, 0, 0, 0.5), DeepOcean},
		{"ocean", with(-0.5, 0, 0, 0.5), Ocean},
		{"frozen ocean", with(-0.5, 0, 0, 0.05), FrozenOcean},
		{"beach", with(-0.2, 0, 0, 0.5), Beach},
		{"cold beach", with(-0.2, 0, 0, 0.05), ColdBeach},
		{"peaks", with(0.6, -0.8, 0.7, 0.5), ExtremeHills},
		{"ice peaks", with(0.6, -0.8, 0.7, 0.05), IceMountains},
		{"inland climate", with(0.2, 0, 0, 0.5), Plains},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.p); got != tt.want {
				t.Errorf("Select(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestAquatic(t *testing.T) {
	for _, id := range []ID{Ocean, DeepOcean, FrozenOcean} {
		if !id.Aquatic() {
			t.Errorf("%v should be aquatic", id)
		}
	}
	for _, id := range []ID{Beach, Plains, Swampland} {
		if id.Aquatic() {
			t.Errorf("%v should not be aquatic", id)
		}
	}
}

func TestChill(t *testing.T) {
	tests := []struct {
		temp          float64
		height, level int
		want          float64
	}{
		{0.5, 62, 62, 0.5},
		{0.5, 40, 62, 0.5},
		{0.5, 162, 62, 0.1},
		{0.2, 255, 62, 0},
		{1.5, 0, 62, 1},
	}
	for _, tt := range tests {
		got := Chill(tt.temp, tt.height, tt.level, 0.004)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Chill(%g, %d, %d) = %g, want %g", tt.temp, tt.height, tt.level, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	a := normalize(map[ID]float64{Plains: 9, Forest: 0.8, Desert: 0.2}, 0.05)
	if a.ID != Plains {
		t.Errorf("dominant = %v, want plains", a.ID)
	}
	if _, ok := a.Weights[Desert]; ok {
		t.Errorf("desert share 0.02 should be pruned, got %v", a.Weights)
	}
	if math.Abs(a.Sum()-1) > 1e-9 {
		t.Errorf("Sum() = %f, want 1", a.Sum())
	}
	if want := 9 / 9.8; math.Abs(a.Weight(Plains)-want) > 1e-9 {
		t.Errorf("Weight(plains) = %f, want %f", a.Weight(Plains), want)
	}

	lone := normalize(map[ID]float64{Mesa: 3}, 0.5)
	if lone.ID != Mesa || lone.Weight(Mesa) != 1 {
		t.Errorf("single entry = %+v, want mesa at 1", lone)
	}
}

func stripes(x, _ float64) (float64, float64) {
	switch {
	case x < -16:
		return 0.95, 0.05
	case x < 16:
		return 0.5, 0.5
	default:
		return 0.3, 0.9
	}
}

func TestBlendWeights(t *testing.T) {
	cfg := DefaultBlendConfig()
	b := NewBlender(cfg, 62, stripes)
	for x := -64; x <= 64; x += 4 {
		a := b.Blend(x, 0, 70)
		if math.Abs(a.Sum()-1) > 1e-9 {
			t.Fatalf("Blend(%d).Sum() = %f, want 1", x, a.Sum())
		}
		if _, ok := a.Weights[a.ID]; !ok {
			t.Fatalf("Blend(%d) dominant %v missing from weights", x, a.ID)
		}
		if len(a.Weights) == 1 {
			continue
		}
		for id, w := range a.Weights {
			if w < cfg.MinWeight {
				t.Errorf("Blend(%d) weight %v = %f below minimum %f", x, id, w, cfg.MinWeight)
			}
		}
	}
}

func TestBlendBoundaryMixes(t *testing.T) {
	b := NewBlender(DefaultBlendConfig(), 62, stripes)
	a := b.Blend(16, 0, 62)
	if len(a.Weights) < 2 {
		t.Errorf("Blend at stripe boundary = %v, want at least two biomes", a.Weights)
	}
	far := b.Blend(200, 0, 62)
	if len(far.Weights) != 1 || far.Weight(Taiga) != 1 {
		t.Errorf("Blend far inside stripe = %v, want taiga only", far.Weights)
	}
}

func TestAltitudeBiomeCools(t *testing.T) {
	warm := func(float64, float64) (float64, float64) { return 0.5, 0.5 }
	b := NewBlender(DefaultBlendConfig(), 62, warm)
	if got := b.AltitudeBiome(0, 0, 62); got != Plains {
		t.Errorf("AltitudeBiome at sea level = %v, want plains", got)
	}
	if got := b.AltitudeBiome(0, 0, 200); got != ColdTaiga {
		t.Errorf("AltitudeBiome at 200 = %v, want cold_taiga", got)
	}
}

func TestBlendConfigValidate(t *testing.T) {
	if err := DefaultBlendConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultBlendConfig()
	bad.Spacing = 0
	if bad.Validate() == nil {
		t.Error("zero spacing accepted")
	}
	bad = DefaultBlendConfig()
	bad.MinWeight = 1
	if bad.Validate() == nil {
		t.Error("min_weight 1 accepted")
	}
}

func hashDecider(x, z float64) ID {
	ids := []ID{Plains, Forest, Desert, Taiga, Savanna}
	i := int(math.Abs(math.Floor(x)*31+math.Floor(z)*17)) % len(ids)
	return ids[i]
}

func TestVoronoiSameCellSameBiome(t *testing.T) {
	v := NewVoronoi(42, DefaultVoronoiConfig(), hashDecider)
	byCell := make(map[CellKey]ID)
	for x := -300; x < 300; x += 7 {
		for z := -300; z < 300; z += 11 {
			k := v.CellAt(float64(x)+0.5, float64(z)+0.5)
			id := v.BiomeAt(x, z)
			if prev, ok := byCell[k]; ok && prev != id {
				t.Fatalf("cell %v has biomes %v and %v", k, prev, id)
			}
			byCell[k] = id
		}
	}
	if v.Len() != len(byCell) {
		t.Errorf("Len() = %d, want %d cached cells", v.Len(), len(byCell))
	}
}

func TestVoronoiStable(t *testing.T) {
	a := NewVoronoi(7, DefaultVoronoiConfig(), hashDecider)
	b := NewVoronoi(7, DefaultVoronoiConfig(), hashDecider)
	for i := 0; i < 200; i++ {
		x, z := i*13-1000, i*-29+500
		if a.BiomeAt(x, z) != b.BiomeAt(x, z) {
			t.Fatalf("BiomeAt(%d, %d) differs between instances", x, z)
		}
	}
}

func TestVoronoiDistortionBounded(t *testing.T) {
	cfg := DefaultVoronoiConfig()
	v := NewVoronoi(3, cfg, hashDecider)
	for i := 0; i < 500; i++ {
		x, z := float64(i*17), float64(i*-23)
		dx, dz := v.Distort(x, z)
		if math.Abs(dx-x) > cfg.DistortionStrength || math.Abs(dz-z) > cfg.DistortionStrength {
			t.Fatalf("Distort(%g, %g) = (%g, %g), moved beyond %g", x, z, dx, dz, cfg.DistortionStrength)
		}
	}
}

func TestVoronoiSeedInsideCell(t *testing.T) {
	cfg := DefaultVoronoiConfig()
	v := NewVoronoi(11, cfg, hashDecider)
	size := float64(cfg.CellSize)
	for cx := -5; cx <= 5; cx++ {
		for cz := -5; cz <= 5; cz++ {
			s := v.Seed(CellKey{cx, cz})
			if s.X() < float64(cx)*size || s.X() > float64(cx+1)*size ||
				s.Y() < float64(cz)*size || s.Y() > float64(cz+1)*size {
				t.Fatalf("seed of cell (%d, %d) at %v lies outside it", cx, cz, s)
			}
		}
	}
}

func TestVoronoiCellAtNearestSeed(t *testing.T) {
	for _, jitter := range []float64{0.4, 0.8, 1} {
		cfg := DefaultVoronoiConfig()
		cfg.Jitter = jitter
		cfg.DistortionStrength = 0
		v := NewVoronoi(19, cfg, hashDecider)
		size := float64(cfg.CellSize)

		for x := -400.0; x < 400; x += 9.5 {
			for z := -400.0; z < 400; z += 13.5 {
				gx, gz := int(math.Floor(x/size)), int(math.Floor(z/size))
				p := mgl64.Vec2{x, z}
				want, wantDist := CellKey{}, math.Inf(1)
				for dz := -3; dz <= 3; dz++ {
					for dx := -3; dx <= 3; dx++ {
						k := CellKey{gx + dx, gz + dz}
						d := v.Seed(k).Sub(p)
						if dist := d.Dot(d); dist < wantDist {
							want, wantDist = k, dist
						}
					}
				}
				got := v.CellAt(x, z)
				d := v.Seed(got).Sub(p)
				if d.Dot(d) != wantDist {
					t.Fatalf("jitter %g: CellAt(%g, %g) = %v, want nearest %v", jitter, x, z, got, want)
				}
			}
		}
	}
}

func TestVoronoiCacheAndClear(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	decide := func(x, z float64) ID {
		mu.Lock()
		calls++
		mu.Unlock()
		return Plains
	}
	v := NewVoronoi(1, DefaultVoronoiConfig(), decide)
	k := CellKey{2, -3}
	v.CellBiome(k)
	v.CellBiome(k)
	if calls != 1 {
		t.Errorf("decider called %d times, want 1", calls)
	}
	v.Clear()
	if v.Len() != 0 {
		t.Errorf("Len() after Clear = %d", v.Len())
	}
	v.CellBiome(k)
	if calls != 2 {
		t.Errorf("decider called %d times after Clear, want 2", calls)
	}
}

func TestVoronoiConcurrent(t *testing.T) {
	v := NewVoronoi(5, DefaultVoronoiConfig(), hashDecider)
	want := make([]ID, 100)
	for i := range want {
		want[i] = NewVoronoi(5, DefaultVoronoiConfig(), hashDecider).BiomeAt(i*41, i*-37)
	}
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range want {
				if got := v.BiomeAt(i*41, i*-37); got != want[i] {
					t.Errorf("BiomeAt(%d, %d) = %v, want %v", i*41, i*-37, got, want[i])
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRegistryPassThrough(t *testing.T) {
	reg := DefaultRegistry(42, DefaultModifierConfig())
	if reg.Has(Plains) {
		t.Fatal("plains should have no modifier")
	}
	if got := reg.Apply(Plains, 10, 10, 73.5); got != 73.5 {
		t.Errorf("Apply(plains) = %g, want 73.5", got)
	}
	for _, id := range []ID{ExtremeHills, IceMountains, Desert, Mesa} {
		if !reg.Has(id) {
			t.Errorf("%v should have a modifier", id)
		}
	}
}

func TestRegistryCopiesEntries(t *testing.T) {
	entries := map[ID]Modifier{
		Forest: ModifierFunc(func(_, _ int, h float64) float64 { return h + 1 }),
	}
	reg := NewRegistry(entries)
	delete(entries, Forest)
	if got := reg.Apply(Forest, 0, 0, 10); got != 11 {
		t.Errorf("Apply(forest) = %g, want 11", got)
	}
}

func TestPeaksBounds(t *testing.T) {
	cfg := DefaultModifierConfig().Peaks
	cfg.OutcropAmplitude = 0
	p := NewPeaks(42, cfg)
	if got := p.Modify(5, 5, cfg.Threshold-1); got != cfg.Threshold-1 {
		t.Errorf("below threshold: got %g, want unchanged", got)
	}
	raised := false
	for i := 0; i < 2000; i++ {
		x, z := i*3, i*-5
		h := 130.0
		got := p.Modify(x, z, h)
		lo := h - cfg.OutcropAmplitude
		hi := h + cfg.MaxSpire + cfg.OutcropAmplitude
		if got < lo || got > hi {
			t.Fatalf("Modify(%d, %d, %g) = %g, want in [%g, %g]", x, z, h, got, lo, hi)
		}
		if got > h {
			raised = true
		}
	}
	if !raised {
		t.Error("no spire rose in 2000 columns")
	}
}

func TestDunesBounds(t *testing.T) {
	cfg := DefaultModifierConfig().Dunes
	d := NewDunes(42, cfg)
	for i := 0; i < 1000; i++ {
		got := d.Modify(i*7, i*3, 64)
		if got < 64 || got > 64+cfg.Amplitude {
			t.Fatalf("Modify = %g, want in [64, %g]", got, 64+cfg.Amplitude)
		}
	}
}

func TestTerracesMonotone(t *testing.T) {
	cfg := DefaultModifierConfig().Terraces
	tr := NewTerraces(cfg)
	prev := math.Inf(-1)
	for h := 0.0; h < 200; h += 0.05 {
		got := tr.Modify(0, 0, h)
		if got < prev-1e-9 {
			t.Fatalf("Modify(%g) = %g < previous %g", h, got, prev)
		}
		base := math.Floor(h/cfg.Step) * cfg.Step
		if got < base-1e-9 || got > base+cfg.Step+1e-9 {
			t.Fatalf("Modify(%g) = %g outside step [%g, %g]", h, got, base, base+cfg.Step)
		}
		prev = got
	}
	if got := tr.Modify(0, 0, 65); got != 64 {
		t.Errorf("Modify(65) = %g, want shelf at 64", got)
	}
}

func TestModifierConfigValidate(t *testing.T) {
	if err := DefaultModifierConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultModifierConfig()
	bad.Terraces.Riser = 0
	if bad.Validate() == nil {
		t.Error("zero riser accepted")
	}
	bad = DefaultModifierConfig()
	bad.Peaks.Gate = 1
	if bad.Validate() == nil {
		t.Error("gate 1 accepted")
	}
}
