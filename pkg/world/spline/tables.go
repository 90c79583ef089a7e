package spline

import "fmt"

// PointSpec is the declarative form of a control point, as read from config.
// A non-empty Spline makes the point a node over the next axis.
type PointSpec struct {
	At     float64     `yaml:"at"`
	Slope  float64     `yaml:"slope,omitempty"`
	Value  float64     `yaml:"value,omitempty"`
	Spline []PointSpec `yaml:"spline,omitempty"`
}

// Build constructs a spline tree from specs.
func Build(mode Mode, specs []PointSpec) (*Spline, error) {
	points := make([]Point, 0, len(specs))
	for _, ps := range specs {
		if len(ps.Spline) == 0 {
			points = append(points, Leaf(ps.At, ps.Value, ps.Slope))
			continue
		}
		nested, err := Build(mode, ps.Spline)
		if err != nil {
			return nil, fmt.Errorf("point at %g: %w", ps.At, err)
		}
		p := Node(ps.At, nested)
		p.Derivative = ps.Slope
		points = append(points, p)
	}
	return New(mode, points...)
}

// Tables holds the control-point tables of the three terrain routers.
type Tables struct {
	// Offset is base elevation in blocks over
	// (continentalness, erosion, peaksValleys).
	Offset []PointSpec `yaml:"offset"`
	// Jaggedness is peak sharpening in blocks over
	// (continentalness, erosion, peaksValleys).
	Jaggedness []PointSpec `yaml:"jaggedness"`
	// Factor is 3D noise strength over (continentalness, erosion, weirdness).
	Factor []PointSpec `yaml:"factor"`
}

// Routers are the three terrain-shaping splines.
type Routers struct {
	Offset     *Spline
	Jaggedness *Spline
	Factor     *Spline
}

// NewRouters builds all three routers, failing on the first bad table.
func NewRouters(t Tables, mode Mode) (*Routers, error) {
	offset, err := Build(mode, t.Offset)
	if err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}
	jag, err := Build(mode, t.Jaggedness)
	if err != nil {
		return nil, fmt.Errorf("jaggedness: %w", err)
	}
	factor, err := Build(mode, t.Factor)
	if err != nil {
		return nil, fmt.Errorf("factor: %w", err)
	}
	return &Routers{Offset: offset, Jaggedness: jag, Factor: factor}, nil
}

// curve is a three-point leaf spline at -1, mid and 1 with slopes that follow
// the neighbouring values.
func curve(mid, lo, center, hi float64) []PointSpec {
	return []PointSpec{
		{At: -1, Value: lo, Slope: (center - lo) / (mid + 1)},
		{At: mid, Value: center, Slope: (hi - lo) / 2},
		{At: 1, Value: hi, Slope: (hi - center) / (1 - mid)},
	}
}

func leaf(at, value float64) PointSpec {
	return PointSpec{At: at, Value: value}
}

func node(at float64, nested []PointSpec) PointSpec {
	return PointSpec{At: at, Spline: nested}
}

// DefaultTables returns the built-in router tables. Sea level is 62.
func DefaultTables() Tables {
	return Tables{
		Offset: []PointSpec{
			leaf(-1, 30),
			leaf(-0.45, 45),
			leaf(-0.2, 60),
			node(-0.1, []PointSpec{
				node(-1, curve(0, 62, 66, 74)),
				node(0, curve(0, 61, 64, 68)),
				node(1, curve(0, 62, 63, 64)),
			}),
			node(0.1, []PointSpec{
				node(-1, curve(0, 64, 80, 110)),
				node(-0.4, curve(0, 64, 74, 92)),
				node(0, curve(0, 64, 70, 80)),
				node(0.4, curve(0, 64, 67, 72)),
				node(1, curve(0, 63, 65, 67)),
			}),
			node(0.4, []PointSpec{
				node(-1, curve(0, 70, 100, 150)),
				node(-0.4, curve(0, 68, 86, 120)),
				node(0, curve(0, 66, 76, 92)),
				node(0.4, curve(0, 65, 70, 78)),
				node(1, curve(0, 64, 66, 69)),
			}),
			node(1, []PointSpec{
				node(-1, curve(0, 75, 115, 170)),
				node(-0.4, curve(0, 72, 95, 135)),
				node(0, curve(0, 68, 80, 100)),
				node(0.4, curve(0, 66, 72, 82)),
				node(1, curve(0, 65, 67, 70)),
			}),
		},
		Jaggedness: []PointSpec{
			leaf(0.1, 0),
			node(0.4, []PointSpec{
				node(-1, curve(0.2, 0, 6, 20)),
				node(-0.5, curve(0.2, 0, 3, 10)),
				leaf(0, 0),
			}),
			node(1, []PointSpec{
				node(-1, curve(0.2, 0, 10, 32)),
				node(-0.5, curve(0.2, 0, 5, 16)),
				leaf(0, 0),
			}),
		},
		Factor: []PointSpec{
			leaf(-1, 0.4),
			node(-0.2, []PointSpec{
				node(-1, curve(0, 0.7, 0.6, 0.7)),
				node(1, curve(0, 0.5, 0.45, 0.5)),
			}),
			node(0.4, []PointSpec{
				node(-1, curve(0, 1.0, 0.8, 1.2)),
				node(0, curve(0, 0.8, 0.65, 0.9)),
				node(1, curve(0, 0.6, 0.5, 0.65)),
			}),
			node(1, []PointSpec{
				node(-1, curve(0, 1.2, 0.9, 1.4)),
				node(0, curve(0, 0.9, 0.7, 1.1)),
				node(1, curve(0, 0.6, 0.5, 0.7)),
			}),
		},
	}
}
