// Package spline implements nested ("spline of splines") interpolation: a
// spline over one parameter whose control points carry either a value or a
// spline over the next parameter.
package spline

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoPoints          = errors.New("spline has no control points")
	ErrDuplicateLocation = errors.New("duplicate control point location")
)

// Mode selects how values between two control points are resolved.
type Mode string

const (
	// Linear interpolates v1 + t*(v2-v1); derivatives are ignored.
	Linear Mode = "linear"
	// Hermite blends with a cubic Hermite curve using each point's derivative.
	Hermite Mode = "hermite"
)

// Point is one control point. Nested == nil marks a leaf holding Value;
// otherwise Nested is evaluated with the remaining coordinates.
type Point struct {
	Location   float64
	Derivative float64
	Value      float64
	Nested     *Spline
}

// Leaf returns a terminal control point.
func Leaf(location, value, derivative float64) Point {
	return Point{Location: location, Value: value, Derivative: derivative}
}

// Node returns a control point holding a spline over the next axis.
func Node(location float64, nested *Spline) Point {
	return Point{Location: location, Nested: nested}
}

func (p *Point) value(rest []float64) float64 {
	if p.Nested == nil {
		return p.Value
	}
	return p.Nested.sample(rest)
}

// Spline is an immutable nested interpolator, safe for concurrent reads.
type Spline struct {
	mode   Mode
	points []Point
}

// New sorts points by location and builds a Spline.
func New(mode Mode, points ...Point) (*Spline, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if mode == "" {
		mode = Linear
	}
	if mode != Linear && mode != Hermite {
		return nil, fmt.Errorf("unknown spline mode %q", mode)
	}
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		switch {
		case a.Location < b.Location:
			return -1
		case a.Location > b.Location:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Location == sorted[i-1].Location {
			return nil, fmt.Errorf("%w: %g", ErrDuplicateLocation, sorted[i].Location)
		}
	}
	return &Spline{mode: mode, points: sorted}, nil
}

// Must is New that panics on error; meant for built-in tables.
func Must(mode Mode, points ...Point) *Spline {
	s, err := New(mode, points...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of control points on the primary axis.
func (s *Spline) Len() int {
	return len(s.points)
}

// Sample evaluates the spline. The first coordinate selects along this
// spline's axis; the rest are handed to nested splines. Missing coordinates
// read as 0.
func (s *Spline) Sample(coords ...float64) float64 {
	return s.sample(coords)
}

func (s *Spline) sample(coords []float64) float64 {
	var primary float64
	var rest []float64
	if len(coords) > 0 {
		primary, rest = coords[0], coords[1:]
	}

	pts := s.points
	first, last := &pts[0], &pts[len(pts)-1]
	if primary <= first.Location {
		return first.value(rest)
	}
	if primary >= last.Location {
		return last.value(rest)
	}

	// First point strictly right of primary; always in [1, len-1] here.
	i, _ := slices.BinarySearchFunc(pts, primary, func(p Point, loc float64) int {
		if p.Location <= loc {
			return -1
		}
		return 1
	})
	p1, p2 := &pts[i-1], &pts[i]

	width := p2.Location - p1.Location
	t := (primary - p1.Location) / width
	v1, v2 := p1.value(rest), p2.value(rest)

	if s.mode == Hermite {
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2
		return h00*v1 + h10*width*p1.Derivative + h01*v2 + h11*width*p2.Derivative
	}
	return v1 + t*(v2-v1)
}
