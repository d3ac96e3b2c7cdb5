// Package polybool provides exact, robust boolean set operations on
// arbitrary 2D polygons: union, intersection, difference and symmetric
// difference over multi-contour polygons with holes, plus derived
// queries (area, centroid, convex hull, point containment) and
// conversion of hole-free interiors into triangle strips.
//
// Polygons live in a mathematical frame (y up); a counterclockwise
// contour is solid, a clockwise one is a hole. Degenerate geometry
// within tolerance is silently normalized: contours with fewer than
// three distinct vertices are treated as empty, zero-width slivers are
// never emitted.
//
// Separate invocations share no state and may run concurrently; a
// single Polygon value, however, must not be mutated while another
// goroutine reads it.
package polybool

import (
	"github.com/earcliff/polybool/clip"
	"github.com/earcliff/polybool/geom"
)

// Re-exported core types, so most callers only import this package.
type Point = geom.Point
type Contour = geom.Contour
type Polygon = geom.Polygon
type Rect = geom.Rect
type Strip = clip.Strip
type Op = clip.Op

const (
	OpUnion               = clip.Union
	OpIntersection        = clip.Intersection
	OpDifference          = clip.Difference
	OpSymmetricDifference = clip.SymmetricDifference
)

// Error kinds, for use with errors.As.
type InvalidInputError = clip.InvalidInputError
type UnsupportedTopologyError = clip.UnsupportedTopologyError
type NumericInconsistencyError = clip.NumericInconsistencyError

// New returns an empty polygon (the empty set).
func New() *Polygon {
	return geom.New()
}

// FromPoints builds a polygon of solid contours, one per point list.
func FromPoints(contours ...[]Point) *Polygon {
	return geom.FromPoints(contours...)
}

// Clip computes the boolean operation op between a and b. The engine
// threads internal failures as panics; they are recovered here and
// returned as errors.
func Clip(op Op, a, b *Polygon) (result *Polygon, err error) {
	defer func() {
		if e := clip.RecoverError(recover()); e != nil {
			result, err = nil, e
		}
	}()
	return clip.Boolean(op, a, b), nil
}

// Union returns the set union of a and b.
func Union(a, b *Polygon) (*Polygon, error) {
	return Clip(OpUnion, a, b)
}

// Intersection returns the set intersection of a and b.
func Intersection(a, b *Polygon) (*Polygon, error) {
	return Clip(OpIntersection, a, b)
}

// Difference returns a minus b.
func Difference(a, b *Polygon) (*Polygon, error) {
	return Clip(OpDifference, a, b)
}

// SymmetricDifference returns the regions covered by exactly one of a
// and b.
func SymmetricDifference(a, b *Polygon) (*Polygon, error) {
	return Clip(OpSymmetricDifference, a, b)
}

// TriStrip decomposes the interior of a hole-free polygon into triangle
// strips. Polygons that still contain holes return an
// UnsupportedTopologyError; clip the holes away first.
func TriStrip(p *Polygon) (strips []Strip, err error) {
	defer func() {
		if e := clip.RecoverError(recover()); e != nil {
			strips, err = nil, e
		}
	}()
	return clip.TriStrip(p), nil
}

// Area is the total enclosed area of p: solids minus holes.
func Area(p *Polygon) float64 {
	return p.Area()
}

// Centroid is the area-weighted center of mass of p.
func Centroid(p *Polygon) Point {
	return p.Centroid()
}

// BoundingBox is the axis-aligned extent of p.
func BoundingBox(p *Polygon) Rect {
	return p.BoundingBox()
}

// ContainsPoint reports whether pt lies inside p under the even-odd
// rule, the same fill rule the clipper uses.
func ContainsPoint(p *Polygon, pt Point) bool {
	return p.Contains(pt)
}

// ConvexHull returns the convex hull of all vertices of p as a polygon
// with one counterclockwise contour.
func ConvexHull(p *Polygon) *Polygon {
	return geom.ConvexHull(p)
}

// Covers reports whether a covers all of b: nothing of b lies outside a.
func Covers(a, b *Polygon) (bool, error) {
	diff, err := Difference(b, a)
	if err != nil {
		return false, err
	}
	return diff.Area() <= geom.Tolerance, nil
}

// Overlaps reports whether a and b share interior area.
func Overlaps(a, b *Polygon) (bool, error) {
	inter, err := Intersection(a, b)
	if err != nil {
		return false, err
	}
	return inter.Area() > geom.Tolerance, nil
}
