// Package geom holds the contour and polygon types shared by the whole
// module, along with the derived geometric queries: area, centroid,
// bounding box, convex hull and point containment. The boolean clipping
// engine itself lives in the clip package and operates on these types.
//
// The conventions are mathematical: x increases to the right, y increases
// up the page. A contour with positive signed area (counterclockwise) is
// solid; negative signed area (clockwise) marks a hole.
package geom

import "math"

// Tolerance is the coordinate slop below which two values are considered
// equal. Everything downstream of the sweep (vertex stitching, sliver
// suppression, collinearity checks) is calibrated against it. It is a
// variable rather than a constant so callers working in unusually large
// or small coordinate ranges can adjust it before clipping.
var Tolerance = 1e-9

// Equal reports whether a and b coincide within Tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Point is a plain 2D coordinate. Points are value types; identity is
// positional only.
type Point struct {
	X float64
	Y float64
}

// Eq reports whether both coordinates coincide within Tolerance.
func (p Point) Eq(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Below orders points lexicographically by y, then x. Using the x
// coordinate to break ties simulates a slightly rotated frame in which no
// two distinct points share a horizontal, which simplifies sweep
// reasoning considerably.
func (p Point) Below(q Point) bool {
	if Equal(p.Y, q.Y) {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Cross is the z component of (a-o) × (b-o). Positive means o→a→b turns
// counterclockwise.
func Cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// emptyRect sorts every point before it on extension.
func emptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether the rect has never been extended.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX
}

// Extend grows the rect to include p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Union grows the rect to include all of o.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Overlaps reports whether the two rects share any area, within
// Tolerance.
func (r Rect) Overlaps(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX < o.MaxX+Tolerance && o.MinX < r.MaxX+Tolerance &&
		r.MinY < o.MaxY+Tolerance && o.MinY < r.MaxY+Tolerance
}

// Width and Height are zero for an empty rect.

func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}
