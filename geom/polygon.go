package geom

import "github.com/pkg/errors"

// Polygon is an ordered collection of contours: zero or more solid loops
// and the holes cut out of them. The order of contours carries no set
// semantics; it only fixes enumeration. An empty Polygon is the empty
// set, and all queries on it are well defined (zero area, nothing
// contained).
//
// A Polygon owns its contours by value. It is safe for concurrent reads,
// but callers must serialize any writer against readers of the same
// value.
type Polygon struct {
	Contours []Contour
}

// New returns an empty polygon.
func New() *Polygon {
	return &Polygon{}
}

// FromPoints builds a polygon of solid contours, one per point list.
// Hole contours must be added with AddContour.
func FromPoints(contours ...[]Point) *Polygon {
	p := New()
	for _, pts := range contours {
		p.AddContour(pts, false)
	}
	return p
}

// AddContour appends a contour, copying the points. The winding order is
// normalized to the module convention: counterclockwise for solids,
// clockwise for holes.
func (p *Polygon) AddContour(points []Point, hole bool) {
	c := Contour{Points: make([]Point, len(points)), Hole: hole}
	copy(c.Points, points)
	c.normalize()
	p.Contours = append(p.Contours, c)
}

// RemoveContour deletes the contour at index i.
func (p *Polygon) RemoveContour(i int) error {
	if i < 0 || i >= len(p.Contours) {
		return errors.Errorf("contour index %d out of range [0, %d)", i, len(p.Contours))
	}
	p.Contours = append(p.Contours[:i], p.Contours[i+1:]...)
	return nil
}

// Len is the number of contours.
func (p *Polygon) Len() int {
	return len(p.Contours)
}

// NumPoints is the total vertex count across all contours.
func (p *Polygon) NumPoints() int {
	n := 0
	for i := range p.Contours {
		n += len(p.Contours[i].Points)
	}
	return n
}

// IsEmpty reports whether the polygon represents the empty set.
func (p *Polygon) IsEmpty() bool {
	for i := range p.Contours {
		if !p.Contours[i].IsDegenerate() {
			return false
		}
	}
	return true
}

// Area is the total enclosed area: solid contours count positive, holes
// negative. With normalized winding this is simply the sum of signed
// areas.
func (p *Polygon) Area() float64 {
	var sum float64
	for i := range p.Contours {
		sum += p.Contours[i].SignedArea()
	}
	if sum < 0 {
		return 0
	}
	return sum
}

// BoundingBox is the min/max reduction over every vertex of every
// contour. The box of an empty polygon reports IsEmpty.
func (p *Polygon) BoundingBox() Rect {
	r := emptyRect()
	for i := range p.Contours {
		r = r.Union(p.Contours[i].BoundingBox())
	}
	return r
}

// Centroid is the area-weighted center of mass. Holes subtract from the
// moment exactly as they subtract from the area. A polygon with no area
// has no meaningful centroid; the zero point is returned.
func (p *Polygon) Centroid() Point {
	var cx, cy, area float64
	for i := range p.Contours {
		pts := p.Contours[i].Points
		n := len(pts)
		for j, a := range pts {
			b := pts[(j+1)%n]
			w := a.X*b.Y - b.X*a.Y
			cx += (a.X + b.X) * w
			cy += (a.Y + b.Y) * w
			area += w
		}
	}
	if Equal(area, 0) {
		return Point{}
	}
	return Point{cx / (3 * area), cy / (3 * area)}
}

// Contains reports whether pt is inside the polygon under the even-odd
// rule: crossing parity summed across every contour, so a point inside a
// hole comes out even and therefore outside. This matches the fill rule
// the clipping sweep uses.
func (p *Polygon) Contains(pt Point) bool {
	crossings := 0
	for i := range p.Contours {
		c := &p.Contours[i]
		if !c.BoundingBox().Overlaps(Rect{pt.X, pt.Y, pt.X, pt.Y}) {
			continue
		}
		crossings += c.crossings(pt)
	}
	return crossings%2 == 1
}

// Clone deep-copies the polygon.
func (p *Polygon) Clone() *Polygon {
	out := &Polygon{Contours: make([]Contour, len(p.Contours))}
	for i := range p.Contours {
		out.Contours[i] = p.Contours[i].Clone()
	}
	return out
}

// Simplify drops coincident and collinear vertices from every contour
// and removes contours left degenerate.
func (p *Polygon) Simplify() {
	kept := p.Contours[:0]
	for i := range p.Contours {
		c := p.Contours[i]
		c.Simplify()
		if !c.IsDegenerate() {
			kept = append(kept, c)
		}
	}
	p.Contours = kept
}
