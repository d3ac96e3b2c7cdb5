package geom

// Contour is one closed loop of vertices. The loop is implicit: the last
// vertex connects back to the first. Signed area and bounding box are
// cached because transforms and clipping query them repeatedly; any
// mutation of Points must go through invalidate.
type Contour struct {
	Points []Point

	// Hole marks the contour as a cavity rather than solid material. The
	// assembler sets it from winding and nesting; AddContour sets it from
	// the caller's declaration and normalizes orientation to match.
	Hole bool

	area      float64
	areaValid bool
	bbox      Rect
	bboxValid bool
}

// invalidate drops the cached area and bounding box. Every mutating
// method calls it.
func (c *Contour) invalidate() {
	c.areaValid = false
	c.bboxValid = false
}

// SignedArea computes the shoelace sum of the contour. Positive means
// counterclockwise winding. The value is cached.
func (c *Contour) SignedArea() float64 {
	if c.areaValid {
		return c.area
	}
	var sum float64
	n := len(c.Points)
	for i, p := range c.Points {
		q := c.Points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	c.area = sum / 2
	c.areaValid = true
	return c.area
}

// Area is the absolute enclosed area, regardless of winding.
func (c *Contour) Area() float64 {
	a := c.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// BoundingBox is the min/max reduction over the vertices, cached.
func (c *Contour) BoundingBox() Rect {
	if c.bboxValid {
		return c.bbox
	}
	r := emptyRect()
	for _, p := range c.Points {
		r = r.Extend(p)
	}
	c.bbox = r
	c.bboxValid = true
	return c.bbox
}

// Contains reports whether p is inside the loop by crossing parity. A
// point exactly on the boundary may land on either side; the half-open
// edge rule at least keeps the answer consistent between adjacent
// contours sharing that boundary.
func (c *Contour) Contains(p Point) bool {
	return c.crossings(p)%2 == 1
}

// crossings counts edges crossed by a leftward horizontal ray from p.
func (c *Contour) crossings(p Point) int {
	count := 0
	n := len(c.Points)
	for i, a := range c.Points {
		b := c.Points[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if x < p.X {
				count++
			}
		}
	}
	return count
}

// Reverse flips the traversal order in place, negating the signed area.
func (c *Contour) Reverse() {
	for i, j := 0, len(c.Points)-1; i < j; i, j = i+1, j-1 {
		c.Points[i], c.Points[j] = c.Points[j], c.Points[i]
	}
	if c.areaValid {
		c.area = -c.area
	}
}

// normalize makes the winding direction agree with the hole flag:
// counterclockwise for solids, clockwise for holes. Degenerate contours
// with no area are left alone.
func (c *Contour) normalize() {
	a := c.SignedArea()
	if a == 0 {
		return
	}
	if (a < 0) != c.Hole {
		c.Reverse()
	}
}

// Simplify drops coincident neighbors and collinear interior vertices.
// Clipping output tends to carry runs of collinear vertices at every
// scanline the sweep visited; this removes them without changing the
// region.
func (c *Contour) Simplify() {
	if len(c.Points) < 3 {
		return
	}
	pts := c.Points[:0]
	for _, p := range c.Points {
		if len(pts) > 0 && p.Eq(pts[len(pts)-1]) {
			continue
		}
		pts = append(pts, p)
	}
	// Closing vertex may duplicate the first.
	for len(pts) > 1 && pts[len(pts)-1].Eq(pts[0]) {
		pts = pts[:len(pts)-1]
	}
	// Repeatedly drop vertices where the turn degenerates to a straight
	// line or a spike.
	for {
		n := len(pts)
		if n < 3 {
			break
		}
		removed := false
		out := pts[:0:0]
		for i := 0; i < len(pts); i++ {
			prev := pts[circularIndex(i-1, len(pts))]
			cur := pts[i]
			next := pts[circularIndex(i+1, len(pts))]
			if collinear(prev, cur, next) {
				removed = true
				continue
			}
			out = append(out, cur)
		}
		pts = out
		if !removed {
			break
		}
	}
	c.Points = pts
	c.invalidate()
}

// collinear reports whether b sits on the line through a and c, scaled
// against the span of the triangle so long skinny edges don't trip the
// tolerance.
func collinear(a, b, c Point) bool {
	cross := Cross(a, b, c)
	span := (abs(c.X-a.X) + abs(c.Y-a.Y) + abs(b.X-a.X) + abs(b.Y-a.Y))
	if span < 1 {
		span = 1
	}
	return abs(cross) < Tolerance*span
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// circularIndex wraps i into [0, n), treating the slice as a ring.
func circularIndex(i, n int) int {
	return (i%n + n) % n
}

// IsDegenerate reports whether the contour has fewer than three distinct
// vertices and therefore encloses nothing. Clipping treats such contours
// as empty.
func (c *Contour) IsDegenerate() bool {
	distinct := 0
	var last Point
	for i, p := range c.Points {
		if i == 0 || !p.Eq(last) {
			distinct++
			last = p
		}
		if distinct >= 3 {
			return false
		}
	}
	return true
}

// Clone deep-copies the contour, caches included.
func (c *Contour) Clone() Contour {
	out := *c
	out.Points = make([]Point, len(c.Points))
	copy(out.Points, c.Points)
	return out
}
