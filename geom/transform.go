package geom

import "math"

// Affine transforms applied vertex by vertex. Each one invalidates the
// contour caches, and mirror transforms re-normalize winding so the hole
// convention survives the flip.

// apply maps every vertex through f. If mirrored is true the transform
// reverses orientation, so each contour is reversed afterwards to keep
// its winding consistent with its hole flag.
func (p *Polygon) apply(f func(Point) Point, mirrored bool) {
	for i := range p.Contours {
		c := &p.Contours[i]
		for j, pt := range c.Points {
			c.Points[j] = f(pt)
		}
		c.invalidate()
		if mirrored {
			c.Reverse()
		}
	}
}

// Shift translates the polygon by (dx, dy).
func (p *Polygon) Shift(dx, dy float64) {
	p.apply(func(pt Point) Point {
		return Point{pt.X + dx, pt.Y + dy}
	}, false)
}

// Scale scales the polygon by (sx, sy) about the point (cx, cy).
// Negative factors mirror; a single negative factor flips winding and is
// handled accordingly.
func (p *Polygon) Scale(sx, sy, cx, cy float64) {
	mirrored := (sx < 0) != (sy < 0)
	p.apply(func(pt Point) Point {
		return Point{cx + (pt.X-cx)*sx, cy + (pt.Y-cy)*sy}
	}, mirrored)
}

// Rotate rotates the polygon counterclockwise by angle radians about
// (cx, cy).
func (p *Polygon) Rotate(angle, cx, cy float64) {
	sin, cos := math.Sincos(angle)
	p.apply(func(pt Point) Point {
		x, y := pt.X-cx, pt.Y-cy
		return Point{cx + x*cos - y*sin, cy + x*sin + y*cos}
	}, false)
}

// Flip mirrors the polygon about the vertical line x = axis.
func (p *Polygon) Flip(axis float64) {
	p.apply(func(pt Point) Point {
		return Point{2*axis - pt.X, pt.Y}
	}, true)
}

// Flop mirrors the polygon about the horizontal line y = axis.
func (p *Polygon) Flop(axis float64) {
	p.apply(func(pt Point) Point {
		return Point{pt.X, 2*axis - pt.Y}
	}, true)
}

// WarpToBox maps the polygon's bounding box onto the box [x0,x1]×[y0,y1]
// with an axis-aligned affine transform. A polygon with no extent in
// some direction is left unchanged in that direction. Swapped box edges
// mirror.
func (p *Polygon) WarpToBox(x0, x1, y0, y1 float64) {
	bb := p.BoundingBox()
	if bb.IsEmpty() {
		return
	}
	sx, sy := 1.0, 1.0
	if bb.Width() > 0 {
		sx = (x1 - x0) / bb.Width()
	}
	if bb.Height() > 0 {
		sy = (y1 - y0) / bb.Height()
	}
	mirrored := (sx < 0) != (sy < 0)
	p.apply(func(pt Point) Point {
		return Point{x0 + (pt.X-bb.MinX)*sx, y0 + (pt.Y-bb.MinY)*sy}
	}, mirrored)
}
