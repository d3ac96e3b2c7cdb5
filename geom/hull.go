package geom

import "sort"

// ConvexHull computes the convex hull of every vertex in the polygon
// using Andrew's monotone chain, O(n log n). The result is a polygon
// with a single counterclockwise solid contour, or an empty polygon if
// the input has fewer than three distinct vertices.
func ConvexHull(p *Polygon) *Polygon {
	pts := make([]Point, 0, p.NumPoints())
	for i := range p.Contours {
		pts = append(pts, p.Contours[i].Points...)
	}
	hull := monotoneChain(pts)
	out := New()
	if len(hull) >= 3 {
		out.AddContour(hull, false)
	}
	return out
}

// monotoneChain returns the counterclockwise hull of pts, without
// repeating the first point. Collinear points on the hull boundary are
// dropped.
func monotoneChain(pts []Point) []Point {
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	// Dedup after sorting; coincident vertices are common in clip output.
	uniq := sorted[:0]
	for i, p := range sorted {
		if i == 0 || !p.Eq(uniq[len(uniq)-1]) {
			uniq = append(uniq, p)
		}
	}
	sorted = uniq
	if len(sorted) < 3 {
		return sorted
	}

	build := func(points []Point) []Point {
		var chain []Point
		for _, p := range points {
			for len(chain) >= 2 && Cross(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
				chain = chain[:len(chain)-1]
			}
			chain = append(chain, p)
		}
		return chain
	}

	lower := build(sorted)
	reversed := make([]Point, len(sorted))
	for i, p := range sorted {
		reversed[len(sorted)-1-i] = p
	}
	upper := build(reversed)

	// Each chain ends where the other begins; drop the duplicated
	// endpoints when joining.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}
