package clip

import (
	"sort"

	"github.com/earcliff/polybool/geom"
)

// Strip is a sequence of vertices to be read as a triangle strip:
// vertices i, i+1, i+2 form a triangle for every i, with alternating
// winding.
type Strip []geom.Point

// TriStrip decomposes the interior of a hole-free polygon into triangle
// strips. It runs the same scanline sweep as Boolean in fill mode, so
// coverage is decided by the polygon alone, then links vertically
// adjacent trapezoids that overlap in x into strips.
//
// Input with hole contours panics with UnsupportedTopologyError: the
// engine does not bridge holes, callers must clip them away first.
func TriStrip(p *geom.Polygon) []Strip {
	if p == nil {
		throw(&InvalidInputError{Reason: "nil polygon"})
	}
	for i := range p.Contours {
		if p.Contours[i].Hole {
			throw(&UnsupportedTopologyError{Reason: "polygon contains holes"})
		}
	}

	traps := sweepTraps(opFill, p, nil)
	return linkStrips(traps)
}

// openStrip is a strip still being grown: its top edge is the interval
// [topL, topR] at scanline topY, waiting for an overlapping trapezoid in
// the next beam.
type openStrip struct {
	verts      Strip
	topL, topR float64
	topY       float64
	beam       int // last beam that extended the strip
}

// linkStrips greedily chains trapezoids upward. A trapezoid extends the
// first open strip whose top scanline matches its bottom and whose top
// interval overlaps its bottom interval by at least the tolerance;
// anything narrower restarts a strip. A mismatched seam inserts the
// trapezoid's bottom corners first, adding two degenerate triangles
// that keep the strip connected without changing its area.
func linkStrips(traps []trapezoid) []Strip {
	sort.SliceStable(traps, func(i, j int) bool {
		if traps[i].beam != traps[j].beam {
			return traps[i].beam < traps[j].beam
		}
		return traps[i].lx0 < traps[j].lx0
	})

	var open []*openStrip
	var done []Strip

	flushBelow := func(y float64) {
		kept := open[:0]
		for _, s := range open {
			if s.topY < y-geom.Tolerance {
				done = append(done, s.verts)
			} else {
				kept = append(kept, s)
			}
		}
		open = kept
	}

	for _, t := range traps {
		// Strips whose top never reached this trapezoid's bottom can no
		// longer grow; traps arrive in ascending beam order.
		flushBelow(t.y0)

		var strip *openStrip
		for _, s := range open {
			if s.beam == t.beam || !geom.Equal(s.topY, t.y0) {
				continue
			}
			overlap := minf(s.topR, t.rx0) - maxf(s.topL, t.lx0)
			if overlap >= geom.Tolerance {
				strip = s
				break
			}
		}
		if strip == nil {
			strip = &openStrip{
				verts: Strip{
					{X: t.lx0, Y: t.y0},
					{X: t.rx0, Y: t.y0},
				},
			}
			open = append(open, strip)
		} else if !geom.Equal(strip.topL, t.lx0) || !geom.Equal(strip.topR, t.rx0) {
			strip.verts = append(strip.verts,
				geom.Point{X: t.lx0, Y: t.y0},
				geom.Point{X: t.rx0, Y: t.y0},
			)
		}
		strip.verts = append(strip.verts,
			geom.Point{X: t.lx1, Y: t.y1},
			geom.Point{X: t.rx1, Y: t.y1},
		)
		strip.topL, strip.topR, strip.topY = t.lx1, t.rx1, t.y1
		strip.beam = t.beam
	}
	for _, s := range open {
		done = append(done, s.verts)
	}
	return done
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
