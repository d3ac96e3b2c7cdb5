package clip

import (
	"math"
	"sort"

	"github.com/earcliff/polybool/geom"
)

// trapezoid is one inside span of one scanbeam: the region between a
// left and a right boundary edge, between two consecutive scanlines.
// The four x values are the side intercepts at the bottom and top
// scanline. Trapezoids are all the sweep emits; the assembler turns
// their boundaries into contours and the tristrip generator links them
// into strips.
type trapezoid struct {
	y0, y1   float64
	lx0, lx1 float64 // left side x at y0 and y1
	rx0, rx1 float64 // right side x at y0 and y1
	beam     int     // sub-slab ordinal, increasing with y
}

// sweeper carries the per-invocation sweep state. Nothing here is
// shared between invocations; concurrent clips each own their sweeper.
type sweeper struct {
	op     Op
	table  *edgeTable
	active []*edge
	traps  []trapezoid
	beam   int
}

// sweepTraps runs the scanline over both operands and returns the
// inside trapezoids for op. For opFill, b is ignored.
func sweepTraps(op Op, a, b *geom.Polygon) []trapezoid {
	s := &sweeper{op: op, table: buildEdgeTable(a, b)}
	s.run()
	return s.traps
}

func (s *sweeper) run() {
	events := s.table.events
	for i := 0; i+1 < len(events); i++ {
		y0, y1 := events[i], events[i+1]
		s.retire(y0)
		s.active = append(s.active, s.table.starts[i]...)
		if len(s.active) == 0 || y1-y0 <= geom.Tolerance {
			continue
		}
		// Edges may cross inside the beam; cut it into sub-slabs of
		// constant left-to-right order so the parity walk stays valid.
		// The cuts are interior to the beam: the global event set never
		// grows.
		cuts := s.crossings(y0, y1)
		lo := y0
		for _, cut := range cuts {
			s.classify(lo, cut)
			lo = cut
		}
		s.classify(lo, y1)
	}
}

// retire drops edges whose upper endpoint has been reached.
func (s *sweeper) retire(y float64) {
	kept := s.active[:0]
	for _, e := range s.active {
		if e.top.Y > y+geom.Tolerance {
			kept = append(kept, e)
		}
	}
	s.active = kept
}

// crossings returns the interior y values at which two active edges
// swap x order within the beam, ascending and deduplicated.
func (s *sweeper) crossings(y0, y1 float64) []float64 {
	var cuts []float64
	for i := 0; i < len(s.active); i++ {
		for j := i + 1; j < len(s.active); j++ {
			ei, ej := s.active[i], s.active[j]
			d0 := ei.xAt(y0) - ej.xAt(y0)
			d1 := ei.xAt(y1) - ej.xAt(y1)
			if d0*d1 >= 0 || math.Abs(d0) <= geom.Tolerance || math.Abs(d1) <= geom.Tolerance {
				continue
			}
			yc := y0 + (y1-y0)*d0/(d0-d1)
			if yc > y0+geom.Tolerance && yc < y1-geom.Tolerance {
				cuts = append(cuts, yc)
			}
		}
	}
	sort.Float64s(cuts)
	uniq := cuts[:0]
	for _, y := range cuts {
		if len(uniq) == 0 || y-uniq[len(uniq)-1] > geom.Tolerance {
			uniq = append(uniq, y)
		}
	}
	return uniq
}

// classify walks the active edges left to right across the sub-slab
// [y0, y1], toggling the per-operand inside flags at each edge and
// emitting a trapezoid for every maximal interval the operator accepts.
func (s *sweeper) classify(y0, y1 float64) {
	if y1-y0 <= geom.Tolerance {
		return
	}
	mid := (y0 + y1) / 2
	order := make([]*edge, len(s.active))
	copy(order, s.active)
	sort.SliceStable(order, func(i, j int) bool {
		xi, xj := order[i].xAt(mid), order[j].xAt(mid)
		if !geom.Equal(xi, xj) {
			return xi < xj
		}
		// Coincident intercepts: steeper edge first keeps the list
		// stable, then insertion order for determinism.
		si, sj := math.Abs(order[i].dxdy), math.Abs(order[j].dxdy)
		if si != sj {
			return si < sj
		}
		return order[i].seq < order[j].seq
	})

	s.beam++
	insideA, insideB := false, false
	var left *edge
	for _, e := range order {
		before := s.op.inside(insideA, insideB)
		if e.operand == subject {
			insideA = !insideA
		} else {
			insideB = !insideB
		}
		after := s.op.inside(insideA, insideB)
		switch {
		case !before && after:
			left = e
		case before && !after:
			if left != nil {
				s.emit(left, e, y0, y1)
				left = nil
			}
		}
	}
	// A still-open interval here means the parity walk did not return to
	// outside; best effort is to drop it rather than emit an unbounded
	// span.
}

// emit records the trapezoid between edges l and r, unless it is a
// zero-width sliver at both scanlines.
func (s *sweeper) emit(l, r *edge, y0, y1 float64) {
	t := trapezoid{
		y0: y0, y1: y1,
		lx0: l.xAt(y0), lx1: l.xAt(y1),
		rx0: r.xAt(y0), rx1: r.xAt(y1),
		beam: s.beam,
	}
	if t.rx0-t.lx0 <= geom.Tolerance && t.rx1-t.lx1 <= geom.Tolerance {
		return
	}
	s.traps = append(s.traps, t)
}

// Boolean computes the requested set operation between polygons a and b
// and returns the result as a freshly assembled polygon. It panics with
// a clipError on malformed input; the root package converts that to an
// error return.
func Boolean(op Op, a, b *geom.Polygon) *geom.Polygon {
	if a == nil || b == nil {
		throw(&InvalidInputError{Reason: "nil operand"})
	}
	return assemble(sweepTraps(op, a, b))
}
