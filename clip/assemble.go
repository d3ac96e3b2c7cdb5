package clip

import (
	"log"
	"math"
	"sort"

	"github.com/earcliff/polybool/geom"
)

// The assembler turns the sweep's trapezoid bag back into closed,
// consistently oriented contours. Each trapezoid contributes its four
// boundary edges with counterclockwise winding; edges shared between
// adjacent trapezoids are interior and cancel. What survives is the
// region boundary, which is stitched vertex to vertex into loops, then
// classified solid or hole by nesting parity.

// vkey is a vertex snapped to the tolerance grid, usable as a map key.
type vkey struct {
	x, y int64
}

func quantize(p geom.Point) vkey {
	return vkey{
		x: int64(math.Round(p.X / geom.Tolerance)),
		y: int64(math.Round(p.Y / geom.Tolerance)),
	}
}

// outSeg is one directed boundary segment: the region interior lies to
// its left.
type outSeg struct {
	a, b geom.Point
}

// hspan is a signed horizontal interval on one scanline: +1 for the
// bottom of a trapezoid (interior above), -1 for a top (interior
// below). Where spans from the beams above and below overlap, the
// interior continues through and the boundary cancels.
type hspan struct {
	x0, x1 float64
	sign   int
}

type assembler struct {
	segs []outSeg
	// horizontal spans keyed by quantized scanline y
	lines map[int64]*hline
	// side segments keyed by quantized endpoints, with a signed count so
	// coincident opposite sides (shared boundaries between operands)
	// cancel instead of producing zero-width slivers
	sides map[[2]vkey]*sideAcc

	dropped int // walks that failed to close
}

type hline struct {
	y     float64
	spans []hspan
}

type sideAcc struct {
	a, b geom.Point // canonical direction
	net  int
}

// assemble builds the result polygon from the sweep's trapezoids.
func assemble(traps []trapezoid) *geom.Polygon {
	asm := &assembler{
		lines: make(map[int64]*hline),
		sides: make(map[[2]vkey]*sideAcc),
	}
	for _, t := range traps {
		// Counterclockwise: bottom rightward, right side up, top
		// leftward, left side down.
		bl := geom.Point{X: t.lx0, Y: t.y0}
		br := geom.Point{X: t.rx0, Y: t.y0}
		tr := geom.Point{X: t.rx1, Y: t.y1}
		tl := geom.Point{X: t.lx1, Y: t.y1}
		asm.addHorizontal(t.y0, t.lx0, t.rx0, +1)
		asm.addHorizontal(t.y1, t.lx1, t.rx1, -1)
		asm.addSide(br, tr)
		asm.addSide(tl, bl)
	}
	asm.resolveHorizontals()
	asm.resolveSides()
	contours := asm.stitch()
	return classifyNesting(contours)
}

func (asm *assembler) addHorizontal(y, x0, x1 float64, sign int) {
	if x1-x0 <= geom.Tolerance {
		return
	}
	key := int64(math.Round(y / geom.Tolerance))
	line := asm.lines[key]
	if line == nil {
		line = &hline{y: y}
		asm.lines[key] = line
	}
	line.spans = append(line.spans, hspan{x0: x0, x1: x1, sign: sign})
}

func (asm *assembler) addSide(a, b geom.Point) {
	ka, kb := quantize(a), quantize(b)
	if ka == kb {
		return
	}
	key := [2]vkey{ka, kb}
	dir := 1
	if kb.y < ka.y || (kb.y == ka.y && kb.x < ka.x) {
		key = [2]vkey{kb, ka}
		a, b = b, a
		dir = -1
	}
	acc := asm.sides[key]
	if acc == nil {
		acc = &sideAcc{a: a, b: b}
		asm.sides[key] = acc
	}
	acc.net += dir
}

// resolveHorizontals runs a little 1D sweep over each scanline: sum the
// span signs across x breakpoints and emit boundary segments where the
// net coverage is nonzero. Positive net faces the interior upward
// (rightward segment), negative downward (leftward segment); zero means
// the interior continues across the line and no boundary exists.
func (asm *assembler) resolveHorizontals() {
	for _, line := range asm.lines {
		type bp struct {
			x     float64
			delta int
		}
		var bps []bp
		for _, s := range line.spans {
			bps = append(bps, bp{s.x0, s.sign}, bp{s.x1, -s.sign})
		}
		sort.Slice(bps, func(i, j int) bool { return bps[i].x < bps[j].x })

		// Collapse breakpoints within tolerance, then walk the gaps.
		i := 0
		net := 0
		for i < len(bps) {
			x := bps[i].x
			for i < len(bps) && bps[i].x-x <= geom.Tolerance {
				net += bps[i].delta
				i++
			}
			if i >= len(bps) {
				break
			}
			next := bps[i].x
			if next-x <= geom.Tolerance || net == 0 {
				continue
			}
			a := geom.Point{X: x, Y: line.y}
			b := geom.Point{X: next, Y: line.y}
			if net > 0 {
				asm.segs = append(asm.segs, outSeg{a, b})
			} else {
				asm.segs = append(asm.segs, outSeg{b, a})
			}
		}
	}
}

func (asm *assembler) resolveSides() {
	for _, acc := range asm.sides {
		switch {
		case acc.net > 0:
			asm.segs = append(asm.segs, outSeg{acc.a, acc.b})
		case acc.net < 0:
			asm.segs = append(asm.segs, outSeg{acc.b, acc.a})
		}
	}
}

// stitch walks the boundary segments vertex to vertex until each walk
// closes, yielding one contour per loop. At a junction shared by
// several regions the walk takes the sharpest left turn, which keeps
// every output contour simple instead of tracing figure eights through
// touching corners. Walks that cannot close indicate a tolerance
// violation; their fragments are dropped, and only logged when the lost
// area is significant.
func (asm *assembler) stitch() []geom.Contour {
	// Deterministic walk order regardless of map iteration above.
	sort.Slice(asm.segs, func(i, j int) bool {
		ki, kj := quantize(asm.segs[i].a), quantize(asm.segs[j].a)
		if ki.y != kj.y {
			return ki.y < kj.y
		}
		if ki.x != kj.x {
			return ki.x < kj.x
		}
		li, lj := quantize(asm.segs[i].b), quantize(asm.segs[j].b)
		if li.y != lj.y {
			return li.y < lj.y
		}
		return li.x < lj.x
	})

	bySrc := make(map[vkey][]int, len(asm.segs))
	for i, s := range asm.segs {
		k := quantize(s.a)
		bySrc[k] = append(bySrc[k], i)
	}

	used := make([]bool, len(asm.segs))
	var contours []geom.Contour

	for start := range asm.segs {
		if used[start] {
			continue
		}
		startKey := quantize(asm.segs[start].a)
		cur := start
		pts := []geom.Point{asm.segs[start].a}
		closed := false
		for {
			used[cur] = true
			end := asm.segs[cur].b
			endKey := quantize(end)
			if endKey == startKey {
				closed = true
				break
			}
			pts = append(pts, end)
			next := asm.pickNext(bySrc[endKey], used, asm.segs[cur])
			if next < 0 {
				break
			}
			cur = next
		}
		if !closed {
			asm.dropped++
			area := chainArea(pts)
			if area > geom.Tolerance {
				log.Printf("polybool: dropped unclosed boundary fragment (%d vertices, ~%g area)", len(pts), area)
			}
			continue
		}
		c := geom.Contour{Points: pts}
		c.Simplify()
		if len(c.Points) < 3 || c.Area() <= geom.Tolerance {
			continue
		}
		contours = append(contours, c)
	}

	return contours
}

// pickNext chooses the unused outgoing segment that turns most sharply
// left relative to the incoming direction. An exact U-turn is a last
// resort only.
func (asm *assembler) pickNext(candidates []int, used []bool, in outSeg) int {
	dx, dy := in.b.X-in.a.X, in.b.Y-in.a.Y
	best := -1
	bestAngle := math.Inf(-1)
	uturn := -1
	for _, i := range candidates {
		if used[i] {
			continue
		}
		s := asm.segs[i]
		vx, vy := s.b.X-s.a.X, s.b.Y-s.a.Y
		angle := math.Atan2(dx*vy-dy*vx, dx*vx+dy*vy)
		if angle > math.Pi-1e-9 {
			uturn = i
			continue
		}
		if angle > bestAngle {
			bestAngle = angle
			best = i
		}
	}
	if best < 0 {
		return uturn
	}
	return best
}

// chainArea estimates the area a dangling fragment would have enclosed,
// for deciding whether its loss is worth mentioning.
func chainArea(pts []geom.Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum / 2)
}

// classifyNesting assigns hole flags by containment parity: a contour
// nested inside an odd number of the other contours is a hole. Winding
// from the stitch already agrees in the common cases, but nesting is
// the authoritative rule when multiple holes share geometry.
func classifyNesting(contours []geom.Contour) *geom.Polygon {
	result := geom.New()
	for i := range contours {
		depth := 0
		probe := contours[i].Points[0]
		for j := range contours {
			if j == i {
				continue
			}
			if contours[j].BoundingBox().Overlaps(contours[i].BoundingBox()) && contours[j].Contains(probe) {
				depth++
			}
		}
		result.AddContour(contours[i].Points, depth%2 == 1)
	}
	return result
}
