package clip

import (
	"fmt"
	"math"
	"sort"

	"github.com/logrusorgru/aurora"

	"github.com/earcliff/polybool/dbg"
	"github.com/earcliff/polybool/geom"
)

// Operand indices. The names follow the usual clipping vocabulary: the
// subject is the first operand (A), the clip the second (B).
const (
	subject = 0
	clipper = 1
)

// edge is one directed polygon edge prepared for the sweep. Endpoints
// are ordered by ascending y, so bot is always strictly below top;
// horizontal edges never become edges at all. Edges are transient: they
// are built per invocation and die with it.
type edge struct {
	bot, top geom.Point
	dxdy     float64 // inverse slope: x change per unit of y
	operand  int     // subject or clipper
	contour  int     // originating contour index within its operand
	seq      int     // insertion order, the deterministic tie-break
}

// xAt is the x-intercept of the edge at scanline y.
func (e *edge) xAt(y float64) float64 {
	return e.bot.X + (y-e.bot.Y)*e.dxdy
}

func (e *edge) String() string {
	name := dbg.Name(e)
	if e.operand == subject {
		name = aurora.Green(name).String()
	} else {
		name = aurora.Cyan(name).String()
	}
	return fmt.Sprintf("%s (%g,%g)→(%g,%g)", name, e.bot.X, e.bot.Y, e.top.X, e.top.Y)
}

// edgeTable is the sweep-ready form of both operands: every distinct
// vertex y across the two polygons, in ascending order, plus the edges
// bucketed under the event where their lower endpoint sits so the sweep
// can activate them lazily.
type edgeTable struct {
	events []float64
	starts [][]*edge
}

// buildEdgeTable converts the operands into an edge table. Horizontal
// edges are dropped (they contribute no vertical extent; the sweep
// classifies between distinct scanlines), as are zero-length edges and
// contours degenerate after that removal.
func buildEdgeTable(a, b *geom.Polygon) *edgeTable {
	var edges []*edge
	seq := 0
	collect := func(p *geom.Polygon, operand int) {
		if p == nil {
			return
		}
		for ci := range p.Contours {
			c := &p.Contours[ci]
			if c.IsDegenerate() {
				// Treated as empty, per the best-effort contract.
				continue
			}
			n := len(c.Points)
			for i, p0 := range c.Points {
				p1 := c.Points[(i+1)%n]
				checkFinite(p0)
				if math.Abs(p0.Y-p1.Y) <= geom.Tolerance {
					continue
				}
				e := &edge{operand: operand, contour: ci, seq: seq}
				if p0.Y < p1.Y {
					e.bot, e.top = p0, p1
				} else {
					e.bot, e.top = p1, p0
				}
				e.dxdy = (e.top.X - e.bot.X) / (e.top.Y - e.bot.Y)
				edges = append(edges, e)
				seq++
			}
		}
	}
	collect(a, subject)
	collect(b, clipper)

	t := &edgeTable{}
	ys := make([]float64, 0, len(edges)*2)
	for _, e := range edges {
		ys = append(ys, e.bot.Y, e.top.Y)
	}
	sort.Float64s(ys)
	for _, y := range ys {
		if len(t.events) == 0 || y-t.events[len(t.events)-1] > geom.Tolerance {
			t.events = append(t.events, y)
		}
	}

	t.starts = make([][]*edge, len(t.events))
	for _, e := range edges {
		i := t.eventIndex(e.bot.Y)
		t.starts[i] = append(t.starts[i], e)
	}
	return t
}

// eventIndex locates the event matching y within tolerance.
func (t *edgeTable) eventIndex(y float64) int {
	i := sort.SearchFloat64s(t.events, y-geom.Tolerance)
	if i >= len(t.events) || math.Abs(t.events[i]-y) > geom.Tolerance {
		fatalf("no sweep event for y=%g", y)
	}
	return i
}

func checkFinite(p geom.Point) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		throw(&InvalidInputError{Reason: fmt.Sprintf("non-finite vertex (%g, %g)", p.X, p.Y)})
	}
}
