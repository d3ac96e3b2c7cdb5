package polyio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/earcliff/polybool/geom"
)

// WKT support for POLYGON and MULTIPOLYGON. On write, each solid
// contour becomes a polygon whose subsequent rings are the holes it
// contains; on read, the first ring of each polygon is solid and the
// rest are holes.

// WriteWKT renders p as WKT. An empty polygon becomes
// "POLYGON EMPTY".
func WriteWKT(p *geom.Polygon) string {
	var solids []int
	holes := make(map[int][]int)
	for i := range p.Contours {
		if !p.Contours[i].Hole {
			solids = append(solids, i)
		}
	}
	for i := range p.Contours {
		c := &p.Contours[i]
		if !c.Hole || len(c.Points) == 0 {
			continue
		}
		for _, s := range solids {
			if p.Contours[s].Contains(c.Points[0]) {
				holes[s] = append(holes[s], i)
				break
			}
		}
	}
	if len(solids) == 0 {
		return "POLYGON EMPTY"
	}

	ring := func(c *geom.Contour) string {
		parts := make([]string, 0, len(c.Points)+1)
		for _, pt := range c.Points {
			parts = append(parts, fmt.Sprintf("%g %g", pt.X, pt.Y))
		}
		// WKT rings repeat the first vertex to close.
		if len(c.Points) > 0 {
			parts = append(parts, fmt.Sprintf("%g %g", c.Points[0].X, c.Points[0].Y))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}

	groups := make([]string, 0, len(solids))
	for _, s := range solids {
		rings := []string{ring(&p.Contours[s])}
		for _, h := range holes[s] {
			rings = append(rings, ring(&p.Contours[h]))
		}
		groups = append(groups, "("+strings.Join(rings, ", ")+")")
	}
	if len(groups) == 1 {
		return "POLYGON " + groups[0]
	}
	return "MULTIPOLYGON (" + strings.Join(groups, ", ") + ")"
}

// ReadWKT parses POLYGON and MULTIPOLYGON text into a polygon.
func ReadWKT(wkt string) (*geom.Polygon, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	upper := strings.ToUpper(s)
	p := geom.New()
	switch {
	case strings.HasPrefix(upper, "MULTIPOLYGON"):
		body, err := parenBody(s)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(body), "") {
			return p, nil
		}
		for _, group := range splitTopLevel(body) {
			if err := parseWKTPolygonBody(p, strings.TrimSpace(group)); err != nil {
				return nil, err
			}
		}
	case strings.HasPrefix(upper, "POLYGON"):
		if strings.Contains(upper, "EMPTY") {
			return p, nil
		}
		body := s[len("POLYGON"):]
		if err := parseWKTPolygonBody(p, strings.TrimSpace(body)); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported wkt geometry %q", strings.Fields(upper)[0])
	}
	return p, nil
}

// parseWKTPolygonBody parses "((ring), (ring), ...)": first ring solid,
// the rest holes.
func parseWKTPolygonBody(p *geom.Polygon, body string) error {
	inner, err := parenBody(body)
	if err != nil {
		return err
	}
	for i, ringText := range splitTopLevel(inner) {
		coords, err := parenBody(strings.TrimSpace(ringText))
		if err != nil {
			return err
		}
		pts, err := parseWKTCoords(coords)
		if err != nil {
			return err
		}
		// Drop the closing repeat of the first vertex.
		if len(pts) > 1 && pts[0].Eq(pts[len(pts)-1]) {
			pts = pts[:len(pts)-1]
		}
		p.AddContour(pts, i > 0)
	}
	return nil
}

// parenBody returns the content of the outermost parenthesis pair.
func parenBody(s string) (string, error) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < open {
		return "", errors.Errorf("malformed wkt near %q", s)
	}
	return s[open+1 : close], nil
}

// splitTopLevel splits on commas at parenthesis depth zero.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func parseWKTCoords(block string) ([]geom.Point, error) {
	var pts []geom.Point
	for _, tup := range strings.Split(block, ",") {
		fields := strings.Fields(strings.TrimSpace(tup))
		if len(fields) < 2 {
			return nil, errors.Errorf("malformed coordinate %q", tup)
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, errors.Errorf("malformed coordinate %q", tup)
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts, nil
}
