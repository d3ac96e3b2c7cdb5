package polyio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"

	"github.com/earcliff/polybool/geom"
)

// default fill palette for WriteSVG, cycled per polygon
var svgPalette = [][3]int{
	{27, 158, 119},
	{217, 95, 2},
	{117, 112, 179},
	{231, 41, 138},
	{102, 166, 30},
	{230, 171, 2},
	{166, 118, 29},
	{102, 102, 102},
}

// WriteSVG renders the polygons as one SVG document, one <path> per
// polygon filled under the even-odd rule so holes come out empty. The
// polygons are scaled into a viewport of the given width (height follows
// the aspect ratio; pass 0 to default to 300), and y is flipped into the
// SVG coordinate system.
func WriteSVG(w io.Writer, width float64, polys ...*geom.Polygon) error {
	bb := geom.Rect{}
	first := true
	warped := make([]*geom.Polygon, len(polys))
	for i, p := range polys {
		warped[i] = p.Clone()
		if first {
			bb = p.BoundingBox()
			first = false
		} else {
			bb = bb.Union(p.BoundingBox())
		}
	}
	if first || (bb.Width() == 0 && bb.Height() == 0) {
		return errors.New("polygons have no extent")
	}
	aspect := 1.0
	if bb.Width() > 0 {
		aspect = bb.Height() / bb.Width()
	}
	if width == 0 {
		if aspect < 1 {
			width = 300
		} else {
			width = 300 / aspect
		}
	}
	height := width * aspect

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8" standalone="no"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n",
		int(width), int(height)))
	for i, p := range warped {
		// Flip into the SVG frame (y down), then scale to the viewport.
		p.Flop((bb.MinY + bb.MaxY) / 2)
		p.WarpToBox(
			width*(p.BoundingBox().MinX-bb.MinX)/orOne(bb.Width()),
			width*(p.BoundingBox().MaxX-bb.MinX)/orOne(bb.Width()),
			height*(p.BoundingBox().MinY-bb.MinY)/orOne(bb.Height()),
			height*(p.BoundingBox().MaxY-bb.MinY)/orOne(bb.Height()),
		)
		rgb := svgPalette[i%len(svgPalette)]
		b.WriteString(fmt.Sprintf(`<path style="fill:rgb(%d,%d,%d);fill-rule:evenodd;stroke:rgb(0,0,0);stroke-width:1;" d="`,
			rgb[0], rgb[1], rgb[2]))
		for j := range p.Contours {
			pts := p.Contours[j].Points
			if len(pts) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("M %g, %g ", pts[0].X, pts[0].Y))
			for _, pt := range pts[1:] {
				b.WriteString(fmt.Sprintf("L %g, %g ", pt.X, pt.Y))
			}
			b.WriteString("z ")
		}
		b.WriteString(`"/>` + "\n")
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing svg")
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ReadSVG parses <polygon> elements out of an SVG document, one contour
// each, and assembles them into a single polygon. Coordinates are taken
// as-is (no y flip); clockwise contours are read as holes, matching the
// signed-area convention. Only the <polygon> subset is handled.
func ReadSVG(r io.Reader) (*geom.Polygon, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}
	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		return nil, errors.New("no polygon elements in svg")
	}
	p := geom.New()
	for _, el := range elements {
		pts, err := parseSVGPoints(el.Attributes["points"])
		if err != nil {
			return nil, err
		}
		c := geom.Contour{Points: pts}
		p.AddContour(pts, c.SignedArea() < 0)
	}
	return p, nil
}

func parseSVGPoints(attr string) ([]geom.Point, error) {
	var pts []geom.Point
	for _, pair := range strings.Fields(attr) {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("invalid point %q", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x in %q", pair)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y in %q", pair)
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts, nil
}
