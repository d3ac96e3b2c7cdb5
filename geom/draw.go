package geom

import (
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

const drawPadding = 10

// RenderPNG rasterizes the polygons to a PNG at path, mainly for eyeball
// debugging and the CLI's render command. Each polygon is filled with a
// cycling palette under the even-odd rule, so holes come out empty. The
// scale is pixels per coordinate unit.
func RenderPNG(path string, scale float64, polys ...*Polygon) error {
	bb := emptyRect()
	for _, p := range polys {
		bb = bb.Union(p.BoundingBox())
	}
	if bb.IsEmpty() {
		bb = Rect{0, 0, 1, 1}
	}

	width := int(scale*bb.Width()) + drawPadding*2
	height := int(scale*bb.Height()) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	// Flip the context so the origin is at the bottom left.
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bb.MinX, -bb.MinY)

	palette := [][3]float64{
		{0.11, 0.62, 0.47},
		{0.85, 0.37, 0.01},
		{0.46, 0.44, 0.70},
		{0.91, 0.16, 0.54},
	}

	c.SetLineWidth(2)
	for i, p := range polys {
		for j := range p.Contours {
			pts := p.Contours[j].Points
			if len(pts) == 0 {
				continue
			}
			c.MoveTo(pts[0].X, pts[0].Y)
			for _, pt := range pts[1:] {
				c.LineTo(pt.X, pt.Y)
			}
			c.ClosePath()
		}
		rgb := palette[i%len(palette)]
		c.SetRGB(rgb[0], rgb[1], rgb[2])
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	return c.SavePNG(path)
}

// CatPNG prints the image at path inline in a terminal that supports
// the iTerm2 image protocol.
func CatPNG(path string) {
	imgcat.CatFile(path, os.Stdout)
}
