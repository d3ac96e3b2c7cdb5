package polyio

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/earcliff/polybool/clip"
	"github.com/earcliff/polybool/geom"
)

// Gnuplot writers, for quick visual checks with
// plot "file" with lines.

// WriteGnuplot writes each contour of each polygon as a blank-line
// separated polyline block, repeating the first vertex to close the
// loop.
func WriteGnuplot(w io.Writer, polys ...*geom.Polygon) error {
	for _, p := range polys {
		for i := range p.Contours {
			pts := p.Contours[i].Points
			if len(pts) == 0 {
				continue
			}
			for _, pt := range pts {
				if _, err := fmt.Fprintf(w, "%g %g\n", pt.X, pt.Y); err != nil {
					return errors.Wrap(err, "writing gnuplot data")
				}
			}
			if _, err := fmt.Fprintf(w, "%g %g\n\n", pts[0].X, pts[0].Y); err != nil {
				return errors.Wrap(err, "writing gnuplot data")
			}
		}
	}
	return nil
}

// WriteGnuplotTriangles expands triangle strips into individual closed
// triangles, one polyline block each.
func WriteGnuplotTriangles(w io.Writer, strips ...clip.Strip) error {
	for _, strip := range strips {
		for i := 0; i+2 < len(strip); i++ {
			a, b, c := strip[i], strip[i+1], strip[i+2]
			_, err := fmt.Fprintf(w, "%g %g\n%g %g\n%g %g\n%g %g\n\n",
				a.X, a.Y, b.X, b.Y, c.X, c.Y, a.X, a.Y)
			if err != nil {
				return errors.Wrap(err, "writing gnuplot triangles")
			}
		}
	}
	return nil
}
