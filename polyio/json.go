// Package polyio reads and writes polygons in the formats the rest of
// the tooling speaks: a canonical JSON form, a compact binary form, WKT,
// SVG, and gnuplot data files. The JSON form is the interchange format:
// it round-trips a polygon losslessly, preserving vertex order and hole
// flags.
package polyio

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/earcliff/polybool/geom"
)

// jsonPolygon is the canonical persisted form: an ordered list of
// contours, each a flat list of (x, y) pairs plus a hole flag.
type jsonPolygon struct {
	Contours []jsonContour `json:"contours"`
}

type jsonContour struct {
	Points [][2]float64 `json:"points"`
	Hole   bool         `json:"hole,omitempty"`
}

// MarshalJSON encodes p into the canonical JSON form.
func MarshalJSON(p *geom.Polygon) ([]byte, error) {
	return json.Marshal(toJSON(p))
}

// UnmarshalJSON decodes the canonical JSON form.
func UnmarshalJSON(data []byte) (*geom.Polygon, error) {
	var jp jsonPolygon
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, errors.Wrap(err, "decoding polygon json")
	}
	return fromJSON(&jp), nil
}

// WriteJSON writes p to w in the canonical JSON form.
func WriteJSON(w io.Writer, p *geom.Polygon) error {
	enc := json.NewEncoder(w)
	return errors.Wrap(enc.Encode(toJSON(p)), "encoding polygon json")
}

// ReadJSON reads one polygon in the canonical JSON form from r.
func ReadJSON(r io.Reader) (*geom.Polygon, error) {
	var jp jsonPolygon
	if err := json.NewDecoder(r).Decode(&jp); err != nil {
		return nil, errors.Wrap(err, "decoding polygon json")
	}
	return fromJSON(&jp), nil
}

func toJSON(p *geom.Polygon) *jsonPolygon {
	jp := &jsonPolygon{Contours: make([]jsonContour, 0, len(p.Contours))}
	for i := range p.Contours {
		c := &p.Contours[i]
		jc := jsonContour{Points: make([][2]float64, len(c.Points)), Hole: c.Hole}
		for j, pt := range c.Points {
			jc.Points[j] = [2]float64{pt.X, pt.Y}
		}
		jp.Contours = append(jp.Contours, jc)
	}
	return jp
}

func fromJSON(jp *jsonPolygon) *geom.Polygon {
	p := geom.New()
	for _, jc := range jp.Contours {
		pts := make([]geom.Point, len(jc.Points))
		for j, xy := range jc.Points {
			pts[j] = geom.Point{X: xy[0], Y: xy[1]}
		}
		p.AddContour(pts, jc.Hole)
	}
	return p
}
