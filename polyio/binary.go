package polyio

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/earcliff/polybool/geom"
)

// The binary form is a compact network-byte-order encoding: a uint32
// contour count, then for each contour an int32 vertex count (negated
// for holes) followed by the vertices as pairs of float64. There is no
// redundancy; a damaged stream is unusable, which ReadBinary guards
// against with sanity limits.

const maxBinaryVertices = 1 << 26

// EncodeBinary serializes p to the binary form.
func EncodeBinary(p *geom.Polygon) []byte {
	var buf bytes.Buffer
	_ = WriteBinary(&buf, p) // bytes.Buffer writes cannot fail
	return buf.Bytes()
}

// DecodeBinary rebuilds a polygon from EncodeBinary output.
func DecodeBinary(data []byte) (*geom.Polygon, error) {
	return ReadBinary(bytes.NewReader(data))
}

// WriteBinary writes p to w in the binary form.
func WriteBinary(w io.Writer, p *geom.Polygon) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(p.Contours))); err != nil {
		return errors.Wrap(err, "writing contour count")
	}
	for i := range p.Contours {
		c := &p.Contours[i]
		n := int32(len(c.Points))
		if c.Hole {
			n = -n
		}
		if err := binary.Write(w, binary.BigEndian, n); err != nil {
			return errors.Wrap(err, "writing vertex count")
		}
		for _, pt := range c.Points {
			if err := binary.Write(w, binary.BigEndian, [2]float64{pt.X, pt.Y}); err != nil {
				return errors.Wrap(err, "writing vertex")
			}
		}
	}
	return nil
}

// ReadBinary reads one polygon in the binary form from r.
func ReadBinary(r io.Reader) (*geom.Polygon, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, errors.Wrap(err, "reading contour count")
	}
	p := geom.New()
	for i := uint32(0); i < count; i++ {
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, errors.Wrap(err, "reading vertex count")
		}
		hole := n < 0
		if hole {
			n = -n
		}
		if n > maxBinaryVertices {
			return nil, errors.Errorf("implausible vertex count %d", n)
		}
		pts := make([]geom.Point, n)
		for j := range pts {
			var xy [2]float64
			if err := binary.Read(r, binary.BigEndian, &xy); err != nil {
				return nil, errors.Wrap(err, "reading vertex")
			}
			pts[j] = geom.Point{X: xy[0], Y: xy[1]}
		}
		p.AddContour(pts, hole)
	}
	return p, nil
}
