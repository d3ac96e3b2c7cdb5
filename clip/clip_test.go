package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earcliff/polybool/geom"
)

func square(x0, y0, size float64) []geom.Point {
	return []geom.Point{
		{X: x0, Y: y0},
		{X: x0 + size, Y: y0},
		{X: x0 + size, Y: y0 + size},
		{X: x0, Y: y0 + size},
	}
}

func lShape() *geom.Polygon {
	return geom.FromPoints([]geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	})
}

func diamond(cx, cy, r float64) []geom.Point {
	return []geom.Point{
		{X: cx, Y: cy - r},
		{X: cx + r, Y: cy},
		{X: cx, Y: cy + r},
		{X: cx - r, Y: cy},
	}
}

func mustClip(t *testing.T, op Op, a, b *geom.Polygon) *geom.Polygon {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("%s panicked: %v", op, r)
		}
	}()
	return Boolean(op, a, b)
}

// assertSameRegion checks set equality by area and by sampling a grid of
// probe points over the joint bounding box. The grid offsets are
// irrational so probes never land on the edges of the integer-coordinate
// test shapes.
func assertSameRegion(t *testing.T, expected, actual *geom.Polygon) {
	t.Helper()
	require.InDelta(t, expected.Area(), actual.Area(), 1e-6, "areas differ")
	bb := expected.BoundingBox().Union(actual.BoundingBox())
	if bb.IsEmpty() {
		return
	}
	const n = 23
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pt := geom.Point{
				X: bb.MinX + (float64(i)+0.501357)*bb.Width()/n,
				Y: bb.MinY + (float64(j)+0.498133)*bb.Height()/n,
			}
			if expected.Contains(pt) != actual.Contains(pt) {
				t.Fatalf("containment differs at (%g, %g): expected %v",
					pt.X, pt.Y, expected.Contains(pt))
			}
		}
	}
}

func assertCyclicEqual(t *testing.T, expected, actual []geom.Point) {
	t.Helper()
	require.Equal(t, len(expected), len(actual))
	n := len(expected)
	offset := -1
	for i, p := range actual {
		if p.Eq(expected[0]) {
			offset = i
			break
		}
	}
	require.GreaterOrEqual(t, offset, 0, "start vertex %v not found in %v", expected[0], actual)
	for i := range expected {
		assert.True(t, actual[(offset+i)%n].Eq(expected[i]),
			"vertex %d: expected %v, got %v", i, expected[i], actual[(offset+i)%n])
	}
}

func TestOverlappingSquares(t *testing.T) {
	a := geom.FromPoints(square(0, 0, 4))
	b := geom.FromPoints(square(2, 2, 4))

	t.Run("intersection is the shared square", func(t *testing.T) {
		result := mustClip(t, Intersection, a, b)
		require.Equal(t, 1, result.Len())
		assert.InDelta(t, 4.0, result.Area(), 1e-9)
		assertCyclicEqual(t, []geom.Point{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}},
			result.Contours[0].Points)
	})

	t.Run("union area is inclusion-exclusion", func(t *testing.T) {
		result := mustClip(t, Union, a, b)
		require.Equal(t, 1, result.Len())
		assert.InDelta(t, 28.0, result.Area(), 1e-9)
	})

	t.Run("difference", func(t *testing.T) {
		result := mustClip(t, Difference, a, b)
		assert.InDelta(t, 12.0, result.Area(), 1e-9)
		assert.True(t, result.Contains(geom.Point{X: 1, Y: 1}))
		assert.False(t, result.Contains(geom.Point{X: 3, Y: 3}))
	})

	t.Run("symmetric difference", func(t *testing.T) {
		result := mustClip(t, SymmetricDifference, a, b)
		assert.InDelta(t, 24.0, result.Area(), 1e-9)
		assert.True(t, result.Contains(geom.Point{X: 1, Y: 1}))
		assert.True(t, result.Contains(geom.Point{X: 5, Y: 5}))
		assert.False(t, result.Contains(geom.Point{X: 3, Y: 3}))
	})
}

func TestDisjointOperands(t *testing.T) {
	a := geom.FromPoints(square(0, 0, 2))
	b := geom.FromPoints(square(5, 5, 2))

	t.Run("union keeps both contours", func(t *testing.T) {
		result := mustClip(t, Union, a, b)
		assert.Equal(t, 2, result.Len())
		assert.InDelta(t, 8.0, result.Area(), 1e-9)
	})

	t.Run("intersection is empty", func(t *testing.T) {
		result := mustClip(t, Intersection, a, b)
		assert.Equal(t, 0, result.Len())
		assert.Zero(t, result.Area())
	})

	t.Run("difference leaves a untouched", func(t *testing.T) {
		result := mustClip(t, Difference, a, b)
		assertSameRegion(t, a, result)
	})
}

func TestHoleCreation(t *testing.T) {
	outer := geom.FromPoints(square(0, 0, 6))
	inner := geom.FromPoints(square(2, 2, 2))

	result := mustClip(t, Difference, outer, inner)
	require.Equal(t, 2, result.Len())
	assert.InDelta(t, 32.0, result.Area(), 1e-9)

	holes := 0
	for i := range result.Contours {
		if result.Contours[i].Hole {
			holes++
			assert.True(t, result.Contours[i].SignedArea() < 0, "hole must wind clockwise")
		}
	}
	assert.Equal(t, 1, holes)
	assert.False(t, result.Contains(geom.Point{X: 3, Y: 3}))
	assert.True(t, result.Contains(geom.Point{X: 1, Y: 1}))
}

func TestHoleOperand(t *testing.T) {
	// A polygon that already carries a hole participates correctly.
	donut := geom.New()
	donut.AddContour(square(0, 0, 6), false)
	donut.AddContour(square(2, 2, 2), true)
	plug := geom.FromPoints(square(2, 2, 2))

	t.Run("union fills the hole", func(t *testing.T) {
		result := mustClip(t, Union, donut, plug)
		assert.InDelta(t, 36.0, result.Area(), 1e-9)
		assert.True(t, result.Contains(geom.Point{X: 3, Y: 3}))
	})

	t.Run("intersection with the hole region is empty", func(t *testing.T) {
		inner := geom.FromPoints(square(2.5, 2.5, 1))
		result := mustClip(t, Intersection, donut, inner)
		assert.Zero(t, result.Len())
	})
}

func TestSlantedEdgesCrossInsideBeam(t *testing.T) {
	// The diamond's edges cross the square's sides between sweep events,
	// exercising the sub-slab subdivision.
	a := geom.FromPoints(square(0, 0, 4))
	b := geom.FromPoints(diamond(2, 2, 3))

	t.Run("intersection clips the corners", func(t *testing.T) {
		result := mustClip(t, Intersection, a, b)
		// Square 16 minus four corner triangles of area 1/2.
		assert.InDelta(t, 14.0, result.Area(), 1e-6)
	})

	t.Run("union", func(t *testing.T) {
		result := mustClip(t, Union, a, b)
		assert.InDelta(t, 20.0, result.Area(), 1e-6) // 16 + 18 - 14
	})

	t.Run("xor", func(t *testing.T) {
		result := mustClip(t, SymmetricDifference, a, b)
		assert.InDelta(t, 6.0, result.Area(), 1e-6)
	})
}

func TestSharedBoundary(t *testing.T) {
	a := geom.FromPoints(square(0, 0, 4))
	b := geom.FromPoints(square(4, 0, 4))

	t.Run("union merges across the shared edge", func(t *testing.T) {
		result := mustClip(t, Union, a, b)
		assert.InDelta(t, 32.0, result.Area(), 1e-9)
		require.Equal(t, 1, result.Len())
		assert.Len(t, result.Contours[0].Points, 4)
	})

	t.Run("intersection of touching squares is empty", func(t *testing.T) {
		result := mustClip(t, Intersection, a, b)
		assert.Zero(t, result.Area())
	})

	t.Run("difference does not bleed across", func(t *testing.T) {
		result := mustClip(t, Difference, a, b)
		assertSameRegion(t, a, result)
	})
}

func TestTouchingCorner(t *testing.T) {
	a := geom.FromPoints(square(0, 0, 4))
	b := geom.FromPoints(square(4, 4, 4))

	result := mustClip(t, Union, a, b)
	assert.InDelta(t, 32.0, result.Area(), 1e-9)
	// Two simple contours, not one figure eight.
	require.Equal(t, 2, result.Len())
	for i := range result.Contours {
		assert.Len(t, result.Contours[i].Points, 4)
	}
}

func TestDegenerateInputs(t *testing.T) {
	valid := geom.FromPoints(square(0, 0, 4))

	t.Run("degenerate contour is treated as empty", func(t *testing.T) {
		degen := geom.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
		result := mustClip(t, Union, valid, degen)
		assertSameRegion(t, valid, result)

		result = mustClip(t, Intersection, valid, degen)
		assert.Zero(t, result.Len())
	})

	t.Run("empty operands", func(t *testing.T) {
		empty := geom.New()
		assert.Zero(t, mustClip(t, Intersection, empty, empty).Len())
		assertSameRegion(t, valid, mustClip(t, Union, valid, empty))
		assertSameRegion(t, valid, mustClip(t, Difference, valid, empty))
	})

	t.Run("self difference is empty", func(t *testing.T) {
		result := mustClip(t, Difference, valid, valid)
		assert.Zero(t, result.Area())
	})
}

func TestProperties(t *testing.T) {
	shapes := map[string]*geom.Polygon{
		"square":  geom.FromPoints(square(0, 0, 4)),
		"offset":  geom.FromPoints(square(2, 2, 4)),
		"l shape": lShape(),
		"diamond": geom.FromPoints(diamond(3, 1, 2)),
	}

	t.Run("union with self is identity", func(t *testing.T) {
		for name, p := range shapes {
			result := mustClip(t, Union, p, p)
			assertSameRegion(t, p, result)
			_ = name
		}
	})

	t.Run("commutativity", func(t *testing.T) {
		ops := []Op{Union, Intersection, SymmetricDifference}
		a, b := shapes["l shape"], shapes["diamond"]
		for _, op := range ops {
			ab := mustClip(t, op, a, b)
			ba := mustClip(t, op, b, a)
			assertSameRegion(t, ab, ba)
		}
	})

	t.Run("difference only removes the overlap", func(t *testing.T) {
		a, b := shapes["square"], shapes["offset"]
		direct := mustClip(t, Difference, a, b)
		viaIntersection := mustClip(t, Difference, a, mustClip(t, Intersection, a, b))
		assertSameRegion(t, direct, viaIntersection)
		// Subtracting the whole union leaves nothing.
		assert.InDelta(t, 0.0, mustClip(t, Difference, a, mustClip(t, Union, a, b)).Area(), 1e-9)
	})

	t.Run("union and intersection areas are consistent", func(t *testing.T) {
		a, b := shapes["l shape"], shapes["offset"]
		union := mustClip(t, Union, a, b)
		inter := mustClip(t, Intersection, a, b)
		assert.InDelta(t, a.Area()+b.Area(), union.Area()+inter.Area(), 1e-6)
	})

	t.Run("result vertices are contained in the union", func(t *testing.T) {
		a, b := shapes["square"], shapes["diamond"]
		union := mustClip(t, Union, a, b)
		hull := geom.ConvexHull(union)
		for i := range union.Contours {
			for _, v := range union.Contours[i].Points {
				bb := hull.BoundingBox()
				assert.True(t, v.X >= bb.MinX-geom.Tolerance && v.X <= bb.MaxX+geom.Tolerance)
				assert.True(t, v.Y >= bb.MinY-geom.Tolerance && v.Y <= bb.MaxY+geom.Tolerance)
			}
		}
	})
}

func TestInvalidInput(t *testing.T) {
	t.Run("nil operand", func(t *testing.T) {
		defer func() {
			err := RecoverError(recover())
			require.Error(t, err)
			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		}()
		Boolean(Union, nil, geom.New())
		t.Fatal("expected a panic")
	})

	t.Run("non-finite vertex", func(t *testing.T) {
		defer func() {
			err := RecoverError(recover())
			require.Error(t, err)
			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		}()
		bad := geom.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: nan(), Y: 1}})
		Boolean(Union, bad, geom.New())
		t.Fatal("expected a panic")
	})
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestNestedContours(t *testing.T) {
	// Donut in a donut's hole: union keeps all four rings, alternating
	// solid and hole by nesting depth.
	outer := geom.New()
	outer.AddContour(square(0, 0, 10), false)
	outer.AddContour(square(2, 2, 6), true)
	inner := geom.New()
	inner.AddContour(square(3, 3, 4), false)
	inner.AddContour(square(4, 4, 2), true)

	result := mustClip(t, Union, outer, inner)
	require.Equal(t, 4, result.Len())
	assert.InDelta(t, (100.0-36)+(16-4), result.Area(), 1e-9)

	holes := 0
	for i := range result.Contours {
		if result.Contours[i].Hole {
			holes++
		}
	}
	assert.Equal(t, 2, holes)
	assert.True(t, result.Contains(geom.Point{X: 1, Y: 1}))
	assert.False(t, result.Contains(geom.Point{X: 2.5, Y: 2.5}))
	assert.True(t, result.Contains(geom.Point{X: 3.5, Y: 3.5}))
	assert.False(t, result.Contains(geom.Point{X: 5, Y: 5}))
}

func TestEdgeTable(t *testing.T) {
	t.Run("buckets and dedupes events", func(t *testing.T) {
		a := geom.FromPoints(square(0, 0, 4))
		b := geom.FromPoints(square(2, 2, 4))
		table := buildEdgeTable(a, b)

		require.Equal(t, []float64{0, 2, 4, 6}, table.events)
		// Horizontal sides never become edges: two verticals per square.
		assert.Len(t, table.starts[0], 2)
		assert.Len(t, table.starts[1], 2)
		assert.Empty(t, table.starts[2])
		for _, e := range table.starts[0] {
			assert.Equal(t, subject, e.operand)
		}
		for _, e := range table.starts[1] {
			assert.Equal(t, clipper, e.operand)
		}
	})

	t.Run("skips degenerate contours", func(t *testing.T) {
		degen := geom.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
		table := buildEdgeTable(degen, geom.New())
		assert.Empty(t, table.events)
	})

	t.Run("edges span bottom to top", func(t *testing.T) {
		table := buildEdgeTable(geom.FromPoints(diamond(0, 0, 2)), geom.New())
		for _, bucket := range table.starts {
			for _, e := range bucket {
				assert.Less(t, e.bot.Y, e.top.Y)
			}
		}
	})
}
