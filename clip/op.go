// Package clip implements boolean set operations on polygons with a
// Vatti-style scanline sweep: both operands are broken into directed
// edges bucketed by y, a horizontal scanline visits every distinct
// vertex y in ascending order, and the regions between active edges are
// classified against the requested operation. The inside spans become
// trapezoids, whose boundaries are stitched back into closed contours
// (or linked into triangle strips in fill mode).
//
// Engine internals panic on failure; the exported entry points in the
// root package recover via RecoverError.
package clip

// Op selects the boolean operation applied between the two operands.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
	SymmetricDifference

	// opFill is the single-operand mode used by the tristrip generator:
	// coverage is decided by the subject operand alone.
	opFill
)

// truth is the operator lookup table from (insideA, insideB) to "does
// this region belong to the output". Indexed [op][a][b] with false=0.
var truth = [4][2][2]bool{
	Union:               {{false, true}, {true, true}},
	Intersection:        {{false, false}, {false, true}},
	Difference:          {{false, false}, {true, false}},
	SymmetricDifference: {{false, true}, {true, false}},
}

// inside evaluates the truth table for the current operand states.
func (op Op) inside(a, b bool) bool {
	if op == opFill {
		return a
	}
	return truth[op][b2i(a)][b2i(b)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case SymmetricDifference:
		return "xor"
	case opFill:
		return "fill"
	}
	return "unknown"
}
