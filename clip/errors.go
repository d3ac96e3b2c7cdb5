package clip

import "fmt"

// The three error kinds the engine can surface. Degenerate geometry
// within tolerance never errors; it is silently normalized away. Only
// genuinely malformed input, or asking for a tristrip of a polygon with
// holes, reaches the caller as one of these.

// InvalidInputError reports malformed operand geometry: non-finite
// coordinates or an inconsistent contour list.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// UnsupportedTopologyError reports a tristrip request on a polygon that
// still contains holes. The engine does not bridge holes automatically;
// the caller must resolve them first.
type UnsupportedTopologyError struct {
	Reason string
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("unsupported topology: %s", e.Reason)
}

// NumericInconsistencyError reports that contour assembly could not
// close a walk. It signals a tolerance violation. Fragments below the
// area tolerance are dropped without raising it, so in practice this is
// counted rather than returned.
type NumericInconsistencyError struct {
	Reason string
}

func (e *NumericInconsistencyError) Error() string {
	return fmt.Sprintf("numeric inconsistency: %s", e.Reason)
}
