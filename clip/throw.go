package clip

import "github.com/pkg/errors"

// Threading errors up through the sweep, the assembler and their helpers
// would complicate every signature for failure paths that almost never
// fire. Instead the engine panics internally, and the public facade
// recovers and converts to an error.

type clipError error

// fatalf panics with a clipError built from format and args.
func fatalf(format string, args ...interface{}) {
	panic(clipError(errors.Errorf(format, args...)))
}

// throw panics with a specific error kind, preserving its type for
// errors.As at the boundary.
func throw(err error) {
	panic(clipError(err))
}

// RecoverError converts a recovered panic back into an error. Panics
// that did not originate from this package are re-raised.
func RecoverError(r interface{}) error {
	if r != nil {
		if err, ok := r.(clipError); ok {
			return err
		}
		panic(r)
	}
	return nil
}
