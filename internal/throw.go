package internal

import "github.com/pkg/errors"

// Threading errors up and down the ear clipping and monotone sweeps would add a
// ton of complexity to the code. Instead, we use panics, and the triangulation
// entry points recover to convert to an error.

type TriangulateError error

var (
	ErrDegenerate = errors.New("degenerate polygon")
	ErrNotSimple  = errors.New("polygon is not simple")
	ErrNoEar      = errors.New("no ear found")
)

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

// Panic with a TriangulateError wrapping one of the sentinel errors, so callers
// can still match it with errors.Is.
func fatalWrapf(err error, format string, args ...interface{}) {
	panic(errors.Wrapf(err, format, args...))
}

func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
