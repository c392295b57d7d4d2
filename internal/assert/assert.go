// Package assert provides the invariant-violation helper used throughout
// the influence maximization core. The original C++ source treats things
// like a re-entrant BFS frontier or an overflowing sketch as unrecoverable
// bugs and aborts; Must plays the same role in Go.
package assert

import "fmt"

// Must panics with a formatted message if cond is false. It marks an
// invariant that the caller believes can never be violated by correct
// code — not a validation of external input.
func Must(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
