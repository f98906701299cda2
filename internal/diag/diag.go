// Package diag holds the non-fatal problems collected while building the
// ignore set and walking a tree.
package diag

import (
	"fmt"

	"go.uber.org/multierr"
)

// Operations that can produce a Warning.
const (
	OpGlob    = "glob"
	OpReadDir = "readdir"
)

// Warning describes a failure that did not abort the run.
type Warning struct {
	Op   string
	Path string
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s %s: %v", w.Op, w.Path, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Warnings is an ordered list of warnings.
type Warnings []Warning

// Add appends a warning for op on path.
func (ws *Warnings) Add(op, path string, err error) {
	*ws = append(*ws, Warning{Op: op, Path: path, Err: err})
}

// Err combines all warnings into a single error, or nil when there are none.
func (ws Warnings) Err() error {
	var err error
	for _, w := range ws {
		err = multierr.Append(err, w)
	}
	return err
}
