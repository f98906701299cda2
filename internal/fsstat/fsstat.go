// Package fsstat reports capacity of the filesystem that holds a path.
package fsstat

import "github.com/pkg/errors"

// ErrUnsupported is returned by Usage on platforms without a Statfs call.
var ErrUnsupported = errors.New("filesystem usage not supported on this platform")
