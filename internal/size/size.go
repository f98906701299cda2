// Package size picks a display unit for a byte count and formats it.
package size

import (
	"fmt"

	"github.com/docker/go-units"
)

// Unit is a binary magnitude used for display.
type Unit int

const (
	B Unit = iota
	KB
	MB
	GB
	TB
)

var unitNames = [...]string{"B", "KB", "MB", "GB", "TB"}

func (u Unit) String() string {
	if u < B || u > TB {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// Divisor returns the number of bytes in one u.
func (u Unit) Divisor() uint64 {
	switch u {
	case KB:
		return units.KiB
	case MB:
		return units.MiB
	case GB:
		return units.GiB
	case TB:
		return units.TiB
	default:
		return 1
	}
}

// UnitFor returns the largest unit whose divisor is not greater than n.
func UnitFor(n uint64) Unit {
	switch {
	case n >= units.TiB:
		return TB
	case n >= units.GiB:
		return GB
	case n >= units.MiB:
		return MB
	case n >= units.KiB:
		return KB
	default:
		return B
	}
}

// Value converts n to the unit chosen by UnitFor.
func Value(n uint64) (float64, Unit) {
	u := UnitFor(n)
	if u == B {
		return float64(n), u
	}
	return float64(n) / float64(u.Divisor()), u
}

// Format renders n as "<value> <unit>" with two decimal places, e.g. "1.07 KB".
func Format(n uint64) string {
	v, u := Value(n)
	return fmt.Sprintf("%.2f %s", v, u)
}
