//go:build !linux

package fsstat

// Usage is not implemented outside Linux.
func Usage(string) (free, used uint64, err error) {
	return 0, 0, ErrUnsupported
}
