package fsstat

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Usage returns the available and used bytes for the filesystem containing path.
func Usage(path string) (free, used uint64, err error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, errors.Wrapf(err, "statfs %s", path)
	}
	// Blocks available to unprivileged users.
	free = stat.Bavail * uint64(stat.Bsize)
	total := stat.Blocks * uint64(stat.Bsize)
	return free, total - free, nil
}
