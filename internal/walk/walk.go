// Package walk sums the sizes of the files under a directory.
package walk

import (
	"io"
	"path/filepath"

	"github.com/IYouKnow/dirsize/internal/diag"
	"github.com/IYouKnow/dirsize/internal/ignore"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// readDirBatch is the number of names requested per directory read.
const readDirBatch = 256

// Result is the outcome of one walk.
type Result struct {
	// Bytes is the sum of the sizes of all counted files.
	Bytes uint64
	// Files is the number of files counted.
	Files int
	// Dirs is the number of directories listed, including the root.
	Dirs int
	// Warnings holds directory listings that stopped early.
	Warnings diag.Warnings
}

type walker struct {
	fsys    afero.Fs
	ignored *ignore.Set
	logger  *zap.Logger
}

// Option configures Size.
type Option func(*walker)

// WithLogger sets a logger for debug output (directories visited, paths pruned).
func WithLogger(l *zap.Logger) Option {
	return func(w *walker) { w.logger = l }
}

// Size returns the total size in bytes of all files under root, following
// symlinks. Entries in ignored are skipped without being stat'ed, and an ignored
// directory is never entered.
//
// The walk stops with an error when a directory cannot be opened or listed, or
// when an entry cannot be stat'ed. A listing that fails after returning some
// names keeps those names and records a warning.
func Size(fsys afero.Fs, root string, ignored *ignore.Set, opts ...Option) (Result, error) {
	w := &walker{
		fsys:    fsys,
		ignored: ignored,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	var res Result
	pending := []string{root}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		names, err := w.list(dir, &res.Warnings)
		if err != nil {
			return Result{}, err
		}
		res.Dirs++
		w.logger.Debug("listed directory", zap.String("path", dir), zap.Int("entries", len(names)))

		for _, name := range names {
			path := filepath.Join(dir, name)
			if w.ignored.Contains(path) {
				w.logger.Debug("skipping ignored path", zap.String("path", path))
				continue
			}
			info, err := w.fsys.Stat(path)
			if err != nil {
				return Result{}, errors.WithStack(err)
			}
			if info.IsDir() {
				pending = append(pending, path)
				continue
			}
			res.Files++
			res.Bytes += uint64(info.Size())
		}
	}
	return res, nil
}

// list returns the names in dir. A read that fails before yielding any name
// means the directory could not be listed at all and is treated like a failed
// open; a read that fails later keeps the names already read.
func (w *walker) list(dir string, warnings *diag.Warnings) ([]string, error) {
	f, err := w.fsys.Open(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var names []string
	for {
		batch, err := f.Readdirnames(readDirBatch)
		names = append(names, batch...)
		switch {
		case err == io.EOF:
			return names, nil
		case err != nil && len(names) == 0:
			return nil, errors.Wrapf(err, "read directory %s", dir)
		case err != nil:
			warnings.Add(diag.OpReadDir, dir, err)
			return names, nil
		case len(batch) == 0:
			return names, nil
		}
	}
}
