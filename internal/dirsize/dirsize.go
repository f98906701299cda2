// Package dirsize runs one size computation: it resolves the root, builds the
// ignore set when asked to and walks the tree.
package dirsize

import (
	"path/filepath"

	"github.com/IYouKnow/dirsize/internal/diag"
	"github.com/IYouKnow/dirsize/internal/ignore"
	"github.com/IYouKnow/dirsize/internal/size"
	"github.com/IYouKnow/dirsize/internal/walk"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned when the root names something other than a directory.
var ErrNotDirectory = errors.New("not a directory")

// Options controls a run.
type Options struct {
	// Path is the directory to measure; it may be relative.
	Path string
	// GitIgnore excludes the paths matched by Path/.gitignore.
	GitIgnore bool
	// Logger receives debug output and is optional.
	Logger *zap.Logger
}

// Report is the outcome of a run.
type Report struct {
	Root     string
	Bytes    uint64
	Files    int
	Dirs     int
	Ignored  int
	Warnings diag.Warnings
}

// String returns the total formatted for display, e.g. "1.07 KB".
func (r *Report) String() string {
	return size.Format(r.Bytes)
}

// Canonicalize returns the absolute form of path, with symlinks resolved when
// fsys is the OS filesystem. The result must be an existing directory.
func Canonicalize(fsys afero.Fs, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	if _, ok := fsys.(*afero.OsFs); ok {
		if abs, err = filepath.EvalSymlinks(abs); err != nil {
			return "", errors.Wrapf(err, "resolve %s", path)
		}
	}
	info, err := fsys.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	if !info.IsDir() {
		return "", errors.Wrapf(ErrNotDirectory, "resolve %s", path)
	}
	return abs, nil
}

// Run measures opts.Path on fsys.
func Run(fsys afero.Fs, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	root, err := Canonicalize(fsys, opts.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved root", zap.String("path", opts.Path), zap.String("root", root))

	ignored := ignore.NewSet()
	var warnings diag.Warnings
	if opts.GitIgnore {
		ignored, warnings, err = ignore.Load(fsys, root, ignore.WithLogger(log))
		if err != nil {
			return nil, err
		}
		log.Debug("built ignore set", zap.Int("paths", ignored.Len()))
	}

	res, err := walk.Size(fsys, root, ignored, walk.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &Report{
		Root:     root,
		Bytes:    res.Bytes,
		Files:    res.Files,
		Dirs:     res.Dirs,
		Ignored:  ignored.Len(),
		Warnings: append(warnings, res.Warnings...),
	}, nil
}
