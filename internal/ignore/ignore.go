// Package ignore builds the set of paths excluded from a size computation from
// the .gitignore file at the root of the tree.
//
// Only a subset of gitignore is honored. Every pattern is anchored at the root,
// negations ("!pattern") are dropped, and a pattern matches exactly the paths
// its glob expands to when the set is built.
package ignore

import (
	"bufio"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/IYouKnow/dirsize/internal/diag"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileName is the name of the ignore file looked up at the root.
const FileName = ".gitignore"

// Pattern is one usable line of an ignore file.
type Pattern struct {
	// Line is the line as written in the file.
	Line string
	// Glob is the slash-separated glob, relative to the root.
	Glob string
	// DirOnly is set when the line ends in "/"; only directories match.
	DirOnly bool
}

// ParsePatterns extracts patterns from the text of an ignore file. Blank
// lines, comments and negations are skipped.
func ParsePatterns(text string) []Pattern {
	var patterns []Pattern
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		glob := strings.TrimPrefix(line, "/")
		dirOnly := strings.HasSuffix(glob, "/")
		glob = strings.TrimRight(glob, "/")
		if glob == "" {
			continue
		}
		patterns = append(patterns, Pattern{Line: line, Glob: glob, DirOnly: dirOnly})
	}
	return patterns
}

type options struct {
	logger *zap.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger sets a logger for debug output about pattern expansion.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load reads root/.gitignore from fsys and expands each pattern against the
// tree under root, which must be absolute and canonical. A missing ignore file
// yields an empty set. A pattern that cannot be parsed is reported as a warning
// and contributes nothing; a pattern whose expansion hits unreadable entries is
// reported as a warning and keeps the matches found elsewhere in the tree.
func Load(fsys afero.Fs, root string, opts ...Option) (*Set, diag.Warnings, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	name := filepath.Join(root, FileName)
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.logger.Debug("no ignore file", zap.String("path", name))
			return NewSet(), nil, nil
		}
		return nil, nil, errors.Wrapf(err, "read %s", name)
	}
	if !utf8.Valid(data) {
		return nil, nil, errors.Errorf("read %s: not valid UTF-8", name)
	}

	set := NewSet()
	var warnings diag.Warnings
	tree := afero.NewIOFS(afero.NewBasePathFs(fsys, root))
	for _, p := range ParsePatterns(string(data)) {
		matches, err := expand(tree, p, doublestar.WithFailOnIOErrors())
		if err != nil {
			warnings.Add(diag.OpGlob, p.Line, err)
			if errors.Is(err, doublestar.ErrBadPattern) {
				continue
			}
			// Keep the matches found in the parts of the tree that could be read.
			if matches, err = expand(tree, p); err != nil {
				continue
			}
		}
		for _, m := range matches {
			set.add(filepath.Join(root, filepath.FromSlash(m)))
		}
		o.logger.Debug("expanded ignore pattern",
			zap.String("pattern", p.Line),
			zap.Int("matches", len(matches)),
		)
	}
	return set, warnings, nil
}

func expand(tree fs.FS, p Pattern, opts ...doublestar.GlobOption) ([]string, error) {
	matches, err := doublestar.Glob(tree, p.Glob, opts...)
	if err != nil {
		return nil, err
	}
	if !p.DirOnly {
		return matches, nil
	}
	dirs := matches[:0]
	for _, m := range matches {
		info, err := fs.Stat(tree, m)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	return dirs, nil
}
