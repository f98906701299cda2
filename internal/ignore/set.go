package ignore

import (
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is an immutable collection of absolute paths to skip. The zero value and
// a nil *Set are empty.
type Set struct {
	paths mapset.Set[string]
}

// NewSet returns a set holding the cleaned form of paths.
func NewSet(paths ...string) *Set {
	s := &Set{paths: mapset.NewThreadUnsafeSet[string]()}
	for _, p := range paths {
		s.add(p)
	}
	return s
}

func (s *Set) add(path string) {
	s.paths.Add(filepath.Clean(path))
}

// Contains reports whether path is excluded.
func (s *Set) Contains(path string) bool {
	if s == nil || s.paths == nil {
		return false
	}
	return s.paths.Contains(filepath.Clean(path))
}

// Len returns the number of excluded paths.
func (s *Set) Len() int {
	if s == nil || s.paths == nil {
		return 0
	}
	return s.paths.Cardinality()
}

// Paths returns the excluded paths in lexical order.
func (s *Set) Paths() []string {
	if s == nil || s.paths == nil {
		return nil
	}
	paths := s.paths.ToSlice()
	sort.Strings(paths)
	return paths
}
