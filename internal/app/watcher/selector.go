package watcher

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

var prunedDirs = []string{".git", "node_modules", "vendor", ".idea", ".vscode"}

// Selector decides which files under a watched root are tailed
type Selector struct {
	include []glob.Glob
	ignore  []glob.Glob
}

// NewSelector compiles include and ignore globs relative to a watched root
func NewSelector(include, ignore []string) (*Selector, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}

	ign, err := compileGlobs(ignore)
	if err != nil {
		return nil, err
	}

	return &Selector{include: inc, ignore: ign}, nil
}

// compileGlobs compiles patterns; a leading **/ also matches files at the root
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob

	for _, pattern := range patterns {
		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, err
			}

			globs = append(globs, g)
		}
	}

	return globs, nil
}

// Selects reports whether the file at rel should be tailed
func (s *Selector) Selects(rel string) bool {
	rel = slashed(rel)

	if anyMatch(s.ignore, rel) {
		return false
	}

	return anyMatch(s.include, rel)
}

// Prunes reports whether the directory at rel is left unwatched
func (s *Selector) Prunes(rel string) bool {
	if slices.Contains(prunedDirs, filepath.Base(rel)) {
		return true
	}

	return anyMatch(s.ignore, slashed(rel)+"/_")
}

func anyMatch(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}

	return false
}

func slashed(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
