// Package ignore provides gitignore-style pattern matching used to filter
// corpus walks.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pattern is a single compiled ignore rule.
type pattern struct {
	glob    string
	negated bool
	dirOnly bool
}

// Matcher holds compiled ignore patterns.
type Matcher struct {
	patterns []pattern
}

// NewMatcher compiles a list of gitignore-style pattern lines. Empty lines
// and comments are skipped.
func NewMatcher(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		m.add(line)
	}
	return m
}

// Defaults are skipped in every corpus walk regardless of configuration.
var Defaults = []string{
	".git/",
	".svn/",
	".hg/",
	".semdiff.yaml",
	"__pycache__/",
	"node_modules/",
	".DS_Store",
}

func (m *Matcher) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	p := pattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	anchored := strings.HasPrefix(line, "/")
	if anchored {
		line = line[1:]
	}

	// Patterns without a slash match the basename at any depth.
	if !anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}

	p.glob = line
	m.patterns = append(m.patterns, p)
}

// Match reports whether path (relative, slash-separated) should be skipped.
// Later patterns win, so a negated pattern can re-include a path.
func (m *Matcher) Match(path string, isDir bool) bool {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	ignored := false
	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			if matchParentDir(p.glob, path) {
				ignored = !p.negated
			}
			continue
		}
		if matchGlob(p.glob, path) {
			ignored = !p.negated
		}
	}
	return ignored
}

// matchParentDir reports whether any parent directory of path matches glob.
func matchParentDir(glob, path string) bool {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if matchGlob(glob, strings.Join(parts[:i], "/")) {
			return true
		}
	}
	return false
}

func matchGlob(glob, path string) bool {
	if ok, _ := doublestar.Match(glob, path); ok {
		return true
	}
	// A directory pattern also covers everything beneath it.
	if !strings.HasSuffix(glob, "/**") {
		if ok, _ := doublestar.Match(glob+"/**", path); ok {
			return true
		}
	}
	return false
}
