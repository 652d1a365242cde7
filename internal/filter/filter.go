// Package filter decides which directories are descended into and which
// files are collected.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"codextract/internal/config"
	serr "codextract/internal/errors"
)

// Policy is an immutable set of ignore rules. Every rule looks at a single
// entry name, never at its ancestors.
type Policy struct {
	dirs     map[string]struct{}
	files    map[string]struct{}
	exts     map[string]struct{}
	patterns []glob.Glob
}

// New builds a Policy from cfg. Extensions are lowercased; everything else is
// kept verbatim.
func New(cfg config.FilterConfig) (*Policy, error) {
	p := &Policy{
		dirs:  toSet(cfg.IgnoredDirectories, false),
		files: toSet(cfg.IgnoredFiles, false),
		exts:  toSet(cfg.IgnoredExtensions, true),
	}

	for i, pattern := range cfg.IgnoredPatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, serr.NewConfigError("invalid glob pattern", fmt.Sprintf("filter.ignored_patterns[%d]", i), serr.InvalidConfig, err)
		}
		p.patterns = append(p.patterns, g)
	}

	return p, nil
}

func toSet(values []string, lower bool) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if lower {
			v = strings.ToLower(v)
		}
		set[v] = struct{}{}
	}
	return set
}

// SkipDirectory reports whether a directory named name is excluded.
// Name matching is exact and case-sensitive.
func (p *Policy) SkipDirectory(name string) bool {
	if _, ok := p.dirs[name]; ok {
		return true
	}
	return p.matchesPattern(name)
}

// SkipFile reports whether a file named name is excluded, either by name or
// by its lowercased extension.
func (p *Policy) SkipFile(name string) bool {
	if _, ok := p.files[name]; ok {
		return true
	}
	if ext := Extension(name); ext != "" {
		if _, ok := p.exts[ext]; ok {
			return true
		}
	}
	return p.matchesPattern(name)
}

func (p *Policy) matchesPattern(name string) bool {
	for _, g := range p.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Extension returns the lowercased text from the last "." onward, or "" when
// name has no dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
