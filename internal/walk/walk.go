// Package walk collects the files of a directory tree in pre-order,
// keeping the order in which the filesystem lists each directory.
package walk

import (
	"math"
	"path/filepath"

	serr "codextract/internal/errors"
	"codextract/internal/fsys"
	"codextract/internal/log"
)

// Unbounded disables the depth limit.
const Unbounded = math.MaxInt

// Policy is the part of filter.Policy the walker needs.
type Policy interface {
	SkipDirectory(name string) bool
	SkipFile(name string) bool
}

// Walker walks directory trees through a Lister.
type Walker struct {
	lister fsys.Lister
	policy Policy
}

// New creates a Walker.
func New(lister fsys.Lister, policy Policy) *Walker {
	return &Walker{lister: lister, policy: policy}
}

// Walk returns the absolute paths of every collected file under root.
//
// root sits at startDepth. A directory is listed only while its depth is not
// greater than maxDepth, so with maxDepth 0 only root's own files are
// returned, and with maxDepth 1 the files one level down are included too.
// The first listing error aborts the walk and no partial result is returned.
func (w *Walker) Walk(root string, startDepth, maxDepth int) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, serr.NewFileError("invalid walk root", root, serr.InvalidPath, err)
	}

	files, err := w.walk(abs, startDepth, maxDepth, nil)
	if err != nil {
		return nil, err
	}

	log.LogWithFields(log.F("root", abs), log.F("files", len(files))).Debug("walk complete")
	return files, nil
}

func (w *Walker) walk(dir string, depth, maxDepth int, acc []string) ([]string, error) {
	if depth > maxDepth {
		return acc, nil
	}

	entries, err := w.lister.ListEntries(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		switch entry.Kind {
		case fsys.Directory:
			if w.policy.SkipDirectory(entry.Name) {
				log.Debugf("skipping directory %s", entry.Path)
				continue
			}
			acc, err = w.walk(entry.Path, depth+1, maxDepth, acc)
			if err != nil {
				return nil, err
			}
		case fsys.File:
			if w.policy.SkipFile(entry.Name) {
				continue
			}
			acc = append(acc, entry.Path)
		}
	}

	return acc, nil
}
