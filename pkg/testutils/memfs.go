package testutils

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	serr "codextract/internal/errors"
	"codextract/internal/fsys"
)

var _ fsys.FileSystem = (*MemFS)(nil)

// MemFS is an in-memory fsys.FileSystem. Directory listings come back in
// insertion order, which lets tests pin an unsorted "OS order". Fixtures are
// written with absolute Unix paths such as "/proj/src".
type MemFS struct {
	children map[string][]fsys.Entry
	files    map[string]string

	// ListErr and ReadErr fail the listing or read of the named path.
	ListErr map[string]error
	ReadErr map[string]error
	// AppendErrAfter fails every append once this many appends succeeded; -1 disables it.
	AppendErrAfter int

	// Listed records every directory passed to ListEntries.
	Listed  []string
	appends int
}

// NewMemFS creates an empty filesystem containing only root. Walkers make
// their roots absolute with filepath.Abs, which turns "/proj" into a drive
// path on Windows, so tests using MemFS are skipped there.
func NewMemFS(t *testing.T, root string) *MemFS {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("MemFS fixtures use Unix absolute paths")
	}
	m := &MemFS{
		children:       map[string][]fsys.Entry{},
		files:          map[string]string{},
		ListErr:        map[string]error{},
		ReadErr:        map[string]error{},
		AppendErrAfter: -1,
	}
	m.children[filepath.Clean(root)] = nil
	return m
}

// Dir adds a directory, creating missing parents.
func (m *MemFS) Dir(p string) *MemFS {
	m.add(filepath.Clean(p), fsys.Directory)
	return m
}

// File adds a file with content, creating missing parents.
func (m *MemFS) File(p, content string) *MemFS {
	p = filepath.Clean(p)
	m.add(p, fsys.File)
	m.files[p] = content
	return m
}

// Symlink adds an entry of kind Other.
func (m *MemFS) Symlink(p string) *MemFS {
	m.add(filepath.Clean(p), fsys.Other)
	return m
}

func (m *MemFS) add(p string, kind fsys.Kind) {
	if _, exists := m.children[p]; exists && kind == fsys.Directory {
		return
	}
	parent := filepath.Dir(p)
	if parent == p {
		m.children[p] = nil
		return
	}
	if _, ok := m.children[parent]; !ok {
		m.add(parent, fsys.Directory)
	}
	m.children[parent] = append(m.children[parent], fsys.Entry{Name: filepath.Base(p), Path: p, Kind: kind})
	if kind == fsys.Directory {
		m.children[p] = nil
	}
}

func (m *MemFS) ListEntries(dir string) ([]fsys.Entry, error) {
	m.Listed = append(m.Listed, dir)
	if err := m.ListErr[dir]; err != nil {
		return nil, serr.NewFileError("failed to list directory", dir, serr.DirectoryListFailed, err)
	}
	entries, ok := m.children[dir]
	if !ok {
		return nil, serr.NewFileError("failed to list directory", dir, serr.DirectoryListFailed, nil)
	}
	out := make([]fsys.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *MemFS) ReadFileText(p string) (string, error) {
	if err := m.ReadErr[p]; err != nil {
		return "", serr.NewFileError("failed to read file", p, serr.FileReadFailed, err)
	}
	content, ok := m.files[p]
	if !ok {
		return "", serr.NewFileError("failed to read file", p, serr.FileReadFailed, nil)
	}
	return content, nil
}

func (m *MemFS) CreateOrTruncate(p string) error {
	m.files[p] = ""
	return nil
}

func (m *MemFS) AppendText(p, text string) error {
	if m.AppendErrAfter >= 0 && m.appends >= m.AppendErrAfter {
		return serr.NewFileError("failed to append to artifact", p, serr.ArtifactWriteFailed, nil)
	}
	content, ok := m.files[p]
	if !ok {
		return serr.NewFileError("failed to append to artifact", p, serr.ArtifactWriteFailed, nil)
	}
	m.appends++
	m.files[p] = content + text
	return nil
}

// Content returns the current text of a file.
func (m *MemFS) Content(p string) string {
	return m.files[p]
}

// Dirs returns every known directory under prefix, sorted.
func (m *MemFS) Dirs(prefix string) []string {
	var dirs []string
	for d := range m.children {
		if strings.HasPrefix(d, prefix) {
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)
	return dirs
}
