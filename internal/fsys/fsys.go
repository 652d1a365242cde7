// Package fsys is the filesystem boundary used by the walker, the selector
// and the artifact writer.
package fsys

import (
	"os"
	"path/filepath"

	serr "codextract/internal/errors"
)

// Kind classifies a directory entry.
type Kind int

const (
	// Other covers symlinks, devices, sockets and pipes. They are neither
	// descended into nor collected.
	Other Kind = iota
	Directory
	File
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "other"
	}
}

// Entry is one child reported by a directory listing.
type Entry struct {
	Name string
	Path string
	Kind Kind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == Directory }

// Lister lists the immediate children of a directory in the order the
// filesystem reports them.
type Lister interface {
	ListEntries(dir string) ([]Entry, error)
}

// FileSystem is everything a run needs from the disk.
type FileSystem interface {
	Lister
	ReadFileText(path string) (string, error)
	CreateOrTruncate(path string) error
	AppendText(path, text string) error
}

var _ FileSystem = OS{}

// OS implements FileSystem against the local disk.
type OS struct{}

// ListEntries returns the children of dir unsorted. os.ReadDir sorts by
// name, so the directory is read through (*os.File).ReadDir instead.
func (OS) ListEntries(dir string) ([]Entry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, serr.NewFileError("failed to list directory", dir, serr.DirectoryListFailed, err)
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, serr.NewFileError("failed to list directory", dir, serr.DirectoryListFailed, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entry := Entry{Name: d.Name(), Path: filepath.Join(dir, d.Name())}
		switch {
		case d.IsDir():
			entry.Kind = Directory
		case d.Type().IsRegular():
			entry.Kind = File
		default:
			entry.Kind = Other
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadFileText reads the whole file as text.
func (OS) ReadFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", serr.NewFileError("failed to read file", path, serr.FileReadFailed, err)
	}
	return string(data), nil
}

// CreateOrTruncate leaves an empty file at path.
func (OS) CreateOrTruncate(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return serr.NewFileError("failed to create artifact", path, serr.ArtifactCreateFailed, err)
	}
	if err := f.Close(); err != nil {
		return serr.NewFileError("failed to create artifact", path, serr.ArtifactCreateFailed, err)
	}
	return nil
}

// AppendText appends text to the end of the file at path. The file must exist.
func (OS) AppendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return serr.NewFileError("failed to append to artifact", path, serr.ArtifactWriteFailed, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return serr.NewFileError("failed to append to artifact", path, serr.ArtifactWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return serr.NewFileError("failed to append to artifact", path, serr.ArtifactWriteFailed, err)
	}
	return nil
}
