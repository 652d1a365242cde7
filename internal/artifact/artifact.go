// Package artifact writes the extraction output: a numbered index of the
// collected files followed by each file's content under a path header.
package artifact

import (
	"fmt"
	"path/filepath"
	"strings"

	"codextract/internal/config"
	serr "codextract/internal/errors"
	"codextract/internal/fsys"
)

// Format holds the fixed text framing the artifact.
type Format struct {
	IndexHeader string
	RuleLine    string
}

// FormatFromConfig extracts the artifact format from cfg.
func FormatFromConfig(cfg config.OutputConfig) Format {
	return Format{IndexHeader: cfg.IndexHeader, RuleLine: cfg.RuleLine}
}

// Summary describes a finished artifact.
type Summary struct {
	Path  string
	Files int
	Bytes int64
}

// Writer renders artifacts through a FileSystem. Paths in the artifact are
// relative to base.
type Writer struct {
	fs     fsys.FileSystem
	base   string
	target string
	format Format
}

// NewWriter creates a Writer producing target.
func NewWriter(fs fsys.FileSystem, base, target string, format Format) *Writer {
	return &Writer{fs: fs, base: base, target: target, format: format}
}

// Target returns the artifact path.
func (w *Writer) Target() string {
	return w.target
}

// Write truncates the target and appends the index and then every file in
// order. The first read or append failure stops the run and leaves whatever
// was already appended in place.
func (w *Writer) Write(files []string) (Summary, error) {
	if err := w.Reset(); err != nil {
		return Summary{Path: w.target}, err
	}
	return w.Append(files)
}

// Reset leaves an empty target.
func (w *Writer) Reset() error {
	return w.fs.CreateOrTruncate(w.target)
}

// Append adds the index and the file blocks to the end of the target
// without truncating it first.
func (w *Writer) Append(files []string) (Summary, error) {
	summary := Summary{Path: w.target}

	rels := make([]string, len(files))
	for i, file := range files {
		rel, err := w.relative(file)
		if err != nil {
			return summary, err
		}
		rels[i] = rel
	}

	index := w.Index(rels)
	if err := w.fs.AppendText(w.target, index); err != nil {
		return summary, err
	}
	summary.Bytes += int64(len(index))

	for i, file := range files {
		content, err := w.fs.ReadFileText(file)
		if err != nil {
			return summary, err
		}
		block := w.Block(rels[i], content)
		if err := w.fs.AppendText(w.target, block); err != nil {
			return summary, err
		}
		summary.Files++
		summary.Bytes += int64(len(block))
	}

	return summary, nil
}

// Index renders the index section for already relative paths.
func (w *Writer) Index(rels []string) string {
	var b strings.Builder
	b.WriteString(w.format.IndexHeader)
	b.WriteString("\n\n")
	for i, rel := range rels {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rel)
	}
	b.WriteString("\n\n")
	return b.String()
}

// Block renders the header and content of one file.
func (w *Writer) Block(rel, content string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(w.format.RuleLine)
	b.WriteString("\n")
	b.WriteString(rel)
	b.WriteString("\n")
	b.WriteString(w.format.RuleLine)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	return b.String()
}

func (w *Writer) relative(path string) (string, error) {
	rel, err := filepath.Rel(w.base, path)
	if err != nil {
		return "", serr.NewFileError("cannot make path relative to base", path, serr.InvalidPath, err)
	}
	return rel, nil
}
