package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// File is one fixture entry. A Path ending in "/" creates a directory.
type File struct {
	Path    string
	Content string
}

// CreateTree creates fixture files and directories under root in the given order.
func CreateTree(t *testing.T, root string, files ...File) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.Path))
		if f.Path[len(f.Path)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(f.Content), 0644))
	}
}

// ScenarioTree builds the reference project: a.txt, node_modules/x.js and src/b.txt.
func ScenarioTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	CreateTree(t, root,
		File{Path: "a.txt", Content: "hi"},
		File{Path: "node_modules/x.js", Content: "module.exports = 1"},
		File{Path: "src/b.txt", Content: "yo"},
	)
	return root
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
