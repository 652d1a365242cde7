package fsys_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	serr "codextract/internal/errors"
	"codextract/internal/fsys"
	"codextract/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSListEntries(t *testing.T) {
	root := testutils.ScenarioTree(t)
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "link")))

	entries, err := fsys.OS{}.ListEntries(root)
	require.NoError(t, err)

	kinds := map[string]fsys.Kind{}
	for _, e := range entries {
		assert.Equal(t, filepath.Join(root, e.Name), e.Path)
		kinds[e.Name] = e.Kind
	}
	assert.Equal(t, map[string]fsys.Kind{
		"a.txt":        fsys.File,
		"node_modules": fsys.Directory,
		"src":          fsys.Directory,
		"link":         fsys.Other,
	}, kinds)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "link", "node_modules", "src"}, names)
}

func TestOSListMissingDirectory(t *testing.T) {
	_, err := fsys.OS{}.ListEntries(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, serr.IsAccessError(err))

	var fe *serr.FileError
	require.True(t, serr.As(err, &fe))
	assert.Equal(t, serr.DirectoryListFailed, fe.Kind())
}

func TestOSArtifactLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	fs := fsys.OS{}

	// Appending needs the file to exist first
	err := fs.AppendText(path, "early")
	assert.True(t, serr.IsWriteError(err))

	require.NoError(t, fs.CreateOrTruncate(path))
	require.NoError(t, fs.AppendText(path, "one "))
	require.NoError(t, fs.AppendText(path, "two"))

	text, err := fs.ReadFileText(path)
	require.NoError(t, err)
	assert.Equal(t, "one two", text)

	require.NoError(t, fs.CreateOrTruncate(path))
	text, err = fs.ReadFileText(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestOSCreateInMissingDirectory(t *testing.T) {
	err := fsys.OS{}.CreateOrTruncate(filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.True(t, serr.IsWriteError(err))
}

func TestOSReadMissingFile(t *testing.T) {
	_, err := fsys.OS{}.ReadFileText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, serr.IsAccessError(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "directory", fsys.Directory.String())
	assert.Equal(t, "file", fsys.File.String())
	assert.Equal(t, "other", fsys.Other.String())
}
