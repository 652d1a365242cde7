package walk_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codextract/internal/config"
	serr "codextract/internal/errors"
	"codextract/internal/filter"
	"codextract/internal/fsys"
	"codextract/internal/walk"
	"codextract/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalker(t *testing.T, lister fsys.Lister) *walk.Walker {
	t.Helper()
	policy, err := filter.New(config.New().Filter)
	require.NoError(t, err)
	return walk.New(lister, policy)
}

func TestWalkScenario(t *testing.T) {
	mem := testutils.NewMemFS(t, "/proj").
		File("/proj/a.txt", "hi").
		File("/proj/node_modules/x.js", "x").
		File("/proj/src/b.txt", "yo")

	files, err := newWalker(t, mem).Walk("/proj", 0, walk.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/a.txt", "/proj/src/b.txt"}, files)

	// Ignored directories are never listed
	assert.NotContains(t, mem.Listed, "/proj/node_modules")
}

func TestWalkPreservesListingOrder(t *testing.T) {
	mem := testutils.NewMemFS(t, "/proj").
		File("/proj/zeta.go", "").
		File("/proj/lib/inner.go", "").
		File("/proj/alpha.go", "").
		File("/proj/lib/deeper/last.go", "").
		File("/proj/lib/after.go", "")

	w := newWalker(t, mem)
	files, err := w.Walk("/proj", 0, walk.Unbounded)
	require.NoError(t, err)

	// Subdirectories are expanded where the listing reaches them, nothing is sorted
	assert.Equal(t, []string{
		"/proj/zeta.go",
		"/proj/lib/inner.go",
		"/proj/lib/deeper/last.go",
		"/proj/lib/after.go",
		"/proj/alpha.go",
	}, files)

	again, err := w.Walk("/proj", 0, walk.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestWalkDepthBound(t *testing.T) {
	mem := testutils.NewMemFS(t, "/proj").
		File("/proj/root.txt", "").
		File("/proj/one/one.txt", "").
		File("/proj/one/two/two.txt", "")
	w := newWalker(t, mem)

	tests := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{"depth 0 keeps root files only", 0, []string{"/proj/root.txt"}},
		{"depth 1 includes one level down", 1, []string{"/proj/root.txt", "/proj/one/one.txt"}},
		{"depth 2 includes everything", 2, []string{"/proj/root.txt", "/proj/one/one.txt", "/proj/one/two/two.txt"}},
		{"unbounded", walk.Unbounded, []string{"/proj/root.txt", "/proj/one/one.txt", "/proj/one/two/two.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := w.Walk("/proj", 0, tt.maxDepth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, files)
		})
	}

	t.Run("start depth beyond max returns nothing", func(t *testing.T) {
		mem.Listed = nil
		files, err := w.Walk("/proj", 3, 2)
		require.NoError(t, err)
		assert.Empty(t, files)
		assert.Empty(t, mem.Listed)
	})

	t.Run("directories beyond max are not listed", func(t *testing.T) {
		mem.Listed = nil
		_, err := w.Walk("/proj", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"/proj"}, mem.Listed)
	})
}

func TestWalkSkipsIgnoredFilesAndOtherEntries(t *testing.T) {
	mem := testutils.NewMemFS(t, "/proj").
		File("/proj/logo.PNG", "").
		File("/proj/package-lock.json", "").
		File("/proj/dist/bundle.js", "").
		Symlink("/proj/link").
		File("/proj/index.ts", "")

	files, err := newWalker(t, mem).Walk("/proj", 0, walk.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/index.ts"}, files)
}

func TestWalkListingFailureAborts(t *testing.T) {
	mem := testutils.NewMemFS(t, "/proj").
		File("/proj/a.txt", "").
		File("/proj/locked/secret.txt", "").
		File("/proj/z.txt", "")
	mem.ListErr["/proj/locked"] = os.ErrPermission

	files, err := newWalker(t, mem).Walk("/proj", 0, walk.Unbounded)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.True(t, serr.IsAccessError(err))
	assert.True(t, errors.Is(err, os.ErrPermission))

	var fileErr *serr.FileError
	require.True(t, serr.As(err, &fileErr))
	assert.Equal(t, "/proj/locked", fileErr.Path())
}

func TestWalkOnDisk(t *testing.T) {
	root := testutils.ScenarioTree(t)
	w := newWalker(t, fsys.OS{})

	files, err := w.Walk(root, 0, walk.Unbounded)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "src", "b.txt"),
	}, files)

	again, err := w.Walk(root, 0, walk.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, files, again)

	t.Run("missing root", func(t *testing.T) {
		_, err := w.Walk(filepath.Join(root, "gone"), 0, walk.Unbounded)
		require.Error(t, err)
		assert.True(t, serr.IsAccessError(err))
	})

	t.Run("relative root becomes absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		t.Cleanup(func() { os.Chdir(wd) })
		require.NoError(t, os.Chdir(root))

		files, err := w.Walk(".", 0, 0)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.True(t, filepath.IsAbs(files[0]))
	})
}
