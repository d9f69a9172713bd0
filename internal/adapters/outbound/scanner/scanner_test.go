package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pycoding/pycoding/internal/adapters/outbound/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/pyproject"

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, r)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x = 1\n"), 0o644))
	}
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestFileScanner_PythonFiles_Fixture(t *testing.T) {
	files, err := scanner.New().PythonFiles(fixtureDir, nil)
	require.NoError(t, err)

	abs, err := filepath.Abs(fixtureDir)
	require.NoError(t, err)
	got := relAll(t, abs, files)
	assert.Contains(t, got, "sample/core.py")
	assert.Contains(t, got, "tests/test_core.py")
	for _, f := range got {
		assert.NotContains(t, f, "venv/")
	}
}

func TestFileScanner_SkipsToolDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"app/main.py",
		"app/types.pyi",
		"app/README.md",
		".venv/lib/site.py",
		"venv/lib/site.py",
		".git/hooks/x.py",
		"app/__pycache__/main.py",
		"node_modules/pkg/x.py",
		"build/gen.py",
		"docs/conf.py",
	)

	files, err := scanner.New().PythonFiles(root, nil, "build", "docs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"app/main.py", "app/types.pyi"}, relAll(t, root, files))
}

func TestFileScanner_ExcludeNestedPath(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "app/gen/x.py", "app/core.py", "gen/keep.py")

	files, err := scanner.New().PythonFiles(root, nil, "app/gen")
	require.NoError(t, err)
	assert.Equal(t, []string{"app/core.py", "gen/keep.py"}, relAll(t, root, files))
}

func TestFileScanner_ExplicitPathsKeepOrder(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.py", "a/one.py", "a/two.py", "script")

	files, err := scanner.New().PythonFiles(root, []string{"b.py", "a", "script", "b.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.py", "a/one.py", "a/two.py", "script"}, relAll(t, root, files))
}

func TestFileScanner_MissingPath(t *testing.T) {
	_, err := scanner.New().PythonFiles(t.TempDir(), []string{"nope.py"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}

func TestIsPythonFile(t *testing.T) {
	assert.True(t, scanner.IsPythonFile("a.py"))
	assert.True(t, scanner.IsPythonFile("a.pyi"))
	assert.False(t, scanner.IsPythonFile("a.pyc"))
	assert.False(t, scanner.IsPythonFile("a.txt"))
}
