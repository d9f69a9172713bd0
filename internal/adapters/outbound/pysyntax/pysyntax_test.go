package pysyntax_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pycoding/pycoding/internal/adapters/outbound/pysyntax"
	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/docstring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "testdata", "pyproject", "sample", name))
	require.NoError(t, err)
	return data
}

func TestChecker_ValidSource(t *testing.T) {
	ds, err := pysyntax.NewChecker().Check(context.Background(), fixture(t, "core.py"))
	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestChecker_BrokenSource(t *testing.T) {
	ds, err := pysyntax.NewChecker().Check(context.Background(), fixture(t, "broken.py"))
	require.NoError(t, err)
	require.NotEmpty(t, ds)
	for _, d := range ds {
		assert.Equal(t, domain.SeverityFatal, d.Severity)
		assert.Equal(t, "syntax", d.Source)
		assert.GreaterOrEqual(t, d.Line, 0)
		assert.LessOrEqual(t, d.Line, 2)
	}
	assert.Regexp(t, `^(syntax error|missing )`, ds[0].Message)
}

func TestChecker_ReportsErrorLine(t *testing.T) {
	src := []byte("x = 1\ny = 2\nz = (3 +\n")
	ds, err := pysyntax.NewChecker().Check(context.Background(), src)
	require.NoError(t, err)
	require.NotEmpty(t, ds)
	for _, d := range ds {
		assert.Equal(t, domain.SeverityFatal, d.Severity)
		assert.Equal(t, "E999", d.Code)
	}
}

func TestChecker_ColumnsCountCharacters(t *testing.T) {
	check := func(src string) [][2]int {
		ds, err := pysyntax.NewChecker().Check(context.Background(), []byte(src))
		require.NoError(t, err)
		require.NotEmpty(t, ds)
		pos := make([][2]int, 0, len(ds))
		for _, d := range ds {
			pos = append(pos, [2]int{d.Line, d.Column})
		}
		return pos
	}

	ascii := check("x = 1\ns = 'ab' + )\n")
	accented := check("x = 1\ns = 'éé' + )\n")
	assert.Equal(t, ascii, accented)
}

func TestChecker_Empty(t *testing.T) {
	ds, err := pysyntax.NewChecker().Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestLocator_Function(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 5)
	require.NoError(t, err)
	require.NotNil(t, fn)

	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, docstring.KindFunction, fn.Kind)
	assert.Equal(t, []docstring.Param{
		{Name: "a", Annotation: "int"},
		{Name: "b", Annotation: "int", Default: "2"},
	}, fn.Params)
	assert.Equal(t, "int", fn.Returns)
	assert.False(t, fn.IsMethod)
	assert.False(t, fn.IsGenerator)
	assert.Equal(t, 5, fn.BodyLine)
	assert.Equal(t, "    ", fn.Indent)
}

func TestLocator_DefinitionLine(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 4)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, "add", fn.Name)
}

func TestLocator_Method(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 13)
	require.NoError(t, err)
	require.NotNil(t, fn)

	assert.Equal(t, "greet", fn.Name)
	assert.True(t, fn.IsMethod)
	assert.Equal(t, []docstring.Param{
		{Name: "self"},
		{Name: "name"},
		{Name: "args", Star: 1},
		{Name: "kwargs", Star: 2},
	}, fn.Params)
	assert.Equal(t, []string{"ValueError"}, fn.Raises)
	assert.Equal(t, 12, fn.BodyLine)
	assert.Equal(t, "        ", fn.Indent)
}

func TestLocator_Class(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 9)
	require.NoError(t, err)
	require.NotNil(t, fn)

	assert.Equal(t, "Greeter", fn.Name)
	assert.Equal(t, docstring.KindClass, fn.Kind)
	assert.Equal(t, []string{"object"}, fn.Bases)
	assert.Equal(t, []docstring.Param{{Name: "greeting", Default: `"hello"`}}, fn.Attributes)
	assert.Equal(t, 9, fn.BodyLine)
}

func TestLocator_Generator(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 19)
	require.NoError(t, err)
	require.NotNil(t, fn)

	assert.Equal(t, "numbers", fn.Name)
	assert.True(t, fn.IsGenerator)
	assert.Equal(t, []docstring.Param{{Name: "limit", Default: "10"}}, fn.Params)
}

func TestLocator_Decorators(t *testing.T) {
	src := []byte(`class Repo:
    @staticmethod
    @cache.memoize(timeout=5)
    def load(key: str) -> Iterator[str]:
        def inner():
            yield key
        raise KeyError(key)
`)
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), src, 1)
	require.NoError(t, err)
	require.NotNil(t, fn)

	assert.Equal(t, "load", fn.Name)
	assert.Equal(t, []string{"staticmethod", "cache.memoize"}, fn.Decorators)
	assert.True(t, fn.IsMethod)
	assert.False(t, fn.IsGenerator, "yield in a nested def does not count")
	assert.Equal(t, []string{"KeyError"}, fn.Raises)
	assert.Equal(t, "Iterator[str]", fn.Returns)

	inner, err := pysyntax.NewLocator().FunctionAt(context.Background(), src, 5)
	require.NoError(t, err)
	require.NotNil(t, inner)
	assert.Equal(t, "inner", inner.Name)
	assert.True(t, inner.IsGenerator)
	assert.False(t, inner.IsMethod)
}

func TestLocator_ModuleLevel(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 0)
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), -1)
	require.NoError(t, err)
	assert.Nil(t, fn)
}

func TestLocator_RenderRoundTrip(t *testing.T) {
	fn, err := pysyntax.NewLocator().FunctionAt(context.Background(), fixture(t, "core.py"), 5)
	require.NoError(t, err)
	require.NotNil(t, fn)

	got := docstring.Render(*fn, docstring.StyleGoogle, fn.Indent)
	assert.Contains(t, got, `    """About *add*.`)
	assert.Contains(t, got, "a (int): ...")
	assert.Contains(t, got, "int: ...")
}
