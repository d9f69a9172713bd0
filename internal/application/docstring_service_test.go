package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pycoding/pycoding/internal/adapters/outbound/pysyntax"
	"github.com/pycoding/pycoding/internal/application"
	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/docstring"
)

func sampleProject(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", "pyproject"))
	require.NoError(t, err)
	return p
}

func TestDocstringService_Generate(t *testing.T) {
	svc := application.NewDocstringService(&fakeConfigLoader{cfg: domain.DefaultConfig()}, pysyntax.NewLocator())

	res, err := svc.Generate(context.Background(), sampleProject(t), "sample/core.py", 5, "")
	require.NoError(t, err)

	assert.Equal(t, docstring.StyleGoogle, res.Style)
	assert.Equal(t, 5, res.InsertLine)
	assert.Equal(t, "add", res.Function.Name)
	assert.Equal(t, `    """About *add*.

    Args:
        a (int): ...
        b (int): ... DEFAULT: 2

    Returns:
        int: ...
    """
`, res.Docstring)
}

func TestDocstringService_StyleFromConfigAndOverride(t *testing.T) {
	svc := application.NewDocstringService(&fakeConfigLoader{cfg: domain.ProjectConfig{DocstringStyle: "numpy"}}, pysyntax.NewLocator())
	ctx := context.Background()

	res, err := svc.Generate(ctx, sampleProject(t), "sample/core.py", 13, "")
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleNumpy, res.Style)
	assert.Contains(t, res.Docstring, "Raises\n        ------")

	res, err = svc.Generate(ctx, sampleProject(t), "sample/core.py", 13, "rest")
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleReST, res.Style)
	assert.Contains(t, res.Docstring, ":raises ValueError: ...")

	_, err = svc.Generate(ctx, sampleProject(t), "sample/core.py", 13, "epydoc")
	assert.Error(t, err)
}

func TestDocstringService_NoDefinition(t *testing.T) {
	svc := application.NewDocstringService(&fakeConfigLoader{}, pysyntax.NewLocator())

	_, err := svc.Generate(context.Background(), sampleProject(t), "sample/core.py", 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no function or class encloses line 1")
}
