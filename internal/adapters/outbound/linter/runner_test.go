package linter_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pycoding/pycoding/internal/adapters/outbound/linter"
	"github.com/pycoding/pycoding/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLinter(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures")
	}
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return p
}

func TestRunner_Flake8ReadsStdin(t *testing.T) {
	exe := fakeLinter(t, "flake8", `if grep -q needle; then
  echo "main.py:2:5: E225 missing whitespace around operator"
  echo "main.py:2:1: W291 trailing whitespace"
  exit 1
fi`)
	ds, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{
		Linter:     "flake8",
		Executable: exe,
		File:       "main.py",
		Content:    []byte("x=1\nneedle =2\n"),
		LineWidth:  79,
		WorkDir:    t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 1, ds[0].Line)
	assert.Equal(t, 4, ds[0].Column)
	assert.Equal(t, domain.SeverityError, ds[0].Severity)
	assert.Equal(t, domain.SeverityWarning, ds[1].Severity)
}

func TestRunner_PylintGetsFilePath(t *testing.T) {
	exe := fakeLinter(t, "pylint", `for last; do :; done
printf '[{"type":"warning","line":3,"column":0,"message":"%s","message-id":"W0612"}]' "$last"`)
	ds, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{
		Linter:     "pylint",
		Executable: exe,
		File:       "/tmp/project/mod.py",
		WorkDir:    t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "[W0612] /tmp/project/mod.py", ds[0].Message)
	assert.Equal(t, 2, ds[0].Line)
}

func TestRunner_Unavailable(t *testing.T) {
	_, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{
		Linter:     "flake8",
		Executable: filepath.Join(t.TempDir(), "missing-flake8"),
		File:       "a.py",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, linter.ErrLinterUnavailable))
}

func TestRunner_UnknownLinter(t *testing.T) {
	_, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{Linter: "mypy"})
	assert.ErrorIs(t, err, linter.ErrUnknownLinter)
}

func TestRunner_FailureWithoutOutput(t *testing.T) {
	exe := fakeLinter(t, "flake8", `echo "flake8: cannot load plugin" >&2
exit 2`)
	_, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{
		Linter: "flake8", Executable: exe, File: "a.py", WorkDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, linter.ErrLinterFailed)
	assert.Contains(t, err.Error(), "cannot load plugin")
}

func TestRunner_Timeout(t *testing.T) {
	exe := fakeLinter(t, "ruff", "exec sleep 5")
	_, err := linter.NewRunner(linter.WithTimeout(100*time.Millisecond)).Lint(context.Background(), domain.LintRequest{
		Linter: "ruff", Executable: exe, File: "a.py", WorkDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, linter.ErrLinterTimeout)
}

func TestRunner_ParseFailure(t *testing.T) {
	exe := fakeLinter(t, "ruff", `cat >/dev/null; echo "not json"`)
	_, err := linter.NewRunner().Lint(context.Background(), domain.LintRequest{
		Linter: "ruff", Executable: exe, File: "a.py", WorkDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, linter.ErrParseOutput)
}

func TestAvailable(t *testing.T) {
	assert.False(t, linter.Available(""))
	assert.False(t, linter.Available(filepath.Join(t.TempDir(), "nope")))
	assert.True(t, linter.Available(fakeLinter(t, "ok", "exit 0")))
}
