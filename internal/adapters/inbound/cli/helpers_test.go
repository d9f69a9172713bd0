package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pycoding/pycoding/internal/adapters/inbound/cli"
)

// project is a Python project with a managed virtualenv under a fake home.
type project struct {
	home string
	dir  string
	bin  string
}

// newProject isolates the command from the host: HOME points at a temp dir,
// no venv is active and PYCODING_* overrides are cleared.
func newProject(t *testing.T) *project {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VIRTUAL_ENV", "")
	t.Setenv("PYENV_ROOT", "")
	for _, k := range []string{"PYCODING_VENV", "PYCODING_LINTER", "PYCODING_FORMATTER", "PYCODING_LINE_WIDTH"} {
		t.Setenv(k, "")
	}

	dir := filepath.Join(t.TempDir(), "webapp")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	bin := filepath.Join(home, ".virtualenvs", "webapp", "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	return &project{home: home, dir: dir, bin: bin}
}

func (p *project) file(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// tool installs an executable shell script into the project's venv.
func (p *project) tool(t *testing.T, name, script string) string {
	t.Helper()
	path := filepath.Join(p.bin, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "testdata", "pyproject"))
	require.NoError(t, err)
	return p
}
