package fsprobe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pycoding/pycoding/internal/adapters/outbound/fsprobe"
	"github.com/pycoding/pycoding/internal/domain/venv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ venv.Prober = fsprobe.OSProber{}

func TestOSProber(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "python")
	require.NoError(t, os.WriteFile(file, []byte("#!/bin/sh\n"), 0o755))

	p := fsprobe.New()
	assert.True(t, p.IsDir(dir))
	assert.False(t, p.IsFile(dir))
	assert.True(t, p.IsFile(file))
	assert.False(t, p.IsDir(file))
	assert.False(t, p.IsDir(filepath.Join(dir, "missing")))
	assert.False(t, p.IsFile(filepath.Join(dir, "missing")))
	assert.False(t, p.IsDir(""))
	assert.False(t, p.IsFile(""))
}

func TestOSProber_SymlinkLoop(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.Symlink(b, a))
	require.NoError(t, os.Symlink(a, b))

	p := fsprobe.New()
	assert.False(t, p.IsDir(a))
	assert.False(t, p.IsFile(a))
}

func TestOSProber_WithResolver(t *testing.T) {
	home := t.TempDir()
	env := filepath.Join(home, ".virtualenvs", "app")
	require.NoError(t, os.MkdirAll(filepath.Join(env, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env, "bin", "flake8"), []byte(""), 0o755))

	r := venv.NewResolver(venv.NewSnapshot(venv.SnapshotOptions{Home: home, SystemDirs: []string{}}), fsprobe.New())
	got := r.ResolveVenvPath(venv.Query{ProjectName: "app", ProjectBasePath: filepath.Join(home, "src", "app")})
	require.True(t, got.Found())
	assert.Equal(t, env, got.VenvPath)
	assert.Equal(t, filepath.Join(env, "bin", "flake8"), r.ResolveExecutable("flake8", got, true))
	assert.Equal(t, "black", r.ResolveExecutable("black", got, true))
}
