package venv_test

import (
	"testing"

	"github.com/pycoding/pycoding/internal/domain/venv"
	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot_WithoutPyenv(t *testing.T) {
	s := venv.NewSnapshot(venv.SnapshotOptions{Home: "/home/dev", Known: []string{"b", "a", ""}})
	assert.Equal(t, "/home/dev/.pyenv", s.PyenvRoot)
	assert.Equal(t, "/home/dev/.virtualenvs", s.ManagedDir)
	assert.Empty(t, s.AlternateDir)
	assert.Equal(t, []string{"a", "b"}, s.Known)
	assert.Equal(t, venv.DefaultSystemDirs, s.SystemDirs)
	assert.True(t, s.IsKnown("a"))
	assert.False(t, s.IsKnown("system"))
	assert.False(t, s.IsKnown(""))
}

func TestNewSnapshot_WithPyenv(t *testing.T) {
	s := venv.NewSnapshot(venv.SnapshotOptions{
		Home:      "/home/dev",
		PyenvRoot: "/opt/pyenv",
		HasPyenv:  true,
		Known:     []string{"3.12.1", "app"},
	})
	assert.Equal(t, "/opt/pyenv/versions", s.ManagedDir)
	assert.Equal(t, "/home/dev/.virtualenvs", s.AlternateDir)
	assert.True(t, s.IsKnown("system"))
	assert.True(t, s.IsKnown("app"))
	assert.Equal(t, []string{"3.12.1", "app", "system"}, s.Known)
}

func TestNewSnapshot_CustomSystemDirs(t *testing.T) {
	s := venv.NewSnapshot(venv.SnapshotOptions{SystemDirs: []string{"/bin"}})
	assert.Equal(t, []string{"/bin"}, s.SystemDirs)
	assert.Empty(t, s.ManagedDir)
	assert.Empty(t, s.AlternateDir)
}

func TestNewSnapshot_DefaultSystemDirsCopied(t *testing.T) {
	s := venv.NewSnapshot(venv.SnapshotOptions{})
	s.SystemDirs[0] = "/changed"
	assert.Equal(t, "/usr/local/bin", venv.DefaultSystemDirs[0])
}
