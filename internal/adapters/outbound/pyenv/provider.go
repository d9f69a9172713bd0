// Package pyenv builds a venv.Snapshot from the current machine.
package pyenv

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pycoding/pycoding/internal/domain/venv"
)

const listTimeout = 5 * time.Second

// Options overrides what the Provider reads from the process.
type Options struct {
	Getenv       func(string) string
	Home         string
	PyenvCommand string
	SystemDirs   []string
}

// Provider implements domain.SnapshotProvider.
type Provider struct {
	getenv       func(string) string
	home         string
	pyenvCommand string
	systemDirs   []string
}

// New creates a Provider reading the real environment and home directory.
func New() *Provider {
	home, _ := os.UserHomeDir()
	return NewWithOptions(Options{Home: home})
}

func NewWithOptions(opts Options) *Provider {
	p := &Provider{
		getenv:       opts.Getenv,
		home:         opts.Home,
		pyenvCommand: opts.PyenvCommand,
		systemDirs:   opts.SystemDirs,
	}
	if p.getenv == nil {
		p.getenv = os.Getenv
	}
	if p.pyenvCommand == "" {
		p.pyenvCommand = "pyenv"
	}
	return p
}

// Snapshot captures VIRTUAL_ENV, the pyenv root and the known environments.
// Known environments come from `pyenv versions` when pyenv is installed,
// else from listing the managed directory.
func (p *Provider) Snapshot(ctx context.Context) (venv.Snapshot, error) {
	root := p.getenv("PYENV_ROOT")
	if root == "" && p.home != "" {
		root = filepath.Join(p.home, ".pyenv")
	}
	hasPyenv := root != "" && isDir(root)

	opts := venv.SnapshotOptions{
		Home:       p.home,
		ActiveEnv:  strings.TrimSpace(p.getenv("VIRTUAL_ENV")),
		PyenvRoot:  root,
		HasPyenv:   hasPyenv,
		SystemDirs: p.systemDirs,
	}

	managed := venv.NewSnapshot(opts).ManagedDir
	if hasPyenv {
		known, err := p.pyenvVersions(ctx)
		if err != nil {
			slog.Debug("pyenv versions unavailable, listing directory",
				slog.String("dir", managed), slog.String("error", err.Error()))
			known = listDirs(managed)
		}
		opts.Known = known
	} else {
		opts.Known = listDirs(managed)
	}
	return venv.NewSnapshot(opts), nil
}

func (p *Provider) pyenvVersions(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, p.pyenvCommand, "versions", "--bare", "--skip-aliases").Output()
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, line := range strings.Split(string(out), "\n") {
		if v := strings.TrimSpace(line); v != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func listDirs(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
