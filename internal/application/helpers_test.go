package application_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pycoding/pycoding/internal/adapters/outbound/fsprobe"
	"github.com/pycoding/pycoding/internal/application"
	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/venv"
)

type fakeConfigLoader struct {
	cfg domain.ProjectConfig
	err error
}

func (f *fakeConfigLoader) Load(string) (domain.ProjectConfig, error) {
	return f.cfg, f.err
}

type fakeDetector struct {
	name string
}

func (f *fakeDetector) Detect(projectPath string) (domain.ProjectInfo, error) {
	name := f.name
	if name == "" {
		name = filepath.Base(projectPath)
	}
	return domain.ProjectInfo{Name: name, BasePath: projectPath, IsPython: true}, nil
}

type fakeSnapshots struct {
	snap  venv.Snapshot
	calls int
}

func (f *fakeSnapshots) Snapshot(context.Context) (venv.Snapshot, error) {
	f.calls++
	return f.snap, nil
}

type fakeLinter struct {
	mu    sync.Mutex
	reqs  []domain.LintRequest
	diags []domain.Diagnostic
	err   error
}

func (f *fakeLinter) Lint(_ context.Context, req domain.LintRequest) ([]domain.Diagnostic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Diagnostic(nil), f.diags...), nil
}

func (f *fakeLinter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

type fakeSyntax struct {
	diags []domain.Diagnostic
}

func (f *fakeSyntax) Check(context.Context, []byte) ([]domain.Diagnostic, error) {
	return append([]domain.Diagnostic(nil), f.diags...), nil
}

// machine is a fake home directory with virtualenvs plus a project tree.
type machine struct {
	home      string
	sysDir    string
	project   string
	snapshots *fakeSnapshots
}

func newMachine(t *testing.T) *machine {
	t.Helper()
	root := t.TempDir()
	m := &machine{
		home:    filepath.Join(root, "home"),
		sysDir:  filepath.Join(root, "usr", "bin"),
		project: filepath.Join(root, "work", "sample"),
	}
	for _, d := range []string{m.home, m.sysDir, m.project} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	m.snapshots = &fakeSnapshots{snap: venv.NewSnapshot(venv.SnapshotOptions{
		Home:       m.home,
		SystemDirs: []string{m.sysDir},
		Known:      []string{"sample"},
	})}
	return m
}

// venv creates ~/.virtualenvs/name with the given executables in bin.
func (m *machine) venv(t *testing.T, name string, exes ...string) string {
	t.Helper()
	dir := filepath.Join(m.home, ".virtualenvs", name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib", "python3.12", "site-packages"), 0o755))
	for _, e := range exes {
		writeFile(t, filepath.Join(dir, "bin", e), "#!/bin/sh\n")
	}
	return dir
}

func (m *machine) file(t *testing.T, rel, content string) string {
	t.Helper()
	p := filepath.Join(m.project, filepath.FromSlash(rel))
	writeFile(t, p, content)
	return p
}

func (m *machine) envService(cfg domain.ProjectConfig) *application.EnvService {
	return application.NewEnvService(&fakeConfigLoader{cfg: cfg}, &fakeDetector{}, m.snapshots, fsprobe.New())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	mode := os.FileMode(0o644)
	if strings.HasPrefix(content, "#!") {
		mode = 0o755
	}
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func boolPtr(b bool) *bool { return &b }
