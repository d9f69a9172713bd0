package domain

import (
	"context"

	"github.com/pycoding/pycoding/internal/domain/docstring"
	"github.com/pycoding/pycoding/internal/domain/venv"
)

// LintRequest describes one linter invocation.
type LintRequest struct {
	Linter     string
	Executable string
	File       string
	Content    []byte
	LineWidth  int
	WorkDir    string
}

// Linter runs an external linter and returns its findings with 0-based lines.
type Linter interface {
	Lint(ctx context.Context, req LintRequest) ([]Diagnostic, error)
}

// SyntaxChecker reports parse errors in Python source.
type SyntaxChecker interface {
	Check(ctx context.Context, content []byte) ([]Diagnostic, error)
}

// ConfigLoader loads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ProjectDetector inspects a directory for Python project markers.
type ProjectDetector interface {
	Detect(projectPath string) (ProjectInfo, error)
}

// SnapshotProvider captures where environments live on the current machine.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (venv.Snapshot, error)
}

// FunctionLocator finds the definition enclosing a 0-based line of Python source.
type FunctionLocator interface {
	FunctionAt(ctx context.Context, content []byte, line int) (*docstring.Function, error)
}

// FileScanner expands paths into the Python files they contain.
type FileScanner interface {
	PythonFiles(root string, paths []string, excludePaths ...string) ([]string, error)
}

// TestCollector runs a test library's collection pass and returns its raw output.
type TestCollector interface {
	Collect(ctx context.Context, python, testLib, workDir string) (string, error)
}

// FormatRequest describes one formatter invocation.
type FormatRequest struct {
	Formatter  string
	Executable string
	Content    []byte
	LineWidth  int
	WorkDir    string
}

// Formatter pipes source through an external formatter.
type Formatter interface {
	Format(ctx context.Context, req FormatRequest) ([]byte, error)
}

// LintCache stores merged lint reports keyed by content fingerprint.
type LintCache interface {
	Get(key string) (*LintReport, bool)
	Put(key string, report *LintReport)
	Invalidate(file string)
}

// LintHistory persists lint run summaries per project.
type LintHistory interface {
	Save(projectPath string, entry LintHistoryEntry) error
	Load(projectPath string) ([]LintHistoryEntry, error)
}

// GitInfo reads repository metadata.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
	Root(path string) (string, error)
}
