package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/diagnostics"
)

// LintService orchestrates the lint pipeline:
// config → resolve linter → cache → lint → syntax check → merge per line → cache.
type LintService struct {
	env     *EnvService
	linter  domain.Linter
	syntax  domain.SyntaxChecker
	scanner domain.FileScanner
	cache   domain.LintCache
	history domain.LintHistory
	git     domain.GitInfo
}

// LintOption configures optional collaborators of a LintService.
type LintOption func(*LintService)

// WithCache stores reports keyed by content so unchanged files are not relinted.
func WithCache(c domain.LintCache) LintOption {
	return func(s *LintService) { s.cache = c }
}

// WithHistory enables Record.
func WithHistory(h domain.LintHistory, git domain.GitInfo) LintOption {
	return func(s *LintService) {
		s.history = h
		s.git = git
	}
}

func NewLintService(
	env *EnvService,
	linter domain.Linter,
	syntax domain.SyntaxChecker,
	scanner domain.FileScanner,
	opts ...LintOption,
) *LintService {
	s := &LintService{
		env:     env,
		linter:  linter,
		syntax:  syntax,
		scanner: scanner,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LintFile lints one file of the project.
func (s *LintService) LintFile(ctx context.Context, projectPath, file string) (*domain.LintReport, error) {
	env, err := s.env.Environment(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	return s.lint(ctx, env, absFrom(env.ProjectPath, file))
}

// LintPaths lints every Python file under paths with at most jobs linters
// running at once. Reports are returned in file order.
func (s *LintService) LintPaths(ctx context.Context, projectPath string, paths []string, jobs int) ([]*domain.LintReport, error) {
	env, err := s.env.Environment(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	files, err := s.scanner.PythonFiles(env.ProjectPath, paths, env.Config.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	reports := make([]*domain.LintReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range files {
		g.Go(func() error {
			r, err := s.lint(gctx, env, f)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Invalidate drops cached reports for file.
func (s *LintService) Invalidate(file string) {
	if s.cache != nil {
		s.cache.Invalidate(file)
	}
}

// Record appends a summary of report to the project's lint history.
func (s *LintService) Record(projectPath string, report *domain.LintReport) error {
	if s.history == nil {
		return errors.New("lint history is not configured")
	}
	entry := domain.LintHistoryEntry{
		File:    report.File,
		Linter:  report.Linter,
		Summary: report.Summary,
	}
	if s.git != nil {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			entry.CommitHash = hash
		}
	}
	if err := s.history.Save(projectPath, entry); err != nil {
		return fmt.Errorf("saving lint history: %w", err)
	}
	return nil
}

// History returns the recorded lint runs of the project.
func (s *LintService) History(projectPath string) ([]domain.LintHistoryEntry, error) {
	if s.history == nil {
		return nil, errors.New("lint history is not configured")
	}
	return s.history.Load(projectPath)
}

func (s *LintService) lint(ctx context.Context, env *Environment, file string) (*domain.LintReport, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	name := env.Config.EffectiveLinter()
	width := env.Config.EffectiveLineWidth()
	key := domain.LintCacheKey(file, content, name, width)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	start := time.Now()
	report := &domain.LintReport{File: file, Linter: name}

	var lintDiags []domain.Diagnostic
	if exe := env.Executable(name); exe != "" {
		lintDiags, err = s.linter.Lint(ctx, domain.LintRequest{
			Linter:     name,
			Executable: exe,
			File:       file,
			Content:    content,
			LineWidth:  width,
			WorkDir:    env.ProjectPath,
		})
		switch {
		case errors.Is(err, domain.ErrLinterUnavailable):
			slog.Debug("linter unavailable", slog.String("linter", name), slog.String("executable", exe))
		case err != nil:
			return nil, fmt.Errorf("linting %s: %w", file, err)
		default:
			report.LinterAvailable = true
		}
	}

	syntaxDiags, err := s.syntax.Check(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("syntax check failed", slog.String("file", file), slog.String("error", err.Error()))
	}

	report.Diagnostics = diagnostics.Merge(lintDiags, syntaxDiags)
	report.Summary = diagnostics.Summarize(report.Diagnostics)
	report.Duration = time.Since(start)

	// Syntax-only reports stay uncached so a linter installed later is picked up.
	if s.cache != nil && report.LinterAvailable {
		s.cache.Put(key, report)
	}
	return report, nil
}

func absFrom(base, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(base, file)
}
