// Package linter runs external Python linters and converts their output
// into diagnostics with 0-based lines.
package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pycoding/pycoding/internal/domain"
)

// Runner implements domain.Linter by spawning the linter executable.
type Runner struct {
	timeout time.Duration
}

type Option func(*Runner)

// WithTimeout overrides every linter's default timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available reports whether executable can be started.
func Available(executable string) bool {
	if executable == "" {
		return false
	}
	_, err := exec.LookPath(executable)
	return err == nil
}

// Lint runs req.Linter over req.File. Stdin linters are fed req.Content.
func (r *Runner) Lint(ctx context.Context, req domain.LintRequest) ([]domain.Diagnostic, error) {
	cfg, ok := ConfigFor(req.Linter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLinter, req.Linter)
	}
	exe := req.Executable
	if exe == "" {
		exe = cfg.Name
	}
	if !Available(exe) {
		return nil, NewLinterError(cfg.Name, ErrLinterUnavailable).WithOutput(exe)
	}

	start := time.Now()
	output, err := r.execute(ctx, cfg, exe, req)
	if err != nil {
		return nil, err
	}

	var ds []domain.Diagnostic
	switch cfg.Format {
	case formatPylintJSON:
		ds, err = ParsePylintJSON(output)
	case formatRuffJSON:
		ds, err = ParseRuffJSON(output)
	default:
		ds = ParseText(cfg.Name, output)
	}
	if err != nil {
		return nil, NewLinterError(cfg.Name, err)
	}

	slog.Debug("lint completed",
		slog.String("file", req.File),
		slog.String("linter", cfg.Name),
		slog.Duration("duration", time.Since(start)),
		slog.Int("diagnostics", len(ds)),
	)
	return ds, nil
}

func (r *Runner) execute(ctx context.Context, cfg Config, exe string, req domain.LintRequest) ([]byte, error) {
	timeout := r.timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	width := req.LineWidth
	if width <= 0 {
		width = domain.DefaultLineWidth
	}
	cmd := exec.CommandContext(cmdCtx, exe, cfg.Args(req.File, width)...)
	cmd.Dir = req.WorkDir
	if cmd.Dir == "" {
		cmd.Dir = filepath.Dir(req.File)
	}
	if cfg.Stdin {
		cmd.Stdin = bytes.NewReader(req.Content)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, NewLinterError(cfg.Name, ErrLinterTimeout).WithOutput(stderr.String())
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Linters exit non-zero when they report findings. Only treat it as a
	// failure when nothing was written to stdout.
	if err != nil && stdout.Len() == 0 {
		slog.Warn("linter failed",
			slog.String("linter", cfg.Name),
			slog.String("error", err.Error()),
			slog.String("stderr", stderr.String()),
		)
		return nil, NewLinterError(cfg.Name, ErrLinterFailed).WithOutput(stderr.String())
	}
	return stdout.Bytes(), nil
}
