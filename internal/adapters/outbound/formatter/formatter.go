// Package formatter pipes Python source through an external formatter.
package formatter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/pycoding/pycoding/internal/domain"
)

var (
	// ErrFormatterUnavailable indicates the formatter executable could not be found.
	ErrFormatterUnavailable = domain.ErrFormatterUnavailable

	// ErrUnknownFormatter indicates no command exists for the formatter name.
	ErrUnknownFormatter = errors.New("unknown formatter")
)

const defaultTimeout = 30 * time.Second

// Args returns the command line that makes name read stdin and write the
// formatted source to stdout.
func Args(name string, lineWidth int) ([]string, error) {
	width := strconv.Itoa(lineWidth)
	switch name {
	case "black":
		return []string{"-q", "-l", width, "-"}, nil
	case "autopep8":
		return []string{"--max-line-length", width, "-"}, nil
	case "yapf":
		return []string{"--style={based_on_style: pep8, column_limit: " + width + "}"}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormatter, name)
	}
}

// Runner implements domain.Formatter.
type Runner struct {
	timeout time.Duration
}

func New() *Runner {
	return &Runner{timeout: defaultTimeout}
}

// NewWithTimeout returns a Runner that kills the formatter after d.
func NewWithTimeout(d time.Duration) *Runner {
	return &Runner{timeout: d}
}

// Format returns req.Content as rewritten by req.Formatter.
func (r *Runner) Format(ctx context.Context, req domain.FormatRequest) ([]byte, error) {
	width := req.LineWidth
	if width <= 0 {
		width = domain.DefaultLineWidth
	}
	args, err := Args(req.Formatter, width)
	if err != nil {
		return nil, err
	}
	exe := req.Executable
	if exe == "" {
		exe = req.Formatter
	}
	if _, err := exec.LookPath(exe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatterUnavailable, exe)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, exe, args...)
	cmd.Dir = req.WorkDir
	cmd.Stdin = bytes.NewReader(req.Content)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %s", req.Formatter, r.timeout)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("running %s: %w: %s", req.Formatter, err, bytes.TrimSpace(stderr.Bytes()))
	}

	slog.Debug("format completed",
		slog.String("formatter", req.Formatter),
		slog.Duration("duration", time.Since(start)),
	)
	return stdout.Bytes(), nil
}
