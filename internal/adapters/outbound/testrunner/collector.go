// Package testrunner runs a test library's collection pass.
package testrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

const defaultTimeout = 60 * time.Second

// unittestList prints discovered unittest cases in pytest's node id format.
const unittestList = `import os, unittest
def walk(suite):
    for t in suite:
        if isinstance(t, unittest.TestSuite):
            yield from walk(t)
        else:
            yield t
for t in walk(unittest.defaultTestLoader.discover(".")):
    parts = t.id().rsplit(".", 2)
    if len(parts) != 3 or type(t).__name__ == "_FailedTest":
        continue
    print(parts[0].replace(".", os.sep) + ".py::" + parts[1] + "::" + parts[2])
`

// Args returns the interpreter arguments that list the tests of testLib.
func Args(testLib string) ([]string, error) {
	switch testLib {
	case "pytest":
		return []string{"-m", "pytest", "--collect-only", "-p", "no:sugar", "-q"}, nil
	case "unittest":
		return []string{"-c", unittestList}, nil
	default:
		return nil, fmt.Errorf("unknown test library %q", testLib)
	}
}

// Collector implements domain.TestCollector.
type Collector struct {
	timeout time.Duration
}

func New() *Collector {
	return &Collector{timeout: defaultTimeout}
}

// NewWithTimeout returns a Collector that kills the collection pass after d.
func NewWithTimeout(d time.Duration) *Collector {
	return &Collector{timeout: d}
}

// Collect runs the collection pass in workDir and returns its stdout. A
// non-zero exit is tolerated when something was printed, since pytest exits
// 5 when nothing is collected and 2 on collection errors.
func (c *Collector) Collect(ctx context.Context, python, testLib, workDir string) (string, error) {
	args, err := Args(testLib)
	if err != nil {
		return "", err
	}
	if python == "" {
		python = "python"
	}

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, python, args...)
	cmd.Dir = workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return "", fmt.Errorf("collecting %s tests timed out after %s", testLib, c.timeout)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil && stdout.Len() == 0 {
		return "", fmt.Errorf("collecting %s tests: %w: %s", testLib, err, bytes.TrimSpace(stderr.Bytes()))
	}
	if err != nil {
		slog.Debug("test collection exited non-zero",
			slog.String("test_lib", testLib),
			slog.String("error", err.Error()),
		)
	}
	return stdout.String(), nil
}
