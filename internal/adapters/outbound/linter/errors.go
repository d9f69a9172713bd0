package linter

import (
	"errors"
	"fmt"

	"github.com/pycoding/pycoding/internal/domain"
)

// Sentinel errors for the linter package.
var (
	// ErrLinterUnavailable indicates the linter executable could not be found.
	ErrLinterUnavailable = domain.ErrLinterUnavailable

	// ErrLinterTimeout indicates the linter exceeded its timeout.
	ErrLinterTimeout = errors.New("linter timeout")

	// ErrLinterFailed indicates the linter exited with an error and no output.
	ErrLinterFailed = errors.New("linter execution failed")

	// ErrParseOutput indicates the linter output could not be parsed.
	ErrParseOutput = errors.New("failed to parse linter output")

	// ErrUnknownLinter indicates no command configuration exists for the linter name.
	ErrUnknownLinter = errors.New("unknown linter")
)

// LinterError wraps a failure of one linter with its stderr output.
type LinterError struct {
	Linter string
	Err    error
	Output string
}

func (e *LinterError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Linter, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Linter, e.Err)
}

func (e *LinterError) Unwrap() error {
	return e.Err
}

func NewLinterError(linter string, err error) *LinterError {
	return &LinterError{Linter: linter, Err: err}
}

// WithOutput returns a copy of the error carrying output.
func (e *LinterError) WithOutput(output string) *LinterError {
	return &LinterError{Linter: e.Linter, Err: e.Err, Output: output}
}
