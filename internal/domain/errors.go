package domain

import "errors"

var (
	// ErrLinterUnavailable is returned by a Linter whose executable cannot be started.
	ErrLinterUnavailable = errors.New("linter not available")

	// ErrFormatterUnavailable is returned by a Formatter whose executable cannot be started.
	ErrFormatterUnavailable = errors.New("formatter not available")
)
