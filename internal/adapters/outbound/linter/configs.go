package linter

import (
	"strconv"
	"time"
)

type outputFormat int

const (
	formatText outputFormat = iota
	formatPylintJSON
	formatRuffJSON
)

// Config describes how one linter is invoked and how its output is read.
type Config struct {
	Name    string
	Format  outputFormat
	Timeout time.Duration
	// Stdin linters read the source from standard input; the others are
	// given the file path.
	Stdin bool
	args  func(file string, lineWidth int) []string
}

// Args returns the command line arguments for linting file.
func (c Config) Args(file string, lineWidth int) []string {
	return c.args(file, lineWidth)
}

var configs = map[string]Config{
	"flake8": {
		Name:    "flake8",
		Format:  formatText,
		Timeout: 30 * time.Second,
		Stdin:   true,
		args: func(file string, width int) []string {
			return []string{
				"--max-line-length=" + strconv.Itoa(width),
				"--format=default",
				"--stdin-display-name=" + file,
				"-",
			}
		},
	},
	"pycodestyle": {
		Name:    "pycodestyle",
		Format:  formatText,
		Timeout: 30 * time.Second,
		Stdin:   true,
		args: func(_ string, width int) []string {
			return []string{"--max-line-length=" + strconv.Itoa(width), "-"}
		},
	},
	"pyflakes": {
		Name:    "pyflakes",
		Format:  formatText,
		Timeout: 30 * time.Second,
		Stdin:   true,
		args: func(string, int) []string {
			return nil
		},
	},
	"pylint": {
		Name:    "pylint",
		Format:  formatPylintJSON,
		Timeout: 60 * time.Second,
		args: func(file string, width int) []string {
			return []string{
				"--output-format=json",
				"--max-line-length=" + strconv.Itoa(width),
				"--score=n",
				file,
			}
		},
	},
	"ruff": {
		Name:    "ruff",
		Format:  formatRuffJSON,
		Timeout: 10 * time.Second,
		Stdin:   true,
		args: func(file string, width int) []string {
			return []string{
				"check",
				"--output-format=json",
				"--exit-zero",
				"--line-length=" + strconv.Itoa(width),
				"--stdin-filename=" + file,
				"-",
			}
		},
	},
}

// ConfigFor returns the invocation config of the named linter.
func ConfigFor(name string) (Config, bool) {
	c, ok := configs[name]
	return c, ok
}
