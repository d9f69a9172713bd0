package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultTemplate = `# pycoding project configuration
#
# Name of the virtual environment to use. Defaults to the project name,
# then the project directory name.
# venv_name: myproject

# flake8 | pylint | pycodestyle | pyflakes | ruff
linter: flake8

# black | autopep8 | yapf
formatter: black

# pytest | unittest
test_lib: pytest

# google | numpy | reST
docstring_style: google

# Maximum line length passed to the linter and formatter (40-200).
line_width: 79

# Fall back to /usr/local/bin and /usr/bin when a tool is not in the venv.
check_system_paths: true

# Re-lint files on save in watch mode.
autolint: false

# Directory names skipped when linting a tree.
# exclude_paths:
#   - build
#   - docs
`

// WriteDefault writes a commented default .pycoding.yaml into projectPath.
// An existing file is only replaced when force is set.
func WriteDefault(projectPath string, force bool) (string, error) {
	path := filepath.Join(projectPath, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", FileName)
		}
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	return path, nil
}
