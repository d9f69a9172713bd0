package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".tox":          true,
	".nox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".ruff_cache":   true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	"node_modules":  true,
	".pycoding":     true,
}

// FileScanner implements domain.FileScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// IsPythonFile reports whether name is a Python source or stub file.
func IsPythonFile(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".pyi")
}

// IsSkippedDir reports whether a directory named name is never descended into.
func IsSkippedDir(name string) bool {
	return skipDirs[name]
}

// PythonFiles expands paths into the Python files beneath them. Relative
// paths are taken from root and an empty paths list means root itself.
// Files named explicitly are kept even without a .py suffix.
func (s *FileScanner) PythonFiles(root string, paths []string, excludePaths ...string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = []string{absRoot}
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(absRoot, p)
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && (skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[rel(absRoot, path)]) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsPythonFile(d.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
	}
	return files, nil
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}
