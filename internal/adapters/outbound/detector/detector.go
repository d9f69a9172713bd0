package detector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pycoding/pycoding/internal/domain"
)

// markerFiles identify a Python project root, in reporting order.
var markerFiles = []string{
	"pyproject.toml",
	"setup.py",
	"setup.cfg",
	"requirements.txt",
	"Pipfile",
	"tox.ini",
}

type pyproject struct {
	Project struct {
		Name           string `toml:"name"`
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ProjectDetector implements domain.ProjectDetector by reading marker files.
type ProjectDetector struct{}

func New() *ProjectDetector {
	return &ProjectDetector{}
}

// Detect inspects projectPath. The project name comes from pyproject.toml
// ([project] then [tool.poetry]) and falls back to the directory name.
func (d *ProjectDetector) Detect(projectPath string) (domain.ProjectInfo, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return domain.ProjectInfo{}, err
	}
	info := domain.ProjectInfo{
		Name:     filepath.Base(absPath),
		BasePath: absPath,
	}

	for _, m := range markerFiles {
		if fileExists(filepath.Join(absPath, m)) {
			info.Markers = append(info.Markers, m)
		}
	}
	info.IsPython = len(info.Markers) > 0 || hasTopLevelPython(absPath)

	pyprojectPath := filepath.Join(absPath, "pyproject.toml")
	if !fileExists(pyprojectPath) {
		return info, nil
	}

	var pp pyproject
	md, err := toml.DecodeFile(pyprojectPath, &pp)
	if err != nil {
		return info, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	switch {
	case md.IsDefined("project", "name") && strings.TrimSpace(pp.Project.Name) != "":
		info.Name = strings.TrimSpace(pp.Project.Name)
	case md.IsDefined("tool", "poetry", "name") && strings.TrimSpace(pp.Tool.Poetry.Name) != "":
		info.Name = strings.TrimSpace(pp.Tool.Poetry.Name)
	}
	info.RequiresPython = pp.Project.RequiresPython
	if info.RequiresPython == "" {
		if v, ok := pp.Tool.Poetry.Dependencies["python"].(string); ok {
			info.RequiresPython = v
		}
	}
	return info, nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func hasTopLevelPython(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".py") {
			return true
		}
	}
	return false
}
