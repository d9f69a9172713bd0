// Package venv locates a project's virtual environment and the executables
// inside it. Resolution only reads the filesystem through a Prober.
package venv

import (
	"path/filepath"
	"sort"
)

// SystemPythonName is the pseudo-environment pyenv uses for the system interpreter.
const SystemPythonName = "system"

// DefaultSystemDirs are probed for executables missing from the environment.
var DefaultSystemDirs = []string{"/usr/local/bin", "/usr/bin"}

// SnapshotOptions carries the machine facts a Snapshot is built from.
type SnapshotOptions struct {
	Home       string
	ActiveEnv  string
	PyenvRoot  string
	HasPyenv   bool
	Known      []string
	SystemDirs []string
}

// Snapshot is a read-only catalog of where environments live on one machine.
// Callers rebuild it when the machine state may have changed.
type Snapshot struct {
	Home         string   `json:"home"`
	ActiveEnv    string   `json:"active_env,omitempty"`
	PyenvRoot    string   `json:"pyenv_root,omitempty"`
	ManagedDir   string   `json:"managed_dir,omitempty"`
	AlternateDir string   `json:"alternate_dir,omitempty"`
	HasPyenv     bool     `json:"has_pyenv"`
	Known        []string `json:"known,omitempty"`
	SystemDirs   []string `json:"system_dirs"`

	known map[string]struct{}
}

// NewSnapshot derives the managed and alternate directories from opts.
func NewSnapshot(opts SnapshotOptions) Snapshot {
	s := Snapshot{
		Home:       opts.Home,
		ActiveEnv:  opts.ActiveEnv,
		PyenvRoot:  opts.PyenvRoot,
		HasPyenv:   opts.HasPyenv,
		SystemDirs: opts.SystemDirs,
		known:      make(map[string]struct{}, len(opts.Known)+1),
	}
	if s.PyenvRoot == "" && s.Home != "" {
		s.PyenvRoot = filepath.Join(s.Home, ".pyenv")
	}
	if s.SystemDirs == nil {
		s.SystemDirs = append([]string(nil), DefaultSystemDirs...)
	}

	var virtualenvs string
	if s.Home != "" {
		virtualenvs = filepath.Join(s.Home, ".virtualenvs")
	}
	if s.HasPyenv && s.PyenvRoot != "" {
		s.ManagedDir = filepath.Join(s.PyenvRoot, "versions")
	} else {
		s.ManagedDir = virtualenvs
	}
	if virtualenvs != s.ManagedDir {
		s.AlternateDir = virtualenvs
	}

	for _, name := range opts.Known {
		if name != "" {
			s.known[name] = struct{}{}
		}
	}
	if s.HasPyenv {
		s.known[SystemPythonName] = struct{}{}
	}
	s.Known = make([]string, 0, len(s.known))
	for name := range s.known {
		s.Known = append(s.Known, name)
	}
	sort.Strings(s.Known)
	return s
}

// IsKnown reports whether name is one of the environments discovered on the machine.
func (s Snapshot) IsKnown(name string) bool {
	_, ok := s.known[name]
	return ok
}
