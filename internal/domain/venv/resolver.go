package venv

import (
	"path/filepath"
	"sort"
	"strings"
)

// Source names the layout an environment was found in.
type Source string

const (
	SourceActive    Source = "active"
	SourceManaged   Source = "managed"
	SourceProject   Source = "project"
	SourceAlternate Source = "alternate"
	SourceBase      Source = "base"
)

// Query identifies the project whose environment is wanted.
type Query struct {
	ProjectName     string
	ProjectBasePath string
	StoredVenvName  string
}

// Resolved is the outcome of a lookup. A zero value means nothing matched.
type Resolved struct {
	VenvPath string `json:"venv_path,omitempty"`
	Source   Source `json:"source,omitempty"`
}

// Found reports whether an environment directory was located.
func (r Resolved) Found() bool {
	return r.VenvPath != ""
}

// Prober answers existence questions about the filesystem.
// Any failure to confirm existence must be reported as false.
type Prober interface {
	IsDir(path string) bool
	IsFile(path string) bool
}

// Resolver finds environments and executables for a fixed Snapshot.
type Resolver struct {
	snapshot Snapshot
	prober   Prober
}

func NewResolver(snapshot Snapshot, prober Prober) *Resolver {
	return &Resolver{snapshot: snapshot, prober: prober}
}

// Snapshot returns the catalog the resolver was built with.
func (r *Resolver) Snapshot() Snapshot {
	return r.snapshot
}

// ResolveVenvPath returns the most plausible environment directory for q.
func (r *Resolver) ResolveVenvPath(q Query) Resolved {
	if r.snapshot.ActiveEnv != "" {
		return Resolved{VenvPath: r.snapshot.ActiveEnv, Source: SourceActive}
	}
	if strings.TrimSpace(q.ProjectBasePath) == "" {
		return Resolved{}
	}

	base := filepath.Clean(q.ProjectBasePath)
	name := CandidateName(q)
	if name == "" {
		return Resolved{}
	}

	candidates := []struct {
		dir    string
		source Source
	}{
		{r.snapshot.ManagedDir, SourceManaged},
		{filepath.Join(base, "venv"), SourceProject},
		{r.snapshot.AlternateDir, SourceAlternate},
	}
	for _, c := range candidates {
		if c.dir == "" {
			continue
		}
		p := filepath.Join(c.dir, name)
		if r.prober.IsDir(p) {
			return Resolved{VenvPath: p, Source: c.source}
		}
		// A bare ./venv holding the interpreter is the environment itself.
		if c.source == SourceProject && r.prober.IsFile(filepath.Join(c.dir, "bin", "python")) {
			return Resolved{VenvPath: c.dir, Source: SourceProject}
		}
	}

	p := filepath.Join(base, name)
	if r.prober.IsFile(filepath.Join(p, "bin", "python")) {
		return Resolved{VenvPath: p, Source: SourceBase}
	}
	return Resolved{}
}

// CandidateName is the environment name searched for q: the stored name,
// else the project name, else the last segment of the base path.
func CandidateName(q Query) string {
	for _, n := range []string{q.StoredVenvName, q.ProjectName} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	if strings.TrimSpace(q.ProjectBasePath) == "" {
		return ""
	}
	name := filepath.Base(filepath.Clean(q.ProjectBasePath))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// ResolveExecutable returns the path to run name with.
//
// The environment's bin directory is tried first. Without checkSystemPaths an
// empty string means nothing matched. Otherwise the system directories are
// probed and name is returned unchanged when none has it.
func (r *Resolver) ResolveExecutable(name string, env Resolved, checkSystemPaths bool) string {
	if name == "" {
		return ""
	}
	cmdName := name
	if strings.Contains(name, "/") {
		cmdName = filepath.Base(name)
	}

	if env.Found() {
		p := filepath.Join(env.VenvPath, "bin", cmdName)
		if r.prober.IsFile(p) {
			return p
		}
	}
	if !checkSystemPaths {
		return ""
	}

	for _, dir := range r.snapshot.SystemDirs {
		if strings.HasPrefix(name, dir) {
			return name
		}
		p := filepath.Join(dir, cmdName)
		if r.prober.IsFile(p) {
			return p
		}
	}
	return name
}

// SitePackages returns the environment's first lib/python*/site-packages directory.
func (r *Resolver) SitePackages(env Resolved) string {
	if !env.Found() {
		return ""
	}
	matches, err := filepath.Glob(filepath.Join(env.VenvPath, "lib", "python*", "site-packages"))
	if err != nil {
		return ""
	}
	sort.Strings(matches)
	for _, m := range matches {
		if r.prober.IsDir(m) {
			return m
		}
	}
	return ""
}
