package domain

import "time"

// Severity is the five-level classification a linter assigns to a finding.
type Severity string

const (
	SeverityConvention Severity = "convention"
	SeverityRefactor   Severity = "refactor"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
	SeverityFatal      Severity = "fatal"
)

// ValidSeverities enumerates all severities, lowest tier first.
var ValidSeverities = []Severity{
	SeverityConvention,
	SeverityRefactor,
	SeverityWarning,
	SeverityError,
	SeverityFatal,
}

// Valid reports whether s is one of the five known severities.
func (s Severity) Valid() bool {
	for _, v := range ValidSeverities {
		if s == v {
			return true
		}
	}
	return false
}

// Tier returns the precedence tier used when several findings share a line.
// error and fatal share the top tier; convention and refactor share the bottom one.
func (s Severity) Tier() int {
	switch s {
	case SeverityError, SeverityFatal:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Indicator returns the editor annotation style id for the severity.
func (s Severity) Indicator() int {
	switch s {
	case SeverityWarning:
		return 11
	case SeverityError:
		return 15
	case SeverityConvention:
		return 12
	case SeverityRefactor:
		return 10
	case SeverityFatal:
		return 13
	default:
		return 0
	}
}

// Diagnostic is one finding from a single linting or parse pass.
// Line is 0-based.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Code     string   `json:"code,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// MergedDiagnostic is the single annotation rendered for one source line.
type MergedDiagnostic struct {
	Severity  Severity `json:"severity"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	Message   string   `json:"message"`
	Indicator int      `json:"indicator"`
	Count     int      `json:"count"`
}

// Summary counts merged lines per severity.
type Summary struct {
	Fatal      int `json:"fatal"`
	Error      int `json:"error"`
	Warning    int `json:"warning"`
	Convention int `json:"convention"`
	Refactor   int `json:"refactor"`
}

// Total returns the number of annotated lines.
func (s Summary) Total() int {
	return s.Fatal + s.Error + s.Warning + s.Convention + s.Refactor
}

// Blocking reports whether any line carries an error or fatal finding.
func (s Summary) Blocking() bool {
	return s.Fatal+s.Error > 0
}

// LintReport holds the merged result of linting one file.
type LintReport struct {
	File            string             `json:"file"`
	Linter          string             `json:"linter"`
	LinterAvailable bool               `json:"linter_available"`
	Cached          bool               `json:"cached"`
	Diagnostics     []MergedDiagnostic `json:"diagnostics"`
	Summary         Summary            `json:"summary"`
	Duration        time.Duration      `json:"duration_ns"`
}

// ExecutableSet holds resolved paths of the tools a project uses.
type ExecutableSet struct {
	Python    string `json:"python"`
	Linter    string `json:"linter"`
	Formatter string `json:"formatter"`
	TestLib   string `json:"test_lib"`
}

// CommandSet holds the build-menu commands for one file.
type CommandSet struct {
	Run     string `json:"run"`
	Compile string `json:"compile"`
	Lint    string `json:"lint"`
	Format  string `json:"format"`
	Test    string `json:"test"`
}

// BuildCommands derives the build-menu commands for file from resolved executables.
func BuildCommands(exe ExecutableSet, file, testLib string) CommandSet {
	python := exe.Python
	if python == "" {
		python = "python"
	}
	return CommandSet{
		Run:     python + " " + file,
		Compile: python + " -m py_compile " + file,
		Lint:    exe.Linter + " " + file,
		Format:  exe.Formatter + " " + file,
		Test:    python + " -m " + testLib + " " + file,
	}
}

// EnvironmentReport describes the interpreter environment resolved for a project.
type EnvironmentReport struct {
	Project      string        `json:"project"`
	BasePath     string        `json:"base_path"`
	VenvName     string        `json:"venv_name,omitempty"`
	VenvPath     string        `json:"venv_path,omitempty"`
	Source       string        `json:"source,omitempty"`
	SitePackages string        `json:"site_packages,omitempty"`
	Known        bool          `json:"known"`
	Executables  ExecutableSet `json:"executables"`
	Commands     *CommandSet   `json:"commands,omitempty"`
}

// ProjectInfo is what can be learned about a Python project from its marker files.
type ProjectInfo struct {
	Name           string   `json:"name"`
	BasePath       string   `json:"base_path"`
	IsPython       bool     `json:"is_python"`
	RequiresPython string   `json:"requires_python,omitempty"`
	Markers        []string `json:"markers,omitempty"`
}

// TestNode is one directory, file or test in a discovered test tree.
type TestNode struct {
	Name     string      `json:"name"`
	File     string      `json:"file,omitempty"`
	Tests    []string    `json:"tests,omitempty"`
	Children []*TestNode `json:"children,omitempty"`
}

// Child returns the direct child with the given name, or nil.
func (n *TestNode) Child(name string) *TestNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// TestTree is the result of a test collection pass.
type TestTree struct {
	Root  *TestNode `json:"root"`
	Count int       `json:"count"`
	Files []string  `json:"files"`
}

// TestFailure is one traceback frame reported by a failing test run.
type TestFailure struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Name string `json:"name"`
}

// FormatResult is the outcome of running a formatter over one file.
type FormatResult struct {
	File      string `json:"file"`
	Formatter string `json:"formatter"`
	Changed   bool   `json:"changed"`
	Written   bool   `json:"written"`
	Content   string `json:"content,omitempty"`
}

// LintHistoryEntry records one lint run.
type LintHistoryEntry struct {
	ID         string  `json:"id"`
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash,omitempty"`
	File       string  `json:"file"`
	Linter     string  `json:"linter"`
	Summary    Summary `json:"summary"`
}
