package testdiscovery

import (
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/diagnostics"
)

var frameRe = regexp.MustCompile(`(?m)^\s+File\s"(.*)",\sline\s(\d+),\sin\s(.*)$`)

// ParseFailures returns the traceback frames printed by a failing test run.
// Lines are kept 1-based as printed.
func ParseFailures(output string) []domain.TestFailure {
	matches := frameRe.FindAllStringSubmatch(strings.ReplaceAll(output, "\r\n", "\n"), -1)
	out := make([]domain.TestFailure, 0, len(matches))
	for _, m := range matches {
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, domain.TestFailure{
			File: strings.TrimSpace(m[1]),
			Line: line,
			Name: strings.TrimSpace(m[3]),
		})
	}
	return out
}

// FailedLines returns the sorted unique 0-based lines of file that appear
// in the traceback frames of output.
func FailedLines(output, file string) []int {
	file = path.Clean(file)
	seen := make(map[int]bool)
	lines := []int{}
	for _, f := range ParseFailures(output) {
		if !sameFile(f.File, file) {
			continue
		}
		l := diagnostics.FromOneBased(f.Line)
		if !seen[l] {
			seen[l] = true
			lines = append(lines, l)
		}
	}
	sort.Ints(lines)
	return lines
}

// FailedTests groups failing test names by file.
func FailedTests(output string) map[string][]string {
	out := make(map[string][]string)
	for _, f := range ParseFailures(output) {
		names := out[f.File]
		dup := false
		for _, n := range names {
			if n == f.Name {
				dup = true
				break
			}
		}
		if !dup {
			out[f.File] = append(names, f.Name)
		}
	}
	return out
}

func sameFile(a, b string) bool {
	a = path.Clean(a)
	return a == b || strings.HasSuffix(a, "/"+b) || strings.HasSuffix(b, "/"+a)
}
