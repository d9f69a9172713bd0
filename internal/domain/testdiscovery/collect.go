// Package testdiscovery parses the text a test library prints while
// collecting and running tests.
package testdiscovery

import (
	"path"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
)

const noTestsRan = "no tests ran"

// CollectedTest is one test id split into its file and dotted test name.
type CollectedTest struct {
	File string
	Name string
}

// ParseIDs extracts `path/to/file.py::Class::test` ids from collect output.
// Nested `::` segments are joined with ".".
func ParseIDs(output string) []CollectedTest {
	var out []CollectedTest
	for _, line := range strings.Split(strings.ReplaceAll(output, "\r", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, noTestsRan) {
			continue
		}
		for _, tok := range strings.Fields(line) {
			file, rest, ok := strings.Cut(tok, "::")
			if !ok || file == "" {
				continue
			}
			out = append(out, CollectedTest{
				File: path.Clean(file),
				Name: strings.Join(strings.Split(rest, "::"), "."),
			})
		}
	}
	return out
}

// ParseCollectOutput builds a directory tree of the tests in output.
// Directories merge and each file node lists its tests in collection order.
func ParseCollectOutput(output string) *domain.TestTree {
	tree := &domain.TestTree{Root: &domain.TestNode{Name: "."}, Files: Files(output)}
	for _, ct := range ParseIDs(output) {
		insert(tree.Root, ct)
		if ct.Name != "" {
			tree.Count++
		}
	}
	return tree
}

func insert(root *domain.TestNode, ct CollectedTest) {
	parts := strings.Split(ct.File, "/")
	node := root
	for i, part := range parts {
		child := node.Child(part)
		if child == nil {
			child = &domain.TestNode{Name: part}
			if i == len(parts)-1 {
				child.File = ct.File
			} else {
				child.File = strings.Join(parts[:i+1], "/") + "/"
			}
			node.Children = append(node.Children, child)
		}
		node = child
	}
	if ct.Name != "" {
		node.Tests = append(node.Tests, ct.Name)
	}
}

// ContainsFile reports whether file appears among the collected test ids.
// file may be absolute while the ids are relative to the project.
func ContainsFile(output, file string) bool {
	if file == "" {
		return false
	}
	file = path.Clean(file)
	for _, ct := range ParseIDs(output) {
		if ct.File == file || strings.HasSuffix(file, "/"+ct.File) {
			return true
		}
	}
	return false
}

// Files returns the distinct test files of output in collection order.
func Files(output string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, ct := range ParseIDs(output) {
		if !seen[ct.File] {
			seen[ct.File] = true
			files = append(files, ct.File)
		}
	}
	return files
}
