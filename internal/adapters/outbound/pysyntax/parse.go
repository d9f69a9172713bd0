// Package pysyntax reads Python source with the tree-sitter Python grammar.
package pysyntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// parse returns the concrete syntax tree of content. The caller closes the tree.
func parse(ctx context.Context, content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing python source: %w", err)
	}
	return tree, nil
}

// lineIndent returns the leading whitespace of the 0-based row.
func lineIndent(content []byte, row uint32) string {
	lines := strings.SplitN(string(content), "\n", int(row)+2)
	if int(row) >= len(lines) {
		return ""
	}
	line := lines[row]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
