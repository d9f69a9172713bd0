package pysyntax

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pycoding/pycoding/internal/domain"
)

const (
	maxErrors  = 50
	maxDepth   = 1000
	maxSnippet = 40
)

// Checker implements domain.SyntaxChecker. Every parse error becomes a fatal
// diagnostic.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// Check parses content and reports ERROR and MISSING nodes with 0-based rows.
func (c *Checker) Check(ctx context.Context, content []byte) ([]domain.Diagnostic, error) {
	tree, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	out := []domain.Diagnostic{}
	root := tree.RootNode()
	if !root.HasError() {
		return out, nil
	}
	collect(root, content, &out, 0)
	return out, nil
}

func collect(node *sitter.Node, content []byte, out *[]domain.Diagnostic, depth int) {
	if depth > maxDepth || len(*out) >= maxErrors {
		return
	}

	switch {
	case node.IsMissing():
		*out = append(*out, syntaxDiagnostic(node, content, "missing "+node.Type()))
		return
	case node.IsError():
		msg := "syntax error"
		if s := snippet(node.Content(content)); s != "" {
			msg = "syntax error near: " + s
		}
		*out = append(*out, syntaxDiagnostic(node, content, msg))
		// Nested errors repeat what the outer node already reports.
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsMissing() || child.IsError() {
			collect(child, content, out, depth+1)
		}
	}
}

func syntaxDiagnostic(node *sitter.Node, content []byte, msg string) domain.Diagnostic {
	p := node.StartPoint()
	return domain.Diagnostic{
		Severity: domain.SeverityFatal,
		Line:     int(p.Row),
		Column:   runeColumn(content, int(node.StartByte()), int(p.Column)),
		Message:  msg,
		Code:     "E999",
		Source:   "syntax",
	}
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) > maxSnippet {
		s = fmt.Sprintf("%s...", s[:maxSnippet])
	}
	return s
}

// runeColumn converts tree-sitter's byte column into characters, the unit
// external linters report.
func runeColumn(content []byte, offset, byteCol int) int {
	if offset > len(content) || byteCol > offset {
		return byteCol
	}
	return utf8.RuneCount(content[offset-byteCol : offset])
}
