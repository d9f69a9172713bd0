package pysyntax

import (
	"context"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pycoding/pycoding/internal/domain/docstring"
)

// Locator implements domain.FunctionLocator.
type Locator struct{}

func NewLocator() *Locator {
	return &Locator{}
}

// FunctionAt returns the innermost function or class whose definition spans
// the 0-based line, or nil when the line is at module level.
func (l *Locator) FunctionAt(ctx context.Context, content []byte, line int) (*docstring.Function, error) {
	if line < 0 {
		return nil, nil
	}
	tree, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	def := innermost(tree.RootNode(), uint32(line))
	if def == nil {
		return nil, nil
	}

	r := reader{content: content}
	if def.Type() == "class_definition" {
		return r.class(def), nil
	}
	return r.function(def), nil
}

func innermost(node *sitter.Node, line uint32) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.StartPoint().Row > line || child.EndPoint().Row < line {
			continue
		}
		var best *sitter.Node
		switch child.Type() {
		case "function_definition", "class_definition":
			best = child
		case "decorated_definition":
			if def := child.ChildByFieldName("definition"); def != nil {
				if inner := innermost(def, line); inner != nil {
					return inner
				}
				return def
			}
		}
		if inner := innermost(child, line); inner != nil {
			return inner
		}
		return best
	}
	return nil
}

type reader struct {
	content []byte
}

func (r reader) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(r.content)
}

func (r reader) function(def *sitter.Node) *docstring.Function {
	fn := &docstring.Function{
		Name:       r.text(def.ChildByFieldName("name")),
		Kind:       docstring.KindFunction,
		Params:     r.params(def.ChildByFieldName("parameters")),
		Returns:    r.text(def.ChildByFieldName("return_type")),
		Decorators: r.decorators(def),
		IsMethod:   isMethod(def),
	}
	body := def.ChildByFieldName("body")
	if body != nil {
		fn.IsGenerator = containsYield(body)
		fn.Raises = r.raises(body)
	}
	fn.BodyLine, fn.Indent = r.bodyPosition(def, body)
	return fn
}

func (r reader) class(def *sitter.Node) *docstring.Function {
	fn := &docstring.Function{
		Name:       r.text(def.ChildByFieldName("name")),
		Kind:       docstring.KindClass,
		Decorators: r.decorators(def),
		IsMethod:   isMethod(def),
	}
	if supers := def.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			arg := supers.NamedChild(i)
			switch arg.Type() {
			case "identifier", "attribute", "subscript":
				fn.Bases = append(fn.Bases, r.text(arg))
			}
		}
	}
	body := def.ChildByFieldName("body")
	if body != nil {
		fn.Attributes = r.attributes(body)
	}
	fn.BodyLine, fn.Indent = r.bodyPosition(def, body)
	return fn
}

func (r reader) params(params *sitter.Node) []docstring.Param {
	if params == nil {
		return nil
	}
	var out []docstring.Param
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			out = append(out, docstring.Param{Name: r.text(p)})
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, r.splat(p))
		case "typed_parameter":
			var param docstring.Param
			if first := p.NamedChild(0); first != nil && first.Type() != "identifier" {
				param = r.splat(first)
			} else {
				param.Name = r.text(first)
			}
			param.Annotation = r.text(p.ChildByFieldName("type"))
			out = append(out, param)
		case "default_parameter", "typed_default_parameter":
			out = append(out, docstring.Param{
				Name:       r.text(p.ChildByFieldName("name")),
				Annotation: r.text(p.ChildByFieldName("type")),
				Default:    r.text(p.ChildByFieldName("value")),
			})
		}
	}
	return out
}

func (r reader) splat(n *sitter.Node) docstring.Param {
	p := docstring.Param{Name: r.text(n.NamedChild(0)), Star: 1}
	if n.Type() == "dictionary_splat_pattern" {
		p.Star = 2
	}
	return p
}

func (r reader) decorators(def *sitter.Node) []string {
	parent := def.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	var out []string
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		dec := parent.NamedChild(i)
		if dec.Type() != "decorator" {
			continue
		}
		expr := dec.NamedChild(0)
		if expr != nil && expr.Type() == "call" {
			expr = expr.ChildByFieldName("function")
		}
		if name := r.text(expr); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (r reader) attributes(body *sitter.Node) []docstring.Param {
	var out []docstring.Param
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != "expression_statement" {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			continue
		}
		out = append(out, docstring.Param{
			Name:       r.text(left),
			Annotation: r.text(assign.ChildByFieldName("type")),
			Default:    r.text(assign.ChildByFieldName("right")),
		})
	}
	return out
}

func (r reader) raises(body *sitter.Node) []string {
	var out []string
	walkBody(body, func(n *sitter.Node) {
		if n.Type() != "raise_statement" {
			return
		}
		exc := n.NamedChild(0)
		if exc != nil && exc.Type() == "call" {
			exc = exc.ChildByFieldName("function")
		}
		name := r.text(exc)
		if name != "" && name != "None" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	})
	return out
}

// bodyPosition returns the line a docstring is inserted before and the
// indentation it uses.
func (r reader) bodyPosition(def, body *sitter.Node) (int, string) {
	defRow := def.StartPoint().Row
	defIndent := lineIndent(r.content, defRow)
	if body == nil || body.StartPoint().Row == defRow {
		return int(defRow) + 1, defIndent + "    "
	}
	row := body.StartPoint().Row
	indent := lineIndent(r.content, row)
	if len(indent) <= len(defIndent) {
		indent = defIndent + "    "
	}
	return int(row), indent
}

func isMethod(def *sitter.Node) bool {
	n := def.Parent()
	if n != nil && n.Type() == "decorated_definition" {
		n = n.Parent()
	}
	if n == nil || n.Type() != "block" {
		return false
	}
	owner := n.Parent()
	return owner != nil && owner.Type() == "class_definition" && strings.HasPrefix(def.Type(), "function")
}

func containsYield(body *sitter.Node) bool {
	found := false
	walkBody(body, func(n *sitter.Node) {
		if n.Type() == "yield" {
			found = true
		}
	})
	return found
}

// walkBody visits every node under n without entering nested scopes.
func walkBody(n *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "function_definition", "class_definition", "decorated_definition", "lambda":
			continue
		}
		visit(child)
		walkBody(child, visit)
	}
}
