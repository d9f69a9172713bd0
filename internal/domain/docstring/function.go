// Package docstring renders docstring templates for Python functions and classes.
package docstring

import (
	"regexp"
	"strings"
)

// Kind is the kind of definition a docstring is generated for.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
)

// Param is one parameter of a function, or one attribute of a class.
// Star is 1 for *args and 2 for **kwargs.
type Param struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
	Default    string `json:"default,omitempty"`
	Star       int    `json:"star,omitempty"`
}

// Function describes the definition enclosing a cursor position.
type Function struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Params      []Param  `json:"params,omitempty"`
	Returns     string   `json:"returns,omitempty"`
	Decorators  []string `json:"decorators,omitempty"`
	Bases       []string `json:"bases,omitempty"`
	Attributes  []Param  `json:"attributes,omitempty"`
	IsMethod    bool     `json:"is_method"`
	IsGenerator bool     `json:"is_generator"`
	Raises      []string `json:"raises,omitempty"`
	// BodyLine is the 0-based line the docstring is inserted before.
	BodyLine int `json:"body_line"`
	// Indent is the indentation of the definition's body.
	Indent string `json:"indent"`
}

var (
	intRe   = regexp.MustCompile(`^[-+]?(0[xXoObB][0-9a-fA-F_]+|\d[\d_]*)$`)
	floatRe = regexp.MustCompile(`^[-+]?(\d[\d_]*\.\d*|\.\d+|\d[\d_]*)([eE][-+]?\d+)?$`)
)

// InferType guesses the type name of a literal default value.
// It returns "" when the value is not a recognisable literal.
func InferType(value string) string {
	v := strings.TrimSpace(value)
	switch {
	case v == "" || v == "None":
		return ""
	case v == "True" || v == "False":
		return "bool"
	case intRe.MatchString(v):
		return "int"
	case floatRe.MatchString(v):
		return "float"
	case strings.HasSuffix(v, "j") && floatRe.MatchString(strings.TrimSuffix(v, "j")):
		return "complex"
	case isQuoted(v, "b", "B", "rb", "br", "Rb", "bR"):
		return "bytes"
	case isQuoted(v, "", "r", "R", "u", "U", "f", "F", "rf", "fr"):
		return "str"
	case strings.HasPrefix(v, "["):
		return "list"
	case strings.HasPrefix(v, "("):
		return "tuple"
	case strings.HasPrefix(v, "set("), strings.HasPrefix(v, "frozenset("):
		return "set"
	case strings.HasPrefix(v, "dict("):
		return "dict"
	case strings.HasPrefix(v, "{"):
		if v == "{}" || strings.Contains(v, ":") {
			return "dict"
		}
		return "set"
	default:
		return ""
	}
}

func isQuoted(v string, prefixes ...string) bool {
	for _, p := range prefixes {
		if !strings.HasPrefix(v, p) {
			continue
		}
		rest := v[len(p):]
		for _, q := range []string{`"""`, `'''`, `"`, `'`} {
			if len(rest) >= 2*len(q) && strings.HasPrefix(rest, q) && strings.HasSuffix(rest, q) {
				return true
			}
		}
	}
	return false
}
