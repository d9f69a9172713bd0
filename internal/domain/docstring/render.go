package docstring

import (
	"fmt"
	"strings"
)

// Style selects the docstring layout.
type Style string

const (
	StyleGoogle Style = "google"
	StyleNumpy  Style = "numpy"
	StyleReST   Style = "reST"
)

// Placeholder marks text the user is expected to fill in.
const Placeholder = "..."

var ignoredDecorators = map[string]bool{
	"staticmethod": true,
	"classmethod":  true,
	"property":     true,
}

// ParseStyle maps a configured style name to a Style, case-insensitively.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "google":
		return StyleGoogle, nil
	case "numpy":
		return StyleNumpy, nil
	case "rest":
		return StyleReST, nil
	default:
		return "", fmt.Errorf("unknown docstring style %q", name)
	}
}

// Render returns the docstring for fn with every line prefixed by indent.
// The result ends with a newline.
func Render(fn Function, style Style, indent string) string {
	b := &builder{style: style, indent: indent}
	b.line(`"""About *` + fn.Name + `*.`)

	if fn.Kind == KindClass {
		b.attributes(fn.Attributes)
	} else {
		b.params(fn.Params, fn.IsMethod)
	}
	b.raises(fn.Raises)
	if fn.IsGenerator {
		b.yields(fn.Returns)
	} else {
		b.returns(fn.Returns)
	}
	b.notes(fn)
	b.line(`"""`)
	return b.String()
}

type builder struct {
	style  Style
	indent string
	lines  []string
}

func (b *builder) line(s string) {
	if s == "" {
		b.lines = append(b.lines, "")
		return
	}
	b.lines = append(b.lines, b.indent+s)
}

func (b *builder) item(s string) {
	b.line("    " + s)
}

func (b *builder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

// header opens a section. reST has no section headers.
func (b *builder) header(google, numpy string) {
	switch b.style {
	case StyleNumpy:
		b.line("")
		b.line(numpy)
		b.line(strings.Repeat("-", len(numpy)))
	case StyleReST:
	default:
		b.line("")
		b.line(google + ":")
	}
}

func paramType(p Param) string {
	if p.Annotation != "" {
		return p.Annotation
	}
	if t := InferType(p.Default); t != "" {
		return t
	}
	return Placeholder
}

func paramDesc(p Param) string {
	switch {
	case p.Star == 1:
		return Placeholder + " VARARGS"
	case p.Star == 2:
		return Placeholder + " KEYWORD VARARGS"
	case p.Default != "":
		return Placeholder + " DEFAULT: " + p.Default
	default:
		return Placeholder
	}
}

func optional(p Param) string {
	if p.Annotation == "" && (p.Default != "" || p.Star > 0) {
		return ",optional"
	}
	return ""
}

func starName(p Param) string {
	return strings.Repeat("*", p.Star) + p.Name
}

func (b *builder) params(params []Param, isMethod bool) {
	if isMethod && len(params) > 0 && (params[0].Name == "self" || params[0].Name == "cls") {
		params = params[1:]
	}
	if len(params) == 0 {
		return
	}

	if b.style == StyleReST {
		b.line("")
		for _, p := range params {
			b.line(fmt.Sprintf(":param %s: %s", starName(p), paramDesc(p)))
			b.line(fmt.Sprintf(":type %s: %s", starName(p), paramType(p)))
		}
		return
	}

	var keyword []Param
	b.header("Args", "Parameters")
	for _, p := range params {
		if b.style == StyleGoogle && p.Star == 2 {
			keyword = append(keyword, p)
			continue
		}
		b.param(p)
	}
	if len(keyword) > 0 {
		b.line("")
		b.line("Keyword Args:")
		for _, p := range keyword {
			b.param(p)
		}
	}
}

func (b *builder) param(p Param) {
	if b.style == StyleNumpy {
		b.line(fmt.Sprintf("%s : %s%s", starName(p), paramType(p), optional(p)))
		b.item(paramDesc(p))
		return
	}
	b.item(fmt.Sprintf("%s (%s%s): %s", starName(p), paramType(p), optional(p), paramDesc(p)))
}

func (b *builder) attributes(attrs []Param) {
	if len(attrs) == 0 {
		return
	}
	if b.style == StyleReST {
		b.line("")
		for _, a := range attrs {
			b.line(fmt.Sprintf(":var %s: %s", a.Name, paramDesc(a)))
			b.line(fmt.Sprintf(":vartype %s: %s", a.Name, paramType(a)))
		}
		return
	}
	b.header("Attributes", "Attributes")
	for _, a := range attrs {
		b.param(a)
	}
}

func (b *builder) raises(raises []string) {
	if len(raises) == 0 {
		return
	}
	if b.style == StyleReST {
		b.line("")
		for _, r := range raises {
			b.line(fmt.Sprintf(":raises %s: %s", r, Placeholder))
		}
		return
	}
	b.header("Raises", "Raises")
	for _, r := range raises {
		if b.style == StyleNumpy {
			b.line(r)
			b.item(Placeholder)
			continue
		}
		b.item(r + ": " + Placeholder)
	}
}

func (b *builder) returns(ret string) {
	if ret == "" || ret == "None" {
		return
	}
	switch b.style {
	case StyleReST:
		b.line("")
		b.line(":returns: " + Placeholder)
		b.line(":rtype: " + ret)
	case StyleNumpy:
		b.header("Returns", "Returns")
		b.line(ret)
		b.item(Placeholder)
	default:
		b.header("Returns", "Returns")
		b.item(ret + ": " + Placeholder)
	}
}

func (b *builder) yields(ret string) {
	typ := yieldType(ret)
	switch b.style {
	case StyleReST:
		b.line("")
		b.line(":yields: " + Placeholder)
		b.line(":ytype: " + typ)
	case StyleNumpy:
		b.header("Yields", "Yields")
		b.line(typ)
		b.item(Placeholder)
	default:
		b.header("Yields", "Yields")
		b.item(typ + ": " + Placeholder)
	}
}

// yieldType extracts the element type from Iterator[X], Generator[X, ...] and friends.
func yieldType(ret string) string {
	open := strings.Index(ret, "[")
	if open < 0 || !strings.HasSuffix(ret, "]") {
		return Placeholder
	}
	inner := ret[open+1 : len(ret)-1]
	depth := 0
	for i, r := range inner {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i])
			}
		}
	}
	return strings.TrimSpace(inner)
}

func (b *builder) notes(fn Function) {
	var notes []string
	if len(fn.Bases) > 0 {
		notes = append(notes, "* Parent Classes: "+strings.Join(fn.Bases, ", "))
	}
	if fn.IsGenerator {
		notes = append(notes, "* Is a generator.")
	}
	var decorators []string
	for _, d := range fn.Decorators {
		if !ignoredDecorators[d] {
			decorators = append(decorators, d)
		}
	}
	if len(decorators) > 0 {
		notes = append(notes, "* Decorators Used: "+strings.Join(decorators, ", "))
	}
	if len(notes) == 0 {
		return
	}

	b.line("")
	switch b.style {
	case StyleReST:
		b.line(".. note::")
	case StyleNumpy:
		b.line("Notes")
		b.line("-----")
	default:
		b.line("Notes:")
	}
	for _, n := range notes {
		b.item(n)
	}
}
