// Package diagnostics collapses linter findings into one annotation per line.
package diagnostics

import (
	"sort"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
)

type lineGroup struct {
	line    int
	entries []domain.Diagnostic
}

// Aggregate merges ds into at most one MergedDiagnostic per line, sorted by line.
//
// Messages on a shared line are joined with "\n" in input order and the column
// is the minimum seen. The first error or fatal entry decides the severity;
// failing that any warning does; failing that the first entry does.
func Aggregate(ds []domain.Diagnostic) []domain.MergedDiagnostic {
	groups := make([]*lineGroup, 0, len(ds))
	byLine := make(map[int]*lineGroup, len(ds))
	for _, d := range ds {
		g, ok := byLine[d.Line]
		if !ok {
			g = &lineGroup{line: d.Line}
			byLine[d.Line] = g
			groups = append(groups, g)
		}
		g.entries = append(g.entries, d)
	}

	out := make([]domain.MergedDiagnostic, 0, len(groups))
	for _, g := range groups {
		out = append(out, merge(g))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

func merge(g *lineGroup) domain.MergedDiagnostic {
	first := g.entries[0]
	if len(g.entries) == 1 {
		return domain.MergedDiagnostic{
			Severity:  first.Severity,
			Line:      first.Line,
			Column:    first.Column,
			Message:   first.Message,
			Indicator: first.Severity.Indicator(),
			Count:     1,
		}
	}

	messages := make([]string, 0, len(g.entries))
	column := first.Column
	for _, d := range g.entries {
		messages = append(messages, d.Message)
		if d.Column < column {
			column = d.Column
		}
	}

	sev := pickSeverity(g.entries)
	return domain.MergedDiagnostic{
		Severity:  sev,
		Line:      g.line,
		Column:    column,
		Message:   strings.Join(messages, "\n"),
		Indicator: sev.Indicator(),
		Count:     len(g.entries),
	}
}

func pickSeverity(entries []domain.Diagnostic) domain.Severity {
	warning := false
	for _, d := range entries {
		switch d.Severity.Tier() {
		case 2:
			return d.Severity
		case 1:
			warning = true
		}
	}
	if warning {
		return domain.SeverityWarning
	}
	return entries[0].Severity
}

// Merge aggregates linter findings together with parse errors. Parse errors
// are always fatal.
func Merge(lint, syntax []domain.Diagnostic) []domain.MergedDiagnostic {
	all := make([]domain.Diagnostic, 0, len(lint)+len(syntax))
	all = append(all, lint...)
	for _, d := range syntax {
		d.Severity = domain.SeverityFatal
		all = append(all, d)
	}
	return Aggregate(all)
}

// Summarize counts merged lines per severity.
func Summarize(ms []domain.MergedDiagnostic) domain.Summary {
	var s domain.Summary
	for _, m := range ms {
		switch m.Severity {
		case domain.SeverityFatal:
			s.Fatal++
		case domain.SeverityError:
			s.Error++
		case domain.SeverityWarning:
			s.Warning++
		case domain.SeverityRefactor:
			s.Refactor++
		default:
			s.Convention++
		}
	}
	return s
}
