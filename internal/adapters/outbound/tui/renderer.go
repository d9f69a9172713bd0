package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pycoding/pycoding/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderLintReport renders the merged diagnostics of one file.
func RenderLintReport(report *domain.LintReport) string {
	var b strings.Builder
	renderReport(&b, report)
	return b.String()
}

// RenderLintReports renders several files followed by a combined summary.
func RenderLintReports(reports []*domain.LintReport) string {
	if len(reports) == 0 {
		return "  " + dimStyle.Render("No Python files found.") + "\n"
	}

	var b strings.Builder
	var total domain.Summary
	clean := 0
	for _, r := range reports {
		addSummary(&total, r.Summary)
		if r.Summary.Total() == 0 && r.LinterAvailable {
			clean++
			continue
		}
		renderReport(&b, r)
	}

	b.WriteString("  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n",
		titleStyle.Render(fmt.Sprintf("%d files", len(reports))),
		dimStyle.Render(fmt.Sprintf("%d clean", clean)),
		summaryTags(total),
	)
	return b.String()
}

func renderReport(b *strings.Builder, r *domain.LintReport) {
	header := "  " + fileStyle.Render(shortenPath(r.File)) + "  " + dimStyle.Render(r.Linter)
	if r.Cached {
		header += "  " + faintStyle.Render("(cached)")
	}
	b.WriteString(header + "\n")

	if !r.LinterAvailable {
		b.WriteString("    " + warnStyle.Render(fmt.Sprintf("%s is not available; only syntax errors are shown", r.Linter)) + "\n")
	}
	if len(r.Diagnostics) == 0 {
		b.WriteString("    " + passStyle.Render("No issues found.") + "\n\n")
		return
	}

	for _, d := range r.Diagnostics {
		pos := fmt.Sprintf("%4d:%-3d", d.Line+1, d.Column)
		lines := strings.Split(d.Message, "\n")
		fmt.Fprintf(b, "    %s %s %s\n", dimStyle.Render(pos), severityTag(d.Severity), lines[0])
		for _, more := range lines[1:] {
			fmt.Fprintf(b, "    %s %s %s\n", strings.Repeat(" ", len(pos)), strings.Repeat(" ", 5), dimStyle.Render(more))
		}
	}
	b.WriteString("    " + summaryTags(r.Summary) + "\n\n")
}

func summaryTags(s domain.Summary) string {
	if s.Total() == 0 {
		return passStyle.Render("no issues")
	}
	var tags []string
	if s.Fatal > 0 {
		tags = append(tags, errorTagStyle.Render(fmt.Sprintf("%d fatal", s.Fatal)))
	}
	if s.Error > 0 {
		tags = append(tags, errorTagStyle.Render(fmt.Sprintf("%d errors", s.Error)))
	}
	if s.Warning > 0 {
		tags = append(tags, warnTagStyle.Render(fmt.Sprintf("%d warnings", s.Warning)))
	}
	if n := s.Convention + s.Refactor; n > 0 {
		tags = append(tags, infoTagStyle.Render(fmt.Sprintf("%d style", n)))
	}
	return strings.Join(tags, "  ")
}

func addSummary(total *domain.Summary, s domain.Summary) {
	total.Fatal += s.Fatal
	total.Error += s.Error
	total.Warning += s.Warning
	total.Convention += s.Convention
	total.Refactor += s.Refactor
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityFatal:
		return errorTagStyle.Render("fatal")
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	case domain.SeverityRefactor:
		return infoTagStyle.Render("refac")
	default:
		return infoTagStyle.Render("conv ")
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats recorded lint runs for terminal output.
func RenderHistory(entries []domain.LintHistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No lint history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Lint History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	prev := map[string]int{}
	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			fileStyle.Render(padRight(shortenPath(e.File), 30)),
			summaryTags(e.Summary),
		)

		total := e.Summary.Total()
		if last, ok := prev[e.File]; ok {
			if diff := total - last; diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}
		prev[e.File] = total

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
