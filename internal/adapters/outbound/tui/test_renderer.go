package tui

import (
	"fmt"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
)

// RenderTestTree renders discovered tests as an indented tree.
func RenderTestTree(tree *domain.TestTree) string {
	if tree == nil || tree.Root == nil || tree.Count == 0 {
		return "  " + dimStyle.Render("No tests discovered.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Tests") + "  " + dimStyle.Render(fmt.Sprintf("(%d in %d files)", tree.Count, len(tree.Files))) + "\n\n")
	for i, child := range tree.Root.Children {
		renderNode(&b, child, "  ", i == len(tree.Root.Children)-1)
	}
	b.WriteString("\n")
	return b.String()
}

func renderNode(b *strings.Builder, n *domain.TestNode, prefix string, last bool) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}

	name := n.Name
	if len(n.Children) > 0 {
		name = sectionStyle.Render(name + "/")
	} else {
		name = fileStyle.Render(name)
	}
	b.WriteString(prefix + faintStyle.Render(branch) + name + "\n")

	childPrefix := prefix + faintStyle.Render(next)
	for i, c := range n.Children {
		renderNode(b, c, childPrefix, i == len(n.Children)-1 && len(n.Tests) == 0)
	}
	for i, t := range n.Tests {
		tb := "├── "
		if i == len(n.Tests)-1 {
			tb = "└── "
		}
		b.WriteString(childPrefix + faintStyle.Render(tb) + passStyle.Render("●") + " " + t + "\n")
	}
}

// RenderFailures renders traceback frames from a failing test run.
func RenderFailures(failures []domain.TestFailure) string {
	if len(failures) == 0 {
		return "  " + passStyle.Render("No failures found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + errorTagStyle.Render(fmt.Sprintf("%d frames", len(failures))) + "\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			failStyle.Render("●"),
			fileStyle.Render(fmt.Sprintf("%s:%d", shortenPath(f.File), f.Line)),
			f.Name,
		)
	}
	return b.String()
}

// RenderFormatResult renders the outcome of formatting one file.
func RenderFormatResult(r *domain.FormatResult) string {
	var status string
	switch {
	case !r.Changed:
		status = passStyle.Render("already formatted")
	case r.Written:
		status = warnStyle.Render("reformatted")
	default:
		status = warnStyle.Render("would reformat") + "  " + hintStyle.Render("(use --write to apply)")
	}
	return fmt.Sprintf("  %s  %s  %s\n", fileStyle.Render(shortenPath(r.File)), dimStyle.Render(r.Formatter), status)
}
