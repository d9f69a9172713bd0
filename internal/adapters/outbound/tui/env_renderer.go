package tui

import (
	"fmt"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
)

// RenderEnvironment renders the interpreter environment resolved for a project.
func RenderEnvironment(env *domain.EnvironmentReport) string {
	var b strings.Builder

	title := headerStyle.Render(env.Project)
	sub := dimStyle.Render(env.BasePath)
	venv := warnStyle.Render("no virtual environment found")
	if env.VenvPath != "" {
		venv = passStyle.Render(env.VenvPath) + "  " + dimStyle.Render("("+env.Source+")")
	}
	b.WriteString(boxStyle.Render(title + "\n" + sub + "\n\n" + venv))
	b.WriteString("\n\n")

	name := env.VenvName
	if name == "" {
		name = "·"
	} else if !env.Known {
		name += "  " + faintStyle.Render("(not a known environment)")
	}
	renderField(&b, "venv name", name)
	site := env.SitePackages
	if site == "" {
		site = faintStyle.Render("·")
	}
	renderField(&b, "site-packages", site)

	b.WriteString("\n  " + sectionStyle.Render("Executables") + "\n")
	renderExecutable(&b, "python", env.Executables.Python)
	renderExecutable(&b, "linter", env.Executables.Linter)
	renderExecutable(&b, "formatter", env.Executables.Formatter)
	renderExecutable(&b, "test", env.Executables.TestLib)

	if env.Commands != nil {
		b.WriteString("\n")
		b.WriteString(RenderCommands(*env.Commands))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderCommands renders the build-menu commands for one file.
func RenderCommands(c domain.CommandSet) string {
	var b strings.Builder
	b.WriteString("  " + sectionStyle.Render("Commands") + "\n")
	for _, row := range [][2]string{
		{"run", c.Run},
		{"compile", c.Compile},
		{"lint", c.Lint},
		{"format", c.Format},
		{"test", c.Test},
	} {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(padRight(row[0], 10)), row[1])
	}
	return b.String()
}

func renderField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(padRight(label, 16)), value)
}

func renderExecutable(b *strings.Builder, label, path string) {
	icon := passStyle.Render("●")
	if !strings.Contains(path, "/") {
		// Not resolved to a file; the bare name is left to PATH.
		icon = warnStyle.Render("●")
	}
	fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(label, 10), fileStyle.Render(path))
}
