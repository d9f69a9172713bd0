package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/tui"
	"github.com/pycoding/pycoding/internal/domain"
)

func newLintCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
		ciMode      bool
		jobs        int
		record      bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Python files and merge findings per line",
		Long: "Run the project's configured linter plus a syntax check over the given files or " +
			"directories (default: the whole project) and print one merged finding per line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}

			if showHistory {
				entries, err := svc.Lint.History(root)
				if err != nil {
					return err
				}
				if jsonOutput {
					return renderJSON(cmd, entries)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			reports, err := svc.Lint.LintPaths(cmd.Context(), root, paths, jobs)
			if err != nil {
				return err
			}

			if record {
				for _, r := range reports {
					if err := svc.Lint.Record(root, r); err != nil {
						return err
					}
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, reports); err != nil {
					return err
				}
			} else if len(reports) == 1 {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderLintReport(reports[0]))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderLintReports(reports))
			}

			if ciMode {
				if n := blockingFiles(reports); n > 0 {
					return fmt.Errorf("%d file(s) have errors", n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "Exit with code 1 when any file has error or fatal findings")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Maximum linters running at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&record, "record", false, "Append the results to the project's lint history")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show recorded lint history instead of linting")

	return cmd
}

func absPaths(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", a, err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func blockingFiles(reports []*domain.LintReport) int {
	n := 0
	for _, r := range reports {
		if r.Summary.Blocking() {
			n++
		}
	}
	return n
}
