package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/tui"
	"github.com/pycoding/pycoding/internal/domain/testdiscovery"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test discovery commands",
		Long:  "Discover the project's tests, check whether a file holds tests, and map failures back to source lines.",
	}
	cmd.AddCommand(newTestDiscoverCmd())
	cmd.AddCommand(newTestCheckCmd())
	cmd.AddCommand(newTestFailuresCmd())
	return cmd
}

func newTestDiscoverCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Collect the project's tests into a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}

			tree, err := svc.Tests.Discover(cmd.Context(), root)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, tree)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTestTree(tree))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newTestCheckCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Report whether the test library collects tests from FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}
			file, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			ok, err := svc.Tests.IsTestFile(cmd.Context(), root, file)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, map[string]any{"file": file, "is_test_file": ok})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newTestFailuresCmd() *cobra.Command {
	var (
		file       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "Extract traceback frames from test output on stdin",
		Long: "Read the output of a failing test run from stdin and print its traceback frames. " +
			"With --file, print only the lines of that file that appear in a traceback.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading test output: %w", err)
			}
			output := string(data)

			if file == "" {
				failures := testdiscovery.ParseFailures(output)
				if jsonOutput {
					return renderJSON(cmd, failures)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFailures(failures))
				return nil
			}

			// JSON lines stay 0-based for editors; text output is 1-based.
			lines := testdiscovery.FailedLines(output, filepath.ToSlash(file))
			if jsonOutput {
				return renderJSON(cmd, map[string]any{"file": file, "lines": lines})
			}
			for _, l := range lines {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", file, l+1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Only report lines of this file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
