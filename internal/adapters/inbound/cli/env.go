package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/tui"
)

func newEnvCmd() *cobra.Command {
	var (
		projectPath string
		file        string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the project's virtual environment and tools",
		Long: "Resolve the project's virtual environment from the active VIRTUAL_ENV, the " +
			"configured venv name, the project name or the directory name, and report the " +
			"python, linter, formatter and test executables it provides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}
			if file != "" {
				if file, err = filepath.Abs(file); err != nil {
					return err
				}
			}

			report, err := svc.Env.Report(cmd.Context(), root, file)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderEnvironment(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().StringVar(&file, "file", "", "Include build commands for this file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newWhichCmd() *cobra.Command {
	var (
		projectPath string
		noSystem    bool
	)

	cmd := &cobra.Command{
		Use:   "which NAME",
		Short: "Resolve an executable inside the project's environment",
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

			var checkSystem *bool
			if cmd.Flags().Changed("no-system") {
				v := !noSystem
				checkSystem = &v
			}
			path, err := svc.Env.Which(cmd.Context(), root, args[0], checkSystem)
			if err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("%s not found in the project environment", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVar(&noSystem, "no-system", false, "Only look inside the virtual environment")

	return cmd
}

func newCommandsCmd() *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "commands FILE",
		Short: "Print run, compile, lint, format and test commands for a file",
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

			cmds, err := svc.Env.Commands(cmd.Context(), root, file)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, cmds)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCommands(*cmds))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
