package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newDocstringCmd() *cobra.Command {
	var (
		projectPath string
		line        int
		style       string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "docstring FILE",
		Short: "Draft a docstring for the definition enclosing a line",
		Long: "Find the innermost function or class enclosing --line in FILE and print a docstring " +
			"template in the google, numpy or reST style.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line < 1 {
				return errors.New("--line must be 1 or greater")
			}
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

			result, err := svc.Docstring.Generate(cmd.Context(), root, file, line-1, style)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Docstring)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "1-based line inside the definition")
	cmd.Flags().StringVar(&style, "style", "", "google, numpy or reST (defaults to docstring_style)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}
