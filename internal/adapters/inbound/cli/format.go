package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/tui"
)

func newFormatCmd() *cobra.Command {
	var (
		projectPath string
		write       bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "format FILE",
		Short: "Run the project's formatter over a file",
		Long:  "Pipe FILE through the configured formatter (black, autopep8 or yapf) from the project environment.",
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

			result, err := svc.Format.FormatFile(cmd.Context(), root, file, write)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFormatResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the formatted source back to FILE")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
