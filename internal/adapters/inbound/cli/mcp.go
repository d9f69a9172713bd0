package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/pycoding/pycoding/internal/adapters/inbound/mcp"
	"github.com/pycoding/pycoding/internal/adapters/outbound/watcher"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the pycoding MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start pycoding MCP server (stdio)",
		Long: "Start the pycoding MCP server using stdio transport. This allows AI coding assistants " +
			"to lint files, resolve the project environment, discover tests and draft docstrings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}

			// With autolint on, saved files are re-linted in the background so
			// pycoding_lint answers from the cache.
			cfg, err := svc.Config.Load(root)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.Autolint {
				w, err := watcher.New(root, saveHandler(svc, root, true, io.Discard), watcher.Options{Exclude: cfg.ExcludePaths})
				if err != nil {
					slog.Warn("autolint disabled", slog.String("error", err.Error()))
				} else {
					defer w.Close()
					go func() { _ = w.Run(cmd.Context()) }()
				}
			}

			s := mcpadapter.NewPycodingMCPServer(root, svc)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")

	return cmd
}
