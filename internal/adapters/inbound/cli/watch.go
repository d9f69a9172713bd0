package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/tui"
	"github.com/pycoding/pycoding/internal/adapters/outbound/watcher"
	"github.com/pycoding/pycoding/internal/application"
)

func newWatchCmd() *cobra.Command {
	var (
		projectPath string
		debounce    time.Duration
		lint        bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-lint Python files as they are saved",
		Long: "Watch the project tree and re-lint every saved .py file. Linting on save follows " +
			"the autolint setting; --lint forces it on for this session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot(projectPath)
			if err != nil {
				return err
			}
			svc, err := newServices()
			if err != nil {
				return err
			}
			cfg, err := svc.Config.Load(root)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			handler := saveHandler(svc, root, lint || cfg.Autolint, out)
			w, err := watcher.New(root, handler, watcher.Options{Debounce: debounce, Exclude: cfg.ExcludePaths})
			if err != nil {
				return err
			}
			defer w.Close()

			if !lint && !cfg.Autolint {
				fmt.Fprintln(out, "autolint is off; saved files are listed but not linted (use --lint)")
			}
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", root)
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to the enclosing git work tree)")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before saved files are handled")
	cmd.Flags().BoolVar(&lint, "lint", false, "Lint on save even when autolint is off")

	return cmd
}

// saveHandler drops stale cache entries for saved files and, when lint is
// set, re-lints and renders them to out.
func saveHandler(svc application.Services, root string, lint bool, out io.Writer) watcher.Handler {
	return func(ctx context.Context, files []string) {
		for _, f := range files {
			svc.Lint.Invalidate(f)
			if !lint {
				fmt.Fprintf(out, "  saved %s\n", f)
				continue
			}
			report, err := svc.Lint.LintFile(ctx, root, f)
			if err != nil {
				slog.Warn("lint on save failed", slog.String("file", f), slog.String("error", err.Error()))
				continue
			}
			fmt.Fprint(out, tui.RenderLintReport(report))
		}
	}
}
