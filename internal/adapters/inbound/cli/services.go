package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pycoding/pycoding/internal/adapters/outbound/cache"
	"github.com/pycoding/pycoding/internal/adapters/outbound/config"
	"github.com/pycoding/pycoding/internal/adapters/outbound/detector"
	"github.com/pycoding/pycoding/internal/adapters/outbound/formatter"
	"github.com/pycoding/pycoding/internal/adapters/outbound/fsprobe"
	"github.com/pycoding/pycoding/internal/adapters/outbound/gitinfo"
	"github.com/pycoding/pycoding/internal/adapters/outbound/history"
	"github.com/pycoding/pycoding/internal/adapters/outbound/linter"
	"github.com/pycoding/pycoding/internal/adapters/outbound/pyenv"
	"github.com/pycoding/pycoding/internal/adapters/outbound/pysyntax"
	"github.com/pycoding/pycoding/internal/adapters/outbound/scanner"
	"github.com/pycoding/pycoding/internal/adapters/outbound/testrunner"
	"github.com/pycoding/pycoding/internal/application"
)

// newServices wires the application services to the real adapters.
func newServices() (application.Services, error) {
	store, err := cache.New(cache.DefaultSize)
	if err != nil {
		return application.Services{}, fmt.Errorf("creating lint cache: %w", err)
	}

	loader := config.New()
	env := application.NewEnvService(loader, detector.New(), pyenv.New(), fsprobe.New())
	lint := application.NewLintService(env, linter.NewRunner(), pysyntax.NewChecker(), scanner.New(),
		application.WithCache(store),
		application.WithHistory(history.New(), gitinfo.New()),
	)

	return application.Services{
		Config:    loader,
		Env:       env,
		Lint:      lint,
		Tests:     application.NewTestService(env, testrunner.New()),
		Format:    application.NewFormatService(env, formatter.New()),
		Docstring: application.NewDocstringService(loader, pysyntax.NewLocator()),
	}, nil
}

// projectRoot resolves the project a command works on: the --path flag,
// else the git work tree enclosing the working directory, else the
// working directory itself.
func projectRoot(path string) (string, error) {
	if path != "" {
		return filepath.Abs(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	root, err := gitinfo.New().Root(cwd)
	if err != nil {
		slog.Debug("not inside a git repository", slog.String("dir", cwd))
		return cwd, nil
	}
	return root, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
