package application

import "github.com/pycoding/pycoding/internal/domain"

// Services bundles the application services an inbound adapter drives.
type Services struct {
	Config    domain.ConfigLoader
	Env       *EnvService
	Lint      *LintService
	Tests     *TestService
	Format    *FormatService
	Docstring *DocstringService
}
