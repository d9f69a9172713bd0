package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/venv"
)

// Environment is everything resolved about one project's interpreter setup.
type Environment struct {
	ProjectPath string
	Config      domain.ProjectConfig
	Info        domain.ProjectInfo
	Query       venv.Query
	Resolved    venv.Resolved
	resolver    *venv.Resolver
}

// Executable resolves name against the environment, honouring the
// project's check_system_paths setting. "" means nothing matched.
func (e *Environment) Executable(name string) string {
	return e.resolver.ResolveExecutable(name, e.Resolved, e.Config.ChecksSystemPaths())
}

// ExecutableWith resolves name with an explicit system path policy.
func (e *Environment) ExecutableWith(name string, checkSystemPaths bool) string {
	return e.resolver.ResolveExecutable(name, e.Resolved, checkSystemPaths)
}

// Executables resolves the tools the project is configured to use.
func (e *Environment) Executables() domain.ExecutableSet {
	return domain.ExecutableSet{
		Python:    e.Executable("python"),
		Linter:    e.Executable(e.Config.EffectiveLinter()),
		Formatter: e.Executable(e.Config.EffectiveFormatter()),
		TestLib:   e.Executable(e.Config.EffectiveTestLib()),
	}
}

// Python returns the interpreter to run project code with.
func (e *Environment) Python() string {
	if p := e.Executable("python"); p != "" {
		return p
	}
	return "python"
}

// EnvService resolves virtual environments and executables for projects.
type EnvService struct {
	configLoader domain.ConfigLoader
	detector     domain.ProjectDetector
	snapshots    domain.SnapshotProvider
	prober       venv.Prober
}

func NewEnvService(
	configLoader domain.ConfigLoader,
	detector domain.ProjectDetector,
	snapshots domain.SnapshotProvider,
	prober venv.Prober,
) *EnvService {
	return &EnvService{
		configLoader: configLoader,
		detector:     detector,
		snapshots:    snapshots,
		prober:       prober,
	}
}

// Environment loads the project's config, inspects its markers and
// resolves its virtual environment.
func (s *EnvService) Environment(ctx context.Context, projectPath string) (*Environment, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	cfg, err := s.configLoader.Load(abs)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	info, err := s.detector.Detect(abs)
	if err != nil {
		// The marker scan still yields a usable name.
		slog.Warn("inspecting project", slog.String("path", abs), slog.String("error", err.Error()))
	}

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading environment catalog: %w", err)
	}

	resolver := venv.NewResolver(snap, s.prober)
	q := venv.Query{
		ProjectName:     info.Name,
		ProjectBasePath: abs,
		StoredVenvName:  cfg.VenvName,
	}
	resolved := resolver.ResolveVenvPath(q)

	slog.Debug("environment resolved",
		slog.String("project", info.Name),
		slog.String("venv", resolved.VenvPath),
		slog.String("source", string(resolved.Source)),
	)

	return &Environment{
		ProjectPath: abs,
		Config:      cfg,
		Info:        info,
		Query:       q,
		Resolved:    resolved,
		resolver:    resolver,
	}, nil
}

// Report describes the project's environment. When file is set the
// build-menu commands for it are included.
func (s *EnvService) Report(ctx context.Context, projectPath, file string) (*domain.EnvironmentReport, error) {
	env, err := s.Environment(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	name := venv.CandidateName(env.Query)
	report := &domain.EnvironmentReport{
		Project:      env.Info.Name,
		BasePath:     env.ProjectPath,
		VenvName:     name,
		VenvPath:     env.Resolved.VenvPath,
		Source:       string(env.Resolved.Source),
		SitePackages: env.resolver.SitePackages(env.Resolved),
		Known:        env.resolver.Snapshot().IsKnown(name),
		Executables:  env.Executables(),
	}
	if file != "" {
		cmds := commandsFor(env, file)
		report.Commands = &cmds
	}
	return report, nil
}

// Which resolves one executable name for the project. checkSystemPaths
// overrides the configured policy when non-nil.
func (s *EnvService) Which(ctx context.Context, projectPath, name string, checkSystemPaths *bool) (string, error) {
	env, err := s.Environment(ctx, projectPath)
	if err != nil {
		return "", err
	}
	if checkSystemPaths != nil {
		return env.ExecutableWith(name, *checkSystemPaths), nil
	}
	return env.Executable(name), nil
}

// Commands returns the build-menu commands for file.
func (s *EnvService) Commands(ctx context.Context, projectPath, file string) (*domain.CommandSet, error) {
	env, err := s.Environment(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	cmds := commandsFor(env, file)
	return &cmds, nil
}

func commandsFor(env *Environment, file string) domain.CommandSet {
	exe := env.Executables()
	exe.Linter = orName(exe.Linter, env.Config.EffectiveLinter())
	exe.Formatter = orName(exe.Formatter, env.Config.EffectiveFormatter())
	return domain.BuildCommands(exe, file, env.Config.EffectiveTestLib())
}

func orName(path, name string) string {
	if path == "" {
		return name
	}
	return path
}
