package application

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/testdiscovery"
)

// TestService discovers a project's tests with its configured test library.
type TestService struct {
	env       *EnvService
	collector domain.TestCollector
}

func NewTestService(env *EnvService, collector domain.TestCollector) *TestService {
	return &TestService{env: env, collector: collector}
}

// Discover runs the collection pass and returns the tests as a directory tree.
func (s *TestService) Discover(ctx context.Context, projectPath string) (*domain.TestTree, error) {
	_, out, err := s.collect(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	return testdiscovery.ParseCollectOutput(out), nil
}

// IsTestFile reports whether the collection pass found tests in file.
func (s *TestService) IsTestFile(ctx context.Context, projectPath, file string) (bool, error) {
	env, out, err := s.collect(ctx, projectPath)
	if err != nil {
		return false, err
	}
	abs := absFrom(env.ProjectPath, file)
	rel, err := filepath.Rel(env.ProjectPath, abs)
	if err != nil {
		rel = file
	}
	return testdiscovery.ContainsFile(out, filepath.ToSlash(rel)), nil
}

func (s *TestService) collect(ctx context.Context, projectPath string) (*Environment, string, error) {
	env, err := s.env.Environment(ctx, projectPath)
	if err != nil {
		return nil, "", err
	}
	out, err := s.collector.Collect(ctx, env.Python(), env.Config.EffectiveTestLib(), env.ProjectPath)
	if err != nil {
		return nil, "", fmt.Errorf("collecting tests: %w", err)
	}
	return env, out, nil
}
