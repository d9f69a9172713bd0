package application

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pycoding/pycoding/internal/domain"
)

// FormatService runs the project's formatter over a file.
type FormatService struct {
	env       *EnvService
	formatter domain.Formatter
}

func NewFormatService(env *EnvService, formatter domain.Formatter) *FormatService {
	return &FormatService{env: env, formatter: formatter}
}

// FormatFile formats file and, when write is set and the content changed,
// writes the result back.
func (s *FormatService) FormatFile(ctx context.Context, projectPath, file string, write bool) (*domain.FormatResult, error) {
	env, err := s.env.Environment(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	path := absFrom(env.ProjectPath, file)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := env.Config.EffectiveFormatter()
	exe := env.Executable(name)
	if exe == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrFormatterUnavailable, name)
	}

	formatted, err := s.formatter.Format(ctx, domain.FormatRequest{
		Formatter:  name,
		Executable: exe,
		Content:    content,
		LineWidth:  env.Config.EffectiveLineWidth(),
		WorkDir:    env.ProjectPath,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", path, err)
	}

	result := &domain.FormatResult{
		File:      path,
		Formatter: name,
		Changed:   !bytes.Equal(content, formatted),
		Content:   string(formatted),
	}
	if write && result.Changed {
		if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Written = true
	}
	return result, nil
}
