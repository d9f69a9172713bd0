package application

import (
	"context"
	"fmt"
	"os"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/docstring"
)

// DocstringResult is a generated docstring and where it belongs.
type DocstringResult struct {
	File     string              `json:"file"`
	Function *docstring.Function `json:"function"`
	Style    docstring.Style     `json:"style"`
	// InsertLine is the 0-based line the docstring goes before.
	InsertLine int    `json:"insert_line"`
	Docstring  string `json:"docstring"`
}

// DocstringService generates docstring templates for definitions in a file.
type DocstringService struct {
	configLoader domain.ConfigLoader
	locator      domain.FunctionLocator
}

func NewDocstringService(configLoader domain.ConfigLoader, locator domain.FunctionLocator) *DocstringService {
	return &DocstringService{configLoader: configLoader, locator: locator}
}

// Generate renders a docstring for the definition enclosing the 0-based
// line. An empty style means the project's configured style.
func (s *DocstringService) Generate(ctx context.Context, projectPath, file string, line int, style string) (*DocstringResult, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if style == "" {
		style = cfg.EffectiveDocstringStyle()
	}
	st, err := docstring.ParseStyle(style)
	if err != nil {
		return nil, err
	}

	path := absFrom(projectPath, file)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	fn, err := s.locator.FunctionAt(ctx, content, line)
	if err != nil {
		return nil, fmt.Errorf("locating definition: %w", err)
	}
	if fn == nil {
		return nil, fmt.Errorf("no function or class encloses line %d of %s", line+1, path)
	}

	return &DocstringResult{
		File:       path,
		Function:   fn,
		Style:      st,
		InsertLine: fn.BodyLine,
		Docstring:  docstring.Render(*fn, st, fn.Indent),
	}, nil
}
