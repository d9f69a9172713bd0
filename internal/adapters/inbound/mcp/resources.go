package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pycoding/pycoding/internal/application"
)

const (
	environmentURI = "pycoding://environment"
	configURI      = "pycoding://config"
)

// registerResources registers all pycoding MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc application.Services) {
	// 1. pycoding://environment - resolved venv and executables
	s.AddResource(
		mcplib.NewResource(
			environmentURI,
			"Environment",
			mcplib.WithResourceDescription("Virtual environment and tool executables resolved for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleEnvironmentResource(projectPath, svc),
	)

	// 2. pycoding://config - effective project configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective .pycoding.yaml settings with defaults applied"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, svc),
	)
}

func handleEnvironmentResource(projectPath string, svc application.Services) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.Env.Report(ctx, projectPath, "")
		if err != nil {
			return nil, fmt.Errorf("resolving environment failed: %w", err)
		}
		return jsonResource(environmentURI, report)
	}
}

// effectiveConfig is the configuration as the tools apply it.
type effectiveConfig struct {
	VenvName         string   `json:"venv_name,omitempty"`
	Linter           string   `json:"linter"`
	Formatter        string   `json:"formatter"`
	TestLib          string   `json:"test_lib"`
	DocstringStyle   string   `json:"docstring_style"`
	LineWidth        int      `json:"line_width"`
	CheckSystemPaths bool     `json:"check_system_paths"`
	Autolint         bool     `json:"autolint"`
	ExcludePaths     []string `json:"exclude_paths,omitempty"`
}

func handleConfigResource(projectPath string, svc application.Services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.Config.Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config failed: %w", err)
		}
		return jsonResource(configURI, effectiveConfig{
			VenvName:         cfg.VenvName,
			Linter:           cfg.EffectiveLinter(),
			Formatter:        cfg.EffectiveFormatter(),
			TestLib:          cfg.EffectiveTestLib(),
			DocstringStyle:   cfg.EffectiveDocstringStyle(),
			LineWidth:        cfg.EffectiveLineWidth(),
			CheckSystemPaths: cfg.ChecksSystemPaths(),
			Autolint:         cfg.Autolint,
			ExcludePaths:     cfg.ExcludePaths,
		})
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
