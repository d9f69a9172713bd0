package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pycoding/pycoding/internal/application"
)

// registerTools registers all pycoding MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc application.Services) {
	// 1. pycoding_lint
	s.AddTool(
		mcplib.NewTool("pycoding_lint",
			mcplib.WithDescription("Lint a Python file with the project's linter and return one merged finding per line (0-based lines)"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, absolute or relative to the project root"),
			),
		),
		handleLint(projectPath, svc),
	)

	// 2. pycoding_resolve_env
	s.AddTool(
		mcplib.NewTool("pycoding_resolve_env",
			mcplib.WithDescription("Resolve the project's virtual environment and the python, linter, formatter and test executables it provides"),
			mcplib.WithString("file", mcplib.Description("Optional file to include build commands for")),
		),
		handleResolveEnv(projectPath, svc),
	)

	// 3. pycoding_which
	s.AddTool(
		mcplib.NewTool("pycoding_which",
			mcplib.WithDescription("Resolve one executable name inside the project's environment"),
			mcplib.WithString("name",
				mcplib.Required(),
				mcplib.Description("Executable name, e.g. pytest or black"),
			),
			mcplib.WithBoolean("check_system", mcplib.Description("Fall back to system directories (defaults to check_system_paths)")),
		),
		handleWhich(projectPath, svc),
	)

	// 4. pycoding_discover_tests
	s.AddTool(
		mcplib.NewTool("pycoding_discover_tests",
			mcplib.WithDescription("Collect the project's tests with its test library and return them as a directory tree"),
		),
		handleDiscoverTests(projectPath, svc),
	)

	// 5. pycoding_docstring
	s.AddTool(
		mcplib.NewTool("pycoding_docstring",
			mcplib.WithDescription("Draft a docstring for the function or class enclosing a line and return where to insert it"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, absolute or relative to the project root"),
			),
			mcplib.WithNumber("line",
				mcplib.Required(),
				mcplib.Description("0-based line inside the definition"),
			),
			mcplib.WithString("style", mcplib.Description("google, numpy or reST (defaults to docstring_style)")),
		),
		handleDocstring(projectPath, svc),
	)

	// 6. pycoding_format
	s.AddTool(
		mcplib.NewTool("pycoding_format",
			mcplib.WithDescription("Run the project's formatter over a file and return the formatted source without writing it"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, absolute or relative to the project root"),
			),
		),
		handleFormat(projectPath, svc),
	)
}

func handleLint(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.Lint.LintFile(ctx, projectPath, file)
		if err != nil {
			return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleResolveEnv(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file := request.GetString("file", "")
		if file != "" {
			file = inProject(projectPath, file)
		}

		report, err := svc.Env.Report(ctx, projectPath, file)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving environment failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleWhich(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var checkSystem *bool
		if _, ok := request.GetArguments()["check_system"]; ok {
			v := request.GetBool("check_system", true)
			checkSystem = &v
		}

		path, err := svc.Env.Which(ctx, projectPath, name, checkSystem)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving %s failed: %v", name, err)), nil
		}
		if path == "" {
			return errorResult(fmt.Sprintf("%s not found in the project environment", name)), nil
		}
		return textResult(path), nil
	}
}

func handleDiscoverTests(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		tree, err := svc.Tests.Discover(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("test discovery failed: %v", err)), nil
		}
		return jsonResult(tree)
	}
}

func handleDocstring(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		line, err := request.RequireInt("line")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		style := request.GetString("style", "")

		result, err := svc.Docstring.Generate(ctx, projectPath, inProject(projectPath, file), line, style)
		if err != nil {
			return errorResult(fmt.Sprintf("docstring generation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleFormat(projectPath string, svc application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.Format.FormatFile(ctx, projectPath, inProject(projectPath, file), false)
		if err != nil {
			return errorResult(fmt.Sprintf("format failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// inProject resolves relative tool arguments against the project root.
func inProject(projectPath, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(projectPath, file)
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
