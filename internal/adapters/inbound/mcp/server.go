package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/pycoding/pycoding/internal/application"
)

const serverVersion = "0.1.0"

// NewPycodingMCPServer creates a new MCP server with all pycoding tools and
// resources registered. The projectPath is the root directory of the Python
// project the tools work on.
func NewPycodingMCPServer(projectPath string, svc application.Services) *server.MCPServer {
	s := server.NewMCPServer(
		"pycoding",
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
