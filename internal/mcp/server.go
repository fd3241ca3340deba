package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"class-inspector/inspect"
)

const (
	// ServerName is the MCP server name
	ServerName = "class-inspector"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the inspector
type Server struct {
	mcp       *server.MCPServer
	inspector *inspect.Inspector
}

// NewServer creates a new MCP server instance with all tools registered
func NewServer() *Server {
	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		inspector: inspect.New(),
	}

	s.registerTools()

	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(annotatedFieldsTool(), s.handleAnnotatedFields)
	s.mcp.AddTool(declaredMethodsTool(), s.handleDeclaredMethods)
	s.mcp.AddTool(listConstructorsTool(), s.handleListConstructors)
}
