package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"class-inspector/descriptor"
	"class-inspector/internal/analyze"
	"class-inspector/internal/match"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeLoadFailed    = -32001 // Packages below path could not be loaded
	ErrorCodeTypeNotFound  = -32002 // No loaded type matches the type parameter
)

// handleAnnotatedFields handles the annotated_fields tool invocation
func (s *Server) handleAnnotatedFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	marker := getStringDefault(args, "marker", "")
	if marker == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "marker parameter is required", map[string]interface{}{
			"param":  "marker",
			"reason": "missing or empty",
		})
	}

	info, err := loadType(ctx, args)
	if err != nil {
		return nil, err
	}

	fields, err := s.inspector.AnnotatedFields(info, descriptor.MarkerKind(marker))
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "inspection failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	names := fields.Sorted()

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"type":   info.ID.String(),
		"marker": marker,
		"fields": nonNil(names),
		"count":  len(names),
	})), nil
}

// handleDeclaredMethods handles the declared_methods tool invocation
func (s *Server) handleDeclaredMethods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	info, err := loadType(ctx, args)
	if err != nil {
		return nil, err
	}

	methods, err := s.inspector.AllDeclaredMethods(info)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "inspection failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	names := methods.Sorted()

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"type":    info.ID.String(),
		"methods": nonNil(names),
		"count":   len(names),
	})), nil
}

// handleListConstructors handles the list_constructors tool invocation
func (s *Server) handleListConstructors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	info, err := loadType(ctx, args)
	if err != nil {
		return nil, err
	}

	ctors := make([]map[string]interface{}, 0, len(info.Ctors))
	for _, c := range info.Ctors {
		params := make([]string, 0, len(c.Params()))
		for _, p := range c.Params() {
			params = append(params, p.String())
		}

		ctors = append(ctors, map[string]interface{}{
			"name":      c.Name(),
			"access":    c.Access().String(),
			"params":    params,
			"signature": c.Signature(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"type":         info.ID.String(),
		"constructors": ctors,
		"count":        len(ctors),
	})), nil
}

// loadType validates the path and type parameters, loads the packages
// below path and resolves the type.
func loadType(ctx context.Context, args map[string]interface{}) (*analyze.TypeInfo, error) {
	path := getStringDefault(args, "path", "")
	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	typeName := getStringDefault(args, "type", "")
	if typeName == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "type parameter is required", map[string]interface{}{
			"param":  "type",
			"reason": "missing or empty",
		})
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = path

	graph, err := analyzer.LoadPackagesContext(ctx, "./...")
	if err != nil {
		return nil, newMCPError(ErrorCodeLoadFailed, "failed to load packages", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	info := graph.Resolve(typeName)
	if info == nil {
		return nil, newMCPError(ErrorCodeTypeNotFound, fmt.Sprintf("type %s not found", typeName), map[string]interface{}{
			"param":       "type",
			"value":       typeName,
			"suggestions": match.Suggest(typeName, graph.ShortNames()),
		})
	}

	return info, nil
}

// Helper functions

func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks that path is an existing absolute directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}

	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	return nil
}

// formatJSON formats data as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}

	return string(bytes)
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}

	return defaultValue
}

// nonNil keeps empty results encoded as [] instead of null.
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}

	return names
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
