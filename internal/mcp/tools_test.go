package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func villageDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.Abs(filepath.Join("..", "..", "village"))
	require.NoError(t, err)

	return dir
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	return req
}

// decodeResult unmarshals the JSON text content of a tool result.
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	var text string
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		text = c.Text
	case *mcp.TextContent:
		text = c.Text
	default:
		t.Fatalf("unexpected content %T", c)
	}

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &out))

	return out
}

func requireMCPError(t *testing.T, err error, code int) *MCPError {
	t.Helper()

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr), "expected MCPError, got %v", err)
	assert.Equal(t, code, mcpErr.Code)

	return mcpErr
}

func TestHandleAnnotatedFields(t *testing.T) {
	s := NewServer()

	result, err := s.handleAnnotatedFields(context.Background(), callRequest("annotated_fields", map[string]interface{}{
		"path":   villageDir(t),
		"type":   "village.Merchant",
		"marker": "important",
	}))
	require.NoError(t, err)

	out := decodeResult(t, result)
	assert.Equal(t, "class-inspector/village.Merchant", out["type"])
	assert.Equal(t, []interface{}{"Stall", "margin"}, out["fields"])
	assert.InDelta(t, 2, out["count"], 0)

	// A struct without tagged fields yields an empty list, not null.
	result, err = s.handleAnnotatedFields(context.Background(), callRequest("annotated_fields", map[string]interface{}{
		"path":   villageDir(t),
		"type":   "Hut",
		"marker": "important",
	}))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, decodeResult(t, result)["fields"])
}

func TestHandleAnnotatedFields_MissingMarker(t *testing.T) {
	s := NewServer()

	_, err := s.handleAnnotatedFields(context.Background(), callRequest("annotated_fields", map[string]interface{}{
		"path": villageDir(t),
		"type": "Villager",
	}))
	mcpErr := requireMCPError(t, err, ErrorCodeInvalidParams)
	assert.Equal(t, "marker parameter is required", mcpErr.Message)
}

func TestHandleDeclaredMethods(t *testing.T) {
	s := NewServer()

	result, err := s.handleDeclaredMethods(context.Background(), callRequest("declared_methods", map[string]interface{}{
		"path": villageDir(t),
		"type": "Villager",
	}))
	require.NoError(t, err)

	out := decodeResult(t, result)
	assert.Equal(t, []interface{}{"Cancel", "Greet", "Trade"}, out["methods"])
	assert.InDelta(t, 3, out["count"], 0)
}

func TestHandleListConstructors(t *testing.T) {
	s := NewServer()

	result, err := s.handleListConstructors(context.Background(), callRequest("list_constructors", map[string]interface{}{
		"path": villageDir(t),
		"type": "Villager",
	}))
	require.NoError(t, err)

	out := decodeResult(t, result)
	ctors, ok := out["constructors"].([]interface{})
	require.True(t, ok)
	require.Len(t, ctors, 2)

	first, ok := ctors[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "village.NewVillager", first["name"])
	assert.Equal(t, "AccessPublic", first["access"])
	assert.Equal(t, []interface{}{"string", "int"}, first["params"])
	assert.Equal(t, "NewVillager(name string, age int) (*Villager, error)", first["signature"])

	second, ok := ctors[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "AccessRestricted", second["access"])
}

func TestLoadType_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{"missing path", map[string]interface{}{"type": "Villager"}, ErrorCodeInvalidParams},
		{"relative path", map[string]interface{}{"path": "village", "type": "Villager"}, ErrorCodeInvalidParams},
		{"missing dir", map[string]interface{}{"path": filepath.Join(t.TempDir(), "nope"), "type": "Villager"}, ErrorCodeInvalidParams},
		{"missing type", map[string]interface{}{"path": villageDir(t)}, ErrorCodeInvalidParams},
		{"unknown type", map[string]interface{}{"path": villageDir(t), "type": "Barn"}, ErrorCodeTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadType(context.Background(), tt.args)
			requireMCPError(t, err, tt.code)
		})
	}
}

func TestLoadType_Suggestions(t *testing.T) {
	_, err := loadType(context.Background(), map[string]interface{}{"path": villageDir(t), "type": "Marchant"})
	mcpErr := requireMCPError(t, err, ErrorCodeTypeNotFound)

	data, ok := mcpErr.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"village.Merchant"}, data["suggestions"])
}

func TestHandlers_InvalidArguments(t *testing.T) {
	s := NewServer()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = "not an object"

	_, err := s.handleDeclaredMethods(context.Background(), req)
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestValidatePath(t *testing.T) {
	assert.ErrorIs(t, validatePath(""), ErrPathRequired)
	assert.ErrorIs(t, validatePath("relative"), ErrPathNotAbsolute)
	assert.ErrorIs(t, validatePath(filepath.Join(t.TempDir(), "missing")), ErrPathNotFound)
	assert.ErrorIs(t, validatePath(filepath.Join(villageDir(t), "villager.go")), ErrNotDirectory)
	assert.NoError(t, validatePath(villageDir(t)))
}
