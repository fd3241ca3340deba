package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to a directory inside a Go module; packages below it are loaded",
}

var typeProperty = map[string]interface{}{
	"type":        "string",
	"description": "Type to inspect: short (village.Villager), full (example.com/village.Villager) or bare (Villager)",
}

// annotatedFieldsTool returns the tool definition for annotated_fields
func annotatedFieldsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "annotated_fields",
		Description: "List the fields declared on a struct type whose tag contains the given key",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": pathProperty,
				"type": typeProperty,
				"marker": map[string]interface{}{
					"type":        "string",
					"description": "Struct tag key, e.g. json or important",
				},
			},
			Required: []string{"path", "type", "marker"},
		},
	}
}

// declaredMethodsTool returns the tool definition for declared_methods
func declaredMethodsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "declared_methods",
		Description: "List method names declared on a type and on the interfaces it asserts to implement",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": pathProperty,
				"type": typeProperty,
			},
			Required: []string{"path", "type"},
		},
	}
}

// listConstructorsTool returns the tool definition for list_constructors
func listConstructorsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_constructors",
		Description: "List the constructor functions of a type with their access and parameters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": pathProperty,
				"type": typeProperty,
			},
			Required: []string{"path", "type"},
		},
	}
}
