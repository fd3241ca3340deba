// Package mcp exposes the inspector as Model Context Protocol tools served
// over stdio.
//
// Every tool loads the Go packages below the given directory and resolves
// the type by short, full or bare name, the same way query files do:
//
//   - annotated_fields: fields of a struct carrying a tag key
//   - declared_methods: methods of a type and of the interfaces it asserts
//   - list_constructors: New*/new* functions returning the type
package mcp
