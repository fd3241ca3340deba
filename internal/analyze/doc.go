// Package analyze provides package loading and a source-level type model.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to describe
// named types the way they are written, implementing
// descriptor.TypeDescriptor without running any code.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: declared fields, methods, asserted interfaces and constructors
//   - CtorInfo: a New*/new* function, invocable once bound to its runtime function
//
// Interfaces count as declared when the package asserts them:
//
//	var _ village.Tradeable = (*Villager)(nil)
package analyze
