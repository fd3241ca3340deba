// Package inspect answers three questions about a descriptor.TypeDescriptor:
//
//   - AnnotatedFields: which declared fields carry a marker
//   - AllDeclaredMethods: which method names the type declares or takes on
//     from the interfaces it directly declares
//   - CreateInstance: build a value through the first declared constructor
//     whose parameters accept the arguments, bypassing restricted access
//
// Only members declared directly on the type are considered. Embedded
// (promoted) members and the interfaces embedded in a declared interface are
// not walked. Method overloads collapse to a single name. The interface
// methods are whatever the contract descriptor lists: the static provider
// lists explicit methods only, the runtime one needs descriptor.Explicit for
// interfaces that embed others.
//
// Constructors are tried in the order the descriptor lists them, and the
// first match wins even when a later one would fit more closely. An untyped
// nil argument matches any parameter whose type can hold nil (pointer,
// interface, map, slice, func, chan) and never a value type.
//
// Nothing is cached. All functions are safe for concurrent use as long as the
// descriptors are.
package inspect
