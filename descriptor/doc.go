// Package descriptor defines the type-metadata model consumed by the
// inspector and a runtime provider for it built on reflect.
//
// Key types:
//   - TypeDescriptor: a type's declared fields, methods, interfaces and constructors
//   - FieldDescriptor: field name and marker (struct tag key) lookup
//   - ConstructorDescriptor: formal parameters, access level and invocation
//   - MarkerKind: struct tag key that flags a field
//
// The runtime provider is assembled from a reflect.Type plus explicit
// declarations, since Go has neither constructors nor declared interface
// conformance at run time:
//
//	td, err := descriptor.Of[village.Villager](
//	    descriptor.Implements[village.Tradeable](),
//	    descriptor.Constructor(village.NewVillager),
//	)
//
// Constructors are listed in registration order. Descriptors are immutable
// once built and safe for concurrent use.
package descriptor
