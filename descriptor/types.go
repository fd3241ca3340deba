package descriptor

import (
	"reflect"
)

// MarkerKind is a struct tag key used to flag fields, e.g. `important:""`.
type MarkerKind string

//go:generate go tool stringer -type=AccessEnum -output=access_string.go

// AccessEnum is the declared visibility of a constructor.
type AccessEnum int

const (
	_ AccessEnum = iota // zero value is not a valid access level

	AccessPublic
	AccessRestricted // unexported or anonymous function
)

// TypeDescriptor describes the members declared directly on one type.
// Providers decide the order of every returned slice.
type TypeDescriptor interface {
	// Name returns a human-readable, package-qualified type name.
	Name() string
	// Fields returns the fields declared on the type (no promoted fields).
	Fields() []FieldDescriptor
	// Methods returns the methods declared on the type (no promoted methods).
	Methods() []MethodDescriptor
	// Interfaces returns the interfaces the type directly declares.
	Interfaces() []TypeDescriptor
	// Constructors returns the constructors declared for the type.
	Constructors() []ConstructorDescriptor
}

// FieldDescriptor describes a declared field.
type FieldDescriptor interface {
	Name() string
	HasMarker(marker MarkerKind) bool
}

// MethodDescriptor describes a declared method. Only the name is exposed.
type MethodDescriptor interface {
	Name() string
}

// Param is a formal constructor parameter.
type Param interface {
	String() string
	// AssignableFrom reports whether a value of dynamic type t may be passed.
	AssignableFrom(t reflect.Type) bool
	// Nillable reports whether the parameter type can hold an untyped nil.
	Nillable() bool
}

// ConstructorDescriptor describes a function producing the declaring type.
type ConstructorDescriptor interface {
	Name() string
	Params() []Param
	Access() AccessEnum
	// Invoke calls the constructor, refusing restricted ones with ErrRestricted.
	Invoke(args ...any) (any, error)
	// InvokePrivileged calls the constructor ignoring its declared access.
	// It fails with ErrAccessViolation when the provider cannot bypass it.
	InvokePrivileged(args ...any) (any, error)
}
