package inspect

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"class-inspector/descriptor"
)

// Set is a set of member names.
type Set map[string]struct{}

func (s Set) add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Inspector runs introspection queries. The zero value is ready to use.
type Inspector struct{}

// New creates a new Inspector.
func New() *Inspector {
	return &Inspector{}
}

// AnnotatedFields returns the names of fields declared on td that carry marker.
func (in *Inspector) AnnotatedFields(td descriptor.TypeDescriptor, marker descriptor.MarkerKind) (Set, error) {
	if isNil(td) {
		return nil, fmt.Errorf("%w: type descriptor is nil", descriptor.ErrInvalidInput)
	}

	if marker == "" {
		return nil, fmt.Errorf("%w: marker is empty", descriptor.ErrInvalidInput)
	}

	names := Set{}
	for _, f := range td.Fields() {
		if f.HasMarker(marker) {
			names.add(f.Name())
		}
	}

	return names, nil
}

// AllDeclaredMethods returns the method names declared on td together with the
// names declared on each interface td directly declares. Overloads share a name.
func (in *Inspector) AllDeclaredMethods(td descriptor.TypeDescriptor) (Set, error) {
	if isNil(td) {
		return nil, fmt.Errorf("%w: type descriptor is nil", descriptor.ErrInvalidInput)
	}

	names := Set{}
	for _, m := range td.Methods() {
		names.add(m.Name())
	}

	for _, iface := range td.Interfaces() {
		for _, m := range iface.Methods() {
			names.add(m.Name())
		}
	}

	return names, nil
}

// CreateInstance invokes the first constructor of td whose parameters accept args,
// ignoring its declared access. It returns a *ConstructionError when none match.
func (in *Inspector) CreateInstance(td descriptor.TypeDescriptor, args ...any) (any, error) {
	if isNil(td) {
		return nil, fmt.Errorf("%w: type descriptor is nil", descriptor.ErrInvalidInput)
	}

	for _, ctor := range td.Constructors() {
		if !Matches(ctor.Params(), args) {
			continue
		}

		instance, err := ctor.InvokePrivileged(args...)
		if err != nil {
			return nil, fmt.Errorf("construct %s with %s: %w", td.Name(), ctor.Name(), err)
		}

		return instance, nil
	}

	return nil, newConstructionError(td, args, ErrNoConstructor)
}

// CreateInstance is Inspector.CreateInstance with the result asserted to T.
// A constructor returning *X satisfies T = X and one returning X satisfies T = *X.
func CreateInstance[T any](td descriptor.TypeDescriptor, args ...any) (T, error) {
	var zero T

	instance, err := New().CreateInstance(td, args...)
	if err != nil {
		return zero, err
	}

	if v, ok := instance.(T); ok {
		return v, nil
	}

	want := reflect.TypeFor[T]()
	got := reflect.ValueOf(instance)

	switch {
	case got.IsValid() && got.Kind() == reflect.Ptr && !got.IsNil() && got.Elem().Type() == want:
		return got.Elem().Interface().(T), nil

	case got.IsValid() && want.Kind() == reflect.Ptr && got.Type() == want.Elem():
		ptr := reflect.New(got.Type())
		ptr.Elem().Set(got)
		return ptr.Interface().(T), nil
	}

	return zero, newConstructionError(td, args,
		fmt.Errorf("%w: got %s, want %s", ErrInstanceType, argTypeName(instance), descriptor.TypeString(want)))
}

// Matches reports whether args fit params by count and per-position assignability.
// An untyped nil fits only nillable parameters.
func Matches(params []descriptor.Param, args []any) bool {
	if len(params) != len(args) {
		return false
	}

	for i, arg := range args {
		if arg == nil {
			if !params[i].Nillable() {
				return false
			}

			continue
		}

		if !params[i].AssignableFrom(reflect.TypeOf(arg)) {
			return false
		}
	}

	return true
}

func argTypeName(arg any) string {
	if arg == nil {
		return "nil"
	}

	return descriptor.TypeString(reflect.TypeOf(arg))
}

func isNil(td descriptor.TypeDescriptor) bool {
	if td == nil {
		return true
	}

	v := reflect.ValueOf(td)

	return v.Kind() == reflect.Ptr && v.IsNil()
}
