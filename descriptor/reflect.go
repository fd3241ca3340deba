package descriptor

import (
	"fmt"
	"reflect"
)

// Type is a TypeDescriptor built from a reflect.Type.
type Type struct {
	rtype   reflect.Type
	fields  []FieldDescriptor
	methods []MethodDescriptor
	ifaces  []TypeDescriptor
	ctors   []ConstructorDescriptor
}

var _ TypeDescriptor = (*Type)(nil)

// Field is a declared struct field.
type Field struct {
	name string
	Tag  reflect.StructTag
}

func (f Field) Name() string {
	return f.name
}

// HasMarker reports whether the field tag contains the marker key, with any value.
func (f Field) HasMarker(marker MarkerKind) bool {
	_, ok := f.Tag.Lookup(string(marker))
	return ok
}

// Method is a declared method.
type Method struct {
	name string
}

func (m Method) Name() string {
	return m.name
}

// Option declares something reflect cannot discover on its own.
type Option func(t *Type) error

// ContractOption adjusts the descriptor of a declared interface.
type ContractOption func(contract *Type) error

// Explicit names the methods written in the interface body itself. reflect
// flattens embedded interfaces into the method set, so an interface that
// embeds others must list its own methods to keep theirs out:
//
//	descriptor.Implements[Haggler](descriptor.Explicit("Haggle"))
//
// Every name must belong to the interface.
func Explicit(names ...string) ContractOption {
	return func(contract *Type) error {
		methods := make([]MethodDescriptor, 0, len(names))
		for _, name := range names {
			if _, ok := contract.rtype.MethodByName(name); !ok {
				return fmt.Errorf("%w: %s has no method %s", ErrInvalidInput, contract.Name(), name)
			}

			methods = append(methods, Method{name: name})
		}

		contract.methods = methods
		return nil
	}
}

// Implements declares that the type conforms to interface I.
// The type itself or a pointer to it must implement I.
// Without Explicit the contract lists the whole method set of I.
func Implements[I any](opts ...ContractOption) Option {
	return func(t *Type) error {
		iface := reflect.TypeFor[I]()
		if iface.Kind() != reflect.Interface {
			return fmt.Errorf("%w: %s is not an interface", ErrInvalidInput, TypeString(iface))
		}

		if !t.rtype.Implements(iface) && !reflect.PointerTo(t.rtype).Implements(iface) {
			return fmt.Errorf("%w: %s does not implement %s",
				ErrNotImplemented, TypeString(t.rtype), TypeString(iface))
		}

		contract, err := FromReflect(iface)
		if err != nil {
			return err
		}

		for _, opt := range opts {
			if err := opt(contract); err != nil {
				return err
			}
		}

		t.ifaces = append(t.ifaces, contract)
		return nil
	}
}

// Constructor registers fn as a constructor of the type.
// fn must return the type or a pointer to it, optionally followed by an error.
func Constructor(fn any, opts ...ConstructorOption) Option {
	return func(t *Type) error {
		f, err := ParseConstructor(fn, opts...)
		if err != nil {
			return err
		}

		res := f.Result
		if res.Kind() == reflect.Ptr {
			res = res.Elem()
		}

		if res != t.rtype {
			return fmt.Errorf("%w: %s returns %s, not %s",
				ErrForeignConstructor, f.Name(), TypeString(f.Result), TypeString(t.rtype))
		}

		t.ctors = append(t.ctors, f)
		return nil
	}
}

// Of builds a descriptor for T. A pointer type is described by its element.
func Of[T any](opts ...Option) (*Type, error) {
	return FromReflect(reflect.TypeFor[T](), opts...)
}

// MustOf is like Of but panics on error.
func MustOf[T any](opts ...Option) *Type {
	td, err := Of[T](opts...)
	if err != nil {
		panic(err)
	}

	return td
}

// FromReflect builds a descriptor for rt. A pointer type is described by its element.
func FromReflect(rt reflect.Type, opts ...Option) (*Type, error) {
	if rt == nil {
		return nil, fmt.Errorf("%w: type is nil", ErrInvalidInput)
	}

	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	t := &Type{rtype: rt}

	if rt.Kind() == reflect.Struct {
		for i := range rt.NumField() {
			sf := rt.Field(i)
			t.fields = append(t.fields, Field{name: sf.Name, Tag: sf.Tag})
		}
	}

	if rt.Kind() == reflect.Interface {
		for i := range rt.NumMethod() {
			t.methods = append(t.methods, Method{name: rt.Method(i).Name})
		}
	} else {
		t.methods = declaredMethods(rt)
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Name returns the package-qualified type name.
func (t *Type) Name() string {
	return TypeString(t.rtype)
}

// Type returns the described reflect.Type.
func (t *Type) Type() reflect.Type {
	return t.rtype
}

func (t *Type) Fields() []FieldDescriptor {
	return t.fields
}

func (t *Type) Methods() []MethodDescriptor {
	return t.methods
}

func (t *Type) Interfaces() []TypeDescriptor {
	return t.ifaces
}

func (t *Type) Constructors() []ConstructorDescriptor {
	return t.ctors
}

// declaredMethods lists methods of rt and *rt written in source for rt.
// Methods reached through embedded fields are left out unless rt overrides them.
func declaredMethods(rt reflect.Type) []MethodDescriptor {
	promoted := promotedNames(rt)
	seen := make(map[string]struct{})

	var methods []MethodDescriptor
	for _, mt := range []reflect.Type{rt, reflect.PointerTo(rt)} {
		for i := range mt.NumMethod() {
			m := mt.Method(i)
			if _, ok := seen[m.Name]; ok {
				continue
			}

			if _, ok := promoted[m.Name]; ok && isPromotionWrapper(m.Func) {
				continue
			}

			seen[m.Name] = struct{}{}
			methods = append(methods, Method{name: m.Name})
		}
	}

	return methods
}

// promotedNames collects the method names that embedded fields of rt bring in.
func promotedNames(rt reflect.Type) map[string]struct{} {
	names := make(map[string]struct{})
	if rt.Kind() != reflect.Struct {
		return names
	}

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.Anonymous {
			continue
		}

		et := sf.Type
		if et.Kind() != reflect.Ptr && et.Kind() != reflect.Interface {
			et = reflect.PointerTo(et)
		}

		for j := range et.NumMethod() {
			names[et.Method(j).Name] = struct{}{}
		}
	}

	return names
}
