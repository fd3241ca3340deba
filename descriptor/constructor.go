package descriptor

import (
	"fmt"
	"reflect"
)

// TypeParam is a Param backed by a reflect.Type.
type TypeParam struct {
	Type reflect.Type
}

func (p TypeParam) String() string {
	return TypeString(p.Type)
}

func (p TypeParam) AssignableFrom(t reflect.Type) bool {
	return t != nil && t.AssignableTo(p.Type)
}

func (p TypeParam) Nillable() bool {
	return isNillable(p.Type.Kind())
}

// Func is a ConstructorDescriptor backed by a Go function value.
type Func struct {
	symbol  string
	name    string
	alias   string
	fn      reflect.Value
	params  []Param
	Result  reflect.Type
	HasErr  bool
	access  AccessEnum
	sealed  bool
	inTypes []reflect.Type
}

var _ ConstructorDescriptor = (*Func)(nil)

// ConstructorOption adjusts a parsed constructor.
type ConstructorOption func(*Func)

// Sealed marks a constructor whose access restriction cannot be bypassed.
// InvokePrivileged then fails with ErrAccessViolation.
func Sealed() ConstructorOption {
	return func(f *Func) {
		f.sealed = true
	}
}

// ParseConstructor inspects the provided function and returns a Func if it is a valid constructor.
//
// Supports shapes:
//   - func(args...) T
//   - func(args...) *T
//   - func(args...) (T, error)
//   - func(args...) (*T, error)
func ParseConstructor(fn any, opts ...ConstructorOption) (*Func, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: constructor is nil", ErrInvalidInput)
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, ErrConstructorIsNotAFunction
	}

	if fnVal.IsNil() {
		return nil, fmt.Errorf("%w: constructor is nil", ErrInvalidInput)
	}

	if fnType.IsVariadic() {
		return nil, ErrVariadicConstructor
	}

	switch fnType.NumOut() {
	default:
		return nil, ErrIsNotAConstructor
	case 1:
	case 2:
		if !isError(fnType.Out(1)) {
			return nil, ErrIsNotAConstructor
		}
	}

	symbol, alias, name := funcName(fnVal, resultPkgPath(fnType.Out(0)))

	f := &Func{
		symbol: symbol,
		name:   name,
		alias:  alias,
		fn:     fnVal,
		Result: fnType.Out(0),
		HasErr: fnType.NumOut() == 2,
		access: accessOf(name),
	}

	for i := range fnType.NumIn() {
		in := fnType.In(i)
		f.inTypes = append(f.inTypes, in)
		f.params = append(f.params, TypeParam{Type: in})
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Name returns the qualified function name, e.g. "village.NewVillager".
func (f *Func) Name() string {
	if f.alias == "" {
		return f.name
	}

	return f.alias + "." + f.name
}

// Symbol returns the full runtime symbol, e.g. "class-inspector/village.NewVillager".
func (f *Func) Symbol() string {
	return f.symbol
}

func (f *Func) Params() []Param {
	return f.params
}

func (f *Func) Access() AccessEnum {
	return f.access
}

func (f *Func) Invoke(args ...any) (any, error) {
	if f.access == AccessRestricted {
		return nil, fmt.Errorf("%w: %s", ErrRestricted, f.Name())
	}

	return f.call(args)
}

func (f *Func) InvokePrivileged(args ...any) (any, error) {
	if f.access == AccessRestricted && f.sealed {
		return nil, fmt.Errorf("%w: %s", ErrAccessViolation, f.Name())
	}

	return f.call(args)
}

func (f *Func) call(args []any) (res any, err error) {
	if len(args) != len(f.inTypes) {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d",
			ErrArgumentMismatch, f.Name(), len(f.inTypes), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := f.inTypes[i]

		if arg == nil {
			if !isNillable(pt.Kind()) {
				return nil, fmt.Errorf("%w: nil for %s at position %d", ErrArgumentMismatch, TypeString(pt), i)
			}

			in[i] = reflect.Zero(pt)
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("%w: %s for %s at position %d",
				ErrArgumentMismatch, TypeString(v.Type()), TypeString(pt), i)
		}

		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &InvocationError{Constructor: f.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	out := f.fn.Call(in)
	if f.HasErr {
		if e := out[1]; !isNillable(e.Kind()) || !e.IsNil() {
			return nil, &InvocationError{Constructor: f.Name(), Err: e.Interface().(error)}
		}
	}

	return out[0].Interface(), nil
}

func resultPkgPath(t reflect.Type) string {
	if t.Kind() == reflect.Ptr && t.Name() == "" {
		t = t.Elem()
	}

	return t.PkgPath()
}
