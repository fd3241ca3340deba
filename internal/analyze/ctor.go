package analyze

import (
	"fmt"
	"go/types"
	"reflect"

	"class-inspector/descriptor"
	"class-inspector/internal/common"
)

// CtorInfo is a constructor found in source. It can only be invoked once a
// runtime function has been bound to it with Analyzer.Bind.
type CtorInfo struct {
	Func    *types.Func
	Binding *descriptor.Func
	params  []descriptor.Param
	access  descriptor.AccessEnum
}

var _ descriptor.ConstructorDescriptor = (*CtorInfo)(nil)

func newCtorInfo(fn *types.Func, sig *types.Signature) *CtorInfo {
	c := &CtorInfo{Func: fn, access: descriptor.AccessRestricted}
	if fn.Exported() {
		c.access = descriptor.AccessPublic
	}

	for i := range sig.Params().Len() {
		c.params = append(c.params, Param{Type: sig.Params().At(i).Type()})
	}

	return c
}

// Name returns the package alias and function name, e.g. "village.NewVillager".
func (c *CtorInfo) Name() string {
	return common.PkgAlias(c.Func.Pkg().Path()) + "." + c.Func.Name()
}

// Params returns the bound function's parameters, or the source ones while unbound.
func (c *CtorInfo) Params() []descriptor.Param {
	if c.Binding != nil {
		return c.Binding.Params()
	}

	return c.params
}

func (c *CtorInfo) Access() descriptor.AccessEnum {
	return c.access
}

func (c *CtorInfo) Invoke(args ...any) (any, error) {
	if c.access == descriptor.AccessRestricted {
		return nil, fmt.Errorf("%w: %s", descriptor.ErrRestricted, c.Name())
	}

	return c.InvokePrivileged(args...)
}

func (c *CtorInfo) InvokePrivileged(args ...any) (any, error) {
	if c.Binding == nil {
		return nil, fmt.Errorf("%w: %s has no runtime binding", descriptor.ErrAccessViolation, c.Name())
	}

	return c.Binding.InvokePrivileged(args...)
}

// Param is a constructor parameter known only by its go/types type.
type Param struct {
	Type types.Type
}

func (p Param) String() string {
	return types.TypeString(p.Type, nil)
}

// AssignableFrom matches rt against the source type by qualified name. For an
// interface parameter rt must have every method of the interface by name.
func (p Param) AssignableFrom(rt reflect.Type) bool {
	if rt == nil {
		return false
	}

	if iface, ok := p.Type.Underlying().(*types.Interface); ok {
		for i := range iface.NumMethods() {
			m := iface.Method(i)
			if !m.Exported() {
				return false
			}

			if _, ok := rt.MethodByName(m.Name()); !ok {
				return false
			}
		}

		return true
	}

	return descriptor.TypeString(rt) == canonicalTypeString(p.Type)
}

func (p Param) Nillable() bool {
	switch u := p.Type.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Slice, *types.Signature, *types.Chan:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer
	default:
		return false
	}
}

// canonicalTypeString spells byte and rune the way reflect does, at any depth.
func canonicalTypeString(t types.Type) string {
	return types.TypeString(canonicalType(t), nil)
}

func canonicalType(t types.Type) types.Type {
	switch u := types.Unalias(t).(type) {
	case *types.Basic:
		return types.Typ[u.Kind()]
	case *types.Pointer:
		return types.NewPointer(canonicalType(u.Elem()))
	case *types.Slice:
		return types.NewSlice(canonicalType(u.Elem()))
	case *types.Array:
		return types.NewArray(canonicalType(u.Elem()), u.Len())
	case *types.Map:
		return types.NewMap(canonicalType(u.Key()), canonicalType(u.Elem()))
	case *types.Chan:
		return types.NewChan(u.Dir(), canonicalType(u.Elem()))
	}

	return t
}
