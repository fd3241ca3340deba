package descriptor

import (
	"go/token"
	"path"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"class-inspector/utils"
)

// TypeString returns a fully qualified name for t, e.g. "*class-inspector/village.Villager".
// Named types use their import path, so the result lines up with go/types.TypeString.
func TypeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeString(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + TypeString(t.Elem())
		}
	case reflect.Array:
		if t.Name() == "" {
			return "[" + strconv.Itoa(t.Len()) + "]" + TypeString(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return "map[" + TypeString(t.Key()) + "]" + TypeString(t.Elem())
		}
	}

	if t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}

func isNillable(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
}

// funcName returns the runtime symbol of fn, e.g. "class-inspector/village.newVillager",
// split also into its package alias and the remaining name. The package path
// ends at the first dot after the last slash of the raw symbol, where the
// runtime escapes dots of the path itself ("gopkg.in/yaml%2ev3.NewDecoder").
// pkgHint, the package path of the result type, wins when it prefixes the symbol.
func funcName(fn reflect.Value, pkgHint string) (symbol, alias, name string) {
	fnPC := runtime.FuncForPC(fn.Pointer())
	if fnPC == nil {
		return "", "", ""
	}

	raw := fnPC.Name()
	symbol = unescapeSymbol(raw)

	pkg := pkgHint
	if pkg == "" || !strings.HasPrefix(symbol, pkg+".") {
		dir, rest := path.Split(raw)
		elem, _ := utils.Unpack2(strings.SplitN(rest, ".", 2))
		pkg = unescapeSymbol(dir + elem)
	}

	return symbol, path.Base(pkg), strings.TrimPrefix(symbol, pkg+".")
}

func unescapeSymbol(s string) string {
	return strings.ReplaceAll(s, "%2e", ".")
}

// accessOf derives visibility from the last identifier of a function name;
// closures ("TestX.func1", "glob..func1") come out restricted.
func accessOf(name string) AccessEnum {
	last := name[strings.LastIndex(name, ".")+1:]
	if token.IsExported(last) {
		return AccessPublic
	}

	return AccessRestricted
}

// isPromotionWrapper reports whether the code behind a method value is a
// compiler-generated wrapper rather than a method written in source.
func isPromotionWrapper(fn reflect.Value) bool {
	frames := runtime.CallersFrames([]uintptr{fn.Pointer() + 1})

	var outer runtime.Frame
	for {
		frame, more := frames.Next()
		outer = frame
		if !more {
			break
		}
	}

	return outer.File == "<autogenerated>"
}
