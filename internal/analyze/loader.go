package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"class-inspector/descriptor"
	"class-inspector/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the current one.
	Dir string

	graph     *TypeGraph
	typeCache map[*types.Named]*TypeInfo // Cache for types reached from several places
	bindings  map[string]*descriptor.Func
	diags     diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[*types.Named]*TypeInfo),
		bindings:  make(map[string]*descriptor.Func),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./village", "class-inspector/village").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	return a.LoadPackagesContext(context.Background(), patterns...)
}

// LoadPackagesContext is LoadPackages with a context that cancels the
// underlying go list invocation.
func (a *Analyzer) LoadPackagesContext(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	// Process each package
	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// Diagnostics returns warnings collected while loading, e.g. skipped constructors.
func (a *Analyzer) Diagnostics() *diagnostic.Diagnostics {
	return &a.diags
}

// Bind attaches runtime functions (or parsed *descriptor.Func values) to the
// constructors found in source with the same symbol, which makes them
// invocable. Binding before or after LoadPackages is equivalent.
func (a *Analyzer) Bind(fns ...any) error {
	for _, fn := range fns {
		f, ok := fn.(*descriptor.Func)
		if !ok {
			var err error
			if f, err = descriptor.ParseConstructor(fn); err != nil {
				return err
			}
		}

		a.bindings[f.Symbol()] = f
	}

	for _, t := range a.graph.Types {
		for _, c := range t.Ctors {
			if f, ok := a.bindings[c.Func.FullName()]; ok {
				c.Binding = f
			}
		}
	}

	return nil
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		typeInfo := a.analyzeNamed(named)
		a.graph.Types[typeInfo.ID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeInfo.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	for _, name := range scope.Names() {
		if fn, ok := scope.Lookup(name).(*types.Func); ok {
			a.processConstructor(pkg, fn)
		}
	}

	for _, file := range pkg.Syntax {
		a.processAssertions(pkg, file)
	}

	return nil
}

// analyzeNamed builds the TypeInfo of a named type, from any package.
func (a *Analyzer) analyzeNamed(named *types.Named) *TypeInfo {
	if cached, ok := a.typeCache[named]; ok {
		return cached
	}

	obj := named.Obj()
	info := &TypeInfo{
		ID:     TypeID{Name: obj.Name()},
		GoType: named,
	}
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	a.typeCache[named] = info

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface
		// Embedded interfaces are not followed.
		for i := range ut.NumExplicitMethods() {
			info.DeclaredMethods = append(info.DeclaredMethods, MethodInfo{MethodName: ut.ExplicitMethod(i).Name()})
		}

		return info

	default:
		info.Kind = TypeKindDefined
	}

	for i := range named.NumMethods() {
		m := named.Method(i)
		_, ptr := m.Type().(*types.Signature).Recv().Type().(*types.Pointer)
		info.DeclaredMethods = append(info.DeclaredMethods, MethodInfo{MethodName: m.Name(), PointerRecv: ptr})
	}

	return info
}

// analyzeStructFields extracts fields from a struct type, unexported ones included.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.DeclaredFields = append(info.DeclaredFields, FieldInfo{
			FieldName: field.Name(),
			Exported:  field.Exported(),
			Type:      field.Type(),
			Tag:       reflect.StructTag(st.Tag(i)),
			Embedded:  field.Embedded(),
			Index:     i,
		})
	}
}

// processConstructor records fn as a constructor when it is named New*/new*
// and returns a type of its own package, or a pointer to one, optionally with an error.
func (a *Analyzer) processConstructor(pkg *packages.Package, fn *types.Func) {
	if !strings.HasPrefix(strings.ToLower(fn.Name()), "new") {
		return
	}

	sig := fn.Type().(*types.Signature)
	res := sig.Results()

	switch res.Len() {
	default:
		return
	case 1:
	case 2:
		if !types.Identical(res.At(1).Type(), types.Universe.Lookup("error").Type()) {
			return
		}
	}

	out := res.At(0).Type()
	if ptr, ok := out.(*types.Pointer); ok {
		out = ptr.Elem()
	}

	named, ok := out.(*types.Named)
	if !ok || named.Obj().Pkg() != pkg.Types {
		return
	}

	info := a.analyzeNamed(named.Origin())

	if sig.TypeParams().Len() > 0 {
		a.diags.AddWarning("generic_constructor",
			fmt.Sprintf("constructor %s has type parameters and was skipped", fn.Name()), info.ID.String(), "")
		return
	}

	if sig.Variadic() {
		a.diags.AddWarning("variadic_constructor",
			fmt.Sprintf("constructor %s is variadic and was skipped", fn.Name()), info.ID.String(), "")
		return
	}

	c := newCtorInfo(fn, sig)
	if f, ok := a.bindings[fn.FullName()]; ok {
		c.Binding = f
	}

	info.Ctors = append(info.Ctors, c)
}

// processAssertions finds declarations like
//
//	var _ Tradeable = (*Villager)(nil)
//
// and records the interface as declared by the asserted type.
func (a *Analyzer) processAssertions(pkg *packages.Package, file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}

		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || vs.Type == nil || len(vs.Values) != len(vs.Names) {
				continue
			}

			for i, ident := range vs.Names {
				if ident.Name != "_" {
					continue
				}

				a.processAssertion(pkg, vs.Type, vs.Values[i])
			}
		}
	}
}

func (a *Analyzer) processAssertion(pkg *packages.Package, ifaceExpr, valueExpr ast.Expr) {
	iface, ok := pkg.TypesInfo.TypeOf(ifaceExpr).(*types.Named)
	if !ok || !types.IsInterface(iface) {
		return
	}

	vt := pkg.TypesInfo.TypeOf(valueExpr)
	if ptr, ok := vt.(*types.Pointer); ok {
		vt = ptr.Elem()
	}

	named, ok := vt.(*types.Named)
	if !ok || named.Obj().Pkg() != pkg.Types {
		a.diags.AddWarning("foreign_assertion",
			fmt.Sprintf("assertion to %s does not name a type of package %s", iface.Obj().Name(), pkg.Name),
			"", pkg.Fset.Position(valueExpr.Pos()).String())
		return
	}

	info := a.analyzeNamed(named)
	contract := a.analyzeNamed(iface)
	for _, existing := range info.DeclaredIfaces {
		if existing == contract {
			return
		}
	}

	info.DeclaredIfaces = append(info.DeclaredIfaces, contract)
}

// GetType returns the TypeInfo for a type id string, see TypeGraph.Resolve.
func (a *Analyzer) GetType(typeIDStr string) (*TypeInfo, error) {
	info := a.graph.Resolve(typeIDStr)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", typeIDStr)
	}

	return info, nil
}
