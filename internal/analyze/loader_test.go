package analyze

import (
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"class-inspector/descriptor"
	"class-inspector/inspect"
	"class-inspector/village"
)

const villagePkg = "class-inspector/village"

func loadVillage(t *testing.T) (*Analyzer, *TypeGraph) {
	t.Helper()

	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(villagePkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return analyzer, graph
}

func mustType(t *testing.T, graph *TypeGraph, name string) *TypeInfo {
	t.Helper()

	info := graph.GetType(TypeID{PkgPath: villagePkg, Name: name})
	require.NotNil(t, info, "type %s should be loaded", name)

	return info
}

func memberNames[T interface{ Name() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name())
	}

	return out
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	_, graph := loadVillage(t)

	assert.Contains(t, graph.Packages, villagePkg)
	for _, name := range []string{"Villager", "Merchant", "Hut", "Contract", "Tradeable", "Haggler"} {
		assert.Contains(t, graph.Types, TypeID{PkgPath: villagePkg, Name: name})
	}

	assert.Equal(t, TypeKindStruct, mustType(t, graph, "Villager").Kind)
	assert.Equal(t, TypeKindInterface, mustType(t, graph, "Tradeable").Kind)
}

func TestAnalyzer_Fields(t *testing.T) {
	_, graph := loadVillage(t)
	villager := mustType(t, graph, "Villager")

	assert.Equal(t, []string{"Contract", "name", "age", "profession"}, memberNames(villager.Fields()))

	assert.True(t, villager.DeclaredFields[0].Embedded)
	assert.False(t, villager.DeclaredFields[1].Exported)
	assert.True(t, villager.DeclaredFields[1].HasMarker(village.Important))
	assert.False(t, villager.DeclaredFields[2].HasMarker(village.Important))

	merchant := mustType(t, graph, "Merchant")
	stall := merchant.DeclaredFields[1]
	assert.Equal(t, "Stall", stall.Name())
	assert.True(t, stall.HasMarker("json"))
	assert.Equal(t, "stall", stall.Tag.Get("json"))
}

func TestAnalyzer_Methods(t *testing.T) {
	_, graph := loadVillage(t)

	villager := mustType(t, graph, "Villager")
	assert.ElementsMatch(t, []string{"Greet", "Trade"}, memberNames(villager.Methods()))
	for _, m := range villager.DeclaredMethods {
		assert.Equal(t, m.MethodName == "Trade", m.PointerRecv, m.MethodName)
	}

	// Promoted methods of the embedded *Villager are not declared on Merchant.
	assert.Equal(t, []string{"Haggle"}, memberNames(mustType(t, graph, "Merchant").Methods()))
	assert.Empty(t, mustType(t, graph, "Hut").Methods())
}

func TestAnalyzer_DeclaredInterfaces(t *testing.T) {
	_, graph := loadVillage(t)

	ifaces := mustType(t, graph, "Villager").Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, villagePkg+".Tradeable", ifaces[0].Name())
	assert.ElementsMatch(t, []string{"Trade", "Cancel"}, memberNames(ifaces[0].Methods()))

	// Haggler embeds Tradeable; only its explicit method counts.
	ifaces = mustType(t, graph, "Merchant").Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, []string{"Haggle"}, memberNames(ifaces[0].Methods()))

	assert.Empty(t, mustType(t, graph, "Hut").Interfaces())
}

func TestAnalyzer_Inspector(t *testing.T) {
	_, graph := loadVillage(t)
	in := inspect.New()

	fields, err := in.AnnotatedFields(mustType(t, graph, "Villager"), village.Important)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, fields.Sorted())

	methods, err := in.AllDeclaredMethods(mustType(t, graph, "Villager"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cancel", "Greet", "Trade"}, methods.Sorted())

	methods, err = in.AllDeclaredMethods(mustType(t, graph, "Merchant"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Haggle"}, methods.Sorted())
}

func TestAnalyzer_Constructors(t *testing.T) {
	analyzer, graph := loadVillage(t)

	villager := mustType(t, graph, "Villager")
	ctors := villager.Constructors()
	require.Len(t, ctors, 2)

	assert.Equal(t, "village.NewVillager", ctors[0].Name())
	assert.Equal(t, descriptor.AccessPublic, ctors[0].Access())
	assert.Equal(t, []string{"string", "int"}, memberStrings(ctors[0].Params()))
	assert.Equal(t, "NewVillager(name string, age int) (*Villager, error)", villager.Ctors[0].Signature())

	assert.Equal(t, "village.newVillager", ctors[1].Name())
	assert.Equal(t, descriptor.AccessRestricted, ctors[1].Access())
	assert.Equal(t, "newVillager(name string, profession string) *Villager", villager.Ctors[1].Signature())

	hut := mustType(t, graph, "Hut")
	require.Len(t, hut.Ctors, 1, "variadic constructor is skipped")
	assert.Equal(t, "NewHut() Hut", hut.Ctors[0].Signature())

	diags := analyzer.Diagnostics()
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "variadic_constructor", diags.Warnings[0].Code)
	assert.True(t, diags.IsValid())
}

func TestAnalyzer_GenericConstructorSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/generic\n\ngo 1.24\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "box.go"), []byte(`package generic

type Box struct{}

func NewBox[T any](v T) *Box { return &Box{} }

type Crate[T any] struct{ Item T }

func NewCrate[T any](v T) *Crate[T] { return &Crate[T]{Item: v} }

func NewPlainBox() *Box { return &Box{} }
`), 0o600))

	analyzer := NewAnalyzer()
	analyzer.Dir = dir
	graph, err := analyzer.LoadPackages("./...")
	require.NoError(t, err)

	box := graph.GetType(TypeID{PkgPath: "example.com/generic", Name: "Box"})
	require.NotNil(t, box)
	require.Len(t, box.Ctors, 1)
	assert.Equal(t, "generic.NewPlainBox", box.Ctors[0].Name())

	crate := graph.GetType(TypeID{PkgPath: "example.com/generic", Name: "Crate"})
	require.NotNil(t, crate)
	assert.Empty(t, crate.Ctors)

	diags := analyzer.Diagnostics()
	require.Len(t, diags.Warnings, 2)
	for _, w := range diags.Warnings {
		assert.Equal(t, "generic_constructor", w.Code)
	}
	assert.True(t, diags.IsValid())
}

func TestAnalyzer_UnboundConstructor(t *testing.T) {
	_, graph := loadVillage(t)

	_, err := inspect.New().CreateInstance(mustType(t, graph, "Villager"), "Bob", 3)
	require.ErrorIs(t, err, descriptor.ErrAccessViolation)

	_, err = inspect.New().CreateInstance(mustType(t, graph, "Villager"), 3)
	require.ErrorIs(t, err, inspect.ErrNoConstructor)
}

func TestAnalyzer_Bind(t *testing.T) {
	analyzer, graph := loadVillage(t)

	for _, c := range village.VillagerType.Constructors() {
		require.NoError(t, analyzer.Bind(c))
	}

	v, err := inspect.CreateInstance[*village.Villager](mustType(t, graph, "Villager"), "Bob", "Farmer")
	require.NoError(t, err)
	assert.Equal(t, "Hello, I am Bob, the Farmer", v.Greet())

	// Binding before loading works too.
	analyzer = NewAnalyzer()
	require.NoError(t, analyzer.Bind(village.NewMerchant))
	graph, err = analyzer.LoadPackages(villagePkg)
	require.NoError(t, err)

	m, err := inspect.CreateInstance[*village.Merchant](mustType(t, graph, "Merchant"), nil, "fish")
	require.NoError(t, err)
	assert.Equal(t, "fish", m.Stall)

	require.ErrorIs(t, analyzer.Bind("not a function"), descriptor.ErrConstructorIsNotAFunction)
}

func TestParam(t *testing.T) {
	_, graph := loadVillage(t)

	tradeable := Param{Type: mustType(t, graph, "Tradeable").GoType}
	assert.True(t, tradeable.Nillable())
	assert.True(t, tradeable.AssignableFrom(reflect.TypeFor[*village.Villager]()))
	assert.False(t, tradeable.AssignableFrom(reflect.TypeFor[village.Villager]()))
	assert.False(t, tradeable.AssignableFrom(nil))

	ptr := Param{Type: types.NewPointer(mustType(t, graph, "Villager").GoType)}
	assert.True(t, ptr.Nillable())
	assert.True(t, ptr.AssignableFrom(reflect.TypeFor[*village.Villager]()))
	assert.False(t, ptr.AssignableFrom(reflect.TypeFor[*village.Merchant]()))
	assert.Equal(t, "*class-inspector/village.Villager", ptr.String())

	b := Param{Type: types.Universe.Lookup("byte").Type()}
	assert.False(t, b.Nillable())
	assert.True(t, b.AssignableFrom(reflect.TypeFor[byte]()))
	assert.False(t, b.AssignableFrom(reflect.TypeFor[int]()))
}

func TestParam_NestedByteAndRune(t *testing.T) {
	byteT := types.Universe.Lookup("byte").Type()
	runeT := types.Universe.Lookup("rune").Type()

	cases := []struct {
		param types.Type
		rt    reflect.Type
	}{
		{types.NewSlice(byteT), reflect.TypeFor[[]byte]()},
		{types.NewPointer(byteT), reflect.TypeFor[*byte]()},
		{types.NewMap(types.Typ[types.String], runeT), reflect.TypeFor[map[string]rune]()},
		{types.NewArray(runeT, 4), reflect.TypeFor[[4]rune]()},
		{types.NewSlice(types.NewSlice(byteT)), reflect.TypeFor[[][]byte]()},
	}

	for _, tc := range cases {
		p := Param{Type: tc.param}
		assert.True(t, p.AssignableFrom(tc.rt), "%s from %s", p, tc.rt)
	}

	assert.False(t, Param{Type: types.NewSlice(byteT)}.AssignableFrom(reflect.TypeFor[[]int]()))
}

func TestAnalyzer_UnboundByteSliceConstructor(t *testing.T) {
	pkg := types.NewPackage("example.com/blob", "blob")
	blob := types.NewNamed(types.NewTypeName(0, pkg, "Blob", nil), types.NewStruct(nil, nil), nil)
	params := types.NewTuple(types.NewVar(0, pkg, "data", types.NewSlice(types.Universe.Lookup("byte").Type())))
	results := types.NewTuple(types.NewVar(0, pkg, "", types.NewPointer(blob)))
	sig := types.NewSignatureType(nil, nil, nil, params, results, false)
	fn := types.NewFunc(0, pkg, "NewBlob", sig)

	info := &TypeInfo{
		ID:     TypeID{PkgPath: pkg.Path(), Name: "Blob"},
		Kind:   TypeKindStruct,
		GoType: blob,
		Ctors:  []*CtorInfo{newCtorInfo(fn, sig)},
	}

	_, err := inspect.New().CreateInstance(info, []byte("x"))
	require.ErrorIs(t, err, descriptor.ErrAccessViolation)
	assert.NotErrorIs(t, err, inspect.ErrNoConstructor)
}

func TestTypeGraph_Resolve(t *testing.T) {
	analyzer, graph := loadVillage(t)

	assert.Equal(t, "Villager", graph.Resolve("village.Villager").ID.Name)
	assert.Equal(t, "Villager", graph.Resolve(villagePkg+".Villager").ID.Name)
	assert.Equal(t, "Villager", graph.Resolve("Villager").ID.Name)
	assert.Nil(t, graph.Resolve("store.Villager"))
	assert.Nil(t, graph.Resolve("Barn"))
	assert.Nil(t, graph.Resolve(""))
	assert.Nil(t, graph.Resolve(".Villager"))

	_, err := analyzer.GetType("Barn")
	require.Error(t, err)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: villagePkg, Name: "Villager"}
	assert.Equal(t, "class-inspector/village.Villager", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "error"}
	assert.Equal(t, "error", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "defined", TypeKindDefined.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func memberStrings(params []descriptor.Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}

	return out
}

func TestTypeGraph_ShortNames(t *testing.T) {
	_, graph := loadVillage(t)

	assert.Equal(t, []string{
		"village.Contract",
		"village.Haggler",
		"village.Hut",
		"village.Merchant",
		"village.Tradeable",
		"village.Villager",
	}, graph.ShortNames())

	pkg := graph.Packages[villagePkg]
	require.NotNil(t, pkg)
	assert.Equal(t, "village", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)
}
