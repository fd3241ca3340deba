package analyze

import (
	"go/types"
	"reflect"
	"sort"
	"strings"

	"class-inspector/descriptor"
	"class-inspector/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "class-inspector/village"
	Name    string // e.g., "Villager"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindStruct             // struct type
	TypeKindInterface          // interface type
	TypeKindDefined            // any other defined type, e.g. type Status string
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindDefined:
		return "defined"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named Go type as written in source.
// It implements descriptor.TypeDescriptor.
type TypeInfo struct {
	ID              TypeID        // Unique identifier
	Kind            TypeKind      // Kind of type
	DeclaredFields  []FieldInfo   // For structs, all fields including unexported ones
	DeclaredMethods []MethodInfo  // Methods with this type as receiver, or explicit interface methods
	DeclaredIfaces  []*TypeInfo   // Interfaces asserted with var _ I = (*T)(nil)
	Ctors           []*CtorInfo   // New*/new* functions returning the type
	GoType          types.Type    // The original go/types.Type
}

var _ descriptor.TypeDescriptor = (*TypeInfo)(nil)

func (t *TypeInfo) Name() string {
	return t.ID.String()
}

func (t *TypeInfo) Fields() []descriptor.FieldDescriptor {
	out := make([]descriptor.FieldDescriptor, len(t.DeclaredFields))
	for i := range t.DeclaredFields {
		out[i] = &t.DeclaredFields[i]
	}

	return out
}

func (t *TypeInfo) Methods() []descriptor.MethodDescriptor {
	out := make([]descriptor.MethodDescriptor, len(t.DeclaredMethods))
	for i := range t.DeclaredMethods {
		out[i] = &t.DeclaredMethods[i]
	}

	return out
}

func (t *TypeInfo) Interfaces() []descriptor.TypeDescriptor {
	out := make([]descriptor.TypeDescriptor, len(t.DeclaredIfaces))
	for i, iface := range t.DeclaredIfaces {
		out[i] = iface
	}

	return out
}

// Constructors lists constructors in lexical order of their names.
func (t *TypeInfo) Constructors() []descriptor.ConstructorDescriptor {
	out := make([]descriptor.ConstructorDescriptor, len(t.Ctors))
	for i, c := range t.Ctors {
		out[i] = c
	}

	return out
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	FieldName string            // Go field name
	Exported  bool              // Whether the field is exported
	Type      types.Type        // Field type
	Tag       reflect.StructTag // Raw struct tag
	Embedded  bool              // Whether the field is embedded (anonymous)
	Index     int               // Field index in the struct
}

func (f *FieldInfo) Name() string {
	return f.FieldName
}

// HasMarker returns true if the field tag contains the marker key.
func (f *FieldInfo) HasMarker(marker descriptor.MarkerKind) bool {
	_, ok := f.Tag.Lookup(string(marker))
	return ok
}

// MethodInfo describes a declared method.
type MethodInfo struct {
	MethodName  string
	PointerRecv bool // receiver is *T
}

func (m *MethodInfo) Name() string {
	return m.MethodName
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Resolve resolves a type ID string like:
// - "village.Villager" (short)
// - "class-inspector/village.Villager" (full)
// - "Villager" (name only, first match in import path order).
func (g *TypeGraph) Resolve(typeIDStr string) *TypeInfo {
	if typeIDStr == "" {
		return nil
	}

	pkgStr, name := "", typeIDStr
	if lastDot := strings.LastIndex(typeIDStr, "."); lastDot >= 0 {
		pkgStr, name = typeIDStr[:lastDot], typeIDStr[lastDot+1:]
		if pkgStr == "" || name == "" {
			return nil
		}
	}

	// exact match (for fully qualified import path)
	if t := g.GetType(TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t
	}

	for _, id := range g.sortedIDs() {
		if id.Name != name {
			continue
		}

		if pkgStr == "" || id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return g.Types[id]
		}
	}

	return nil
}

// ShortNames lists every type as "alias.Name", e.g. "village.Villager", sorted.
func (g *TypeGraph) ShortNames() []string {
	ids := g.sortedIDs()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if id.PkgPath == "" {
			names = append(names, id.Name)
			continue
		}

		names = append(names, common.PkgAlias(id.PkgPath)+"."+id.Name)
	}

	return names
}

func (g *TypeGraph) sortedIDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package's Go files
	Types []TypeID // Named types defined in this package
}
