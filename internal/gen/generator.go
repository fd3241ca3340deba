package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"class-inspector/internal/analyze"
	"class-inspector/internal/common"
)

// DescriptorPkg is the import path of the runtime descriptor package.
const DescriptorPkg = "class-inspector/descriptor"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file inside the package directory.
	Filename string
	// VarSuffix is appended to the type name to form the variable name.
	VarSuffix string
	// GenerateComments enables doc comments on generated variables.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "descriptors_gen.go",
		VarSuffix:        "Descriptor",
		GenerateComments: true,
	}
}

// Generator generates descriptor registrations from a type graph.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "descriptors_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

type importSpec struct {
	Alias string
	Path  string
}

type typeEntry struct {
	Var     string
	Name    string
	Options []string
}

type templateData struct {
	PackageName      string
	Imports          []importSpec
	Types            []typeEntry
	GenerateComments bool
}

// Generate builds the registration file for the package at pkgPath, which must
// have been loaded into graph.
func (g *Generator) Generate(graph *analyze.TypeGraph, pkgPath string) (*GeneratedFile, error) {
	pkg, ok := graph.Packages[pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %s is not loaded", pkgPath)
	}

	data := &templateData{
		PackageName:      pkg.Name,
		GenerateComments: g.config.GenerateComments,
	}

	imports := map[string]string{DescriptorPkg: ""}

	for _, id := range pkg.Types {
		info := graph.GetType(id)
		if info == nil || !describable(info) {
			continue
		}

		entry := typeEntry{
			Var:  id.Name + g.config.VarSuffix,
			Name: id.Name,
		}

		for _, iface := range info.DeclaredIfaces {
			name := iface.ID.Name
			if iface.ID.PkgPath != pkgPath && iface.ID.PkgPath != "" {
				qualifier := pkgName(iface)
				imports[iface.ID.PkgPath] = qualifier
				name = qualifier + "." + name
			}

			entry.Options = append(entry.Options, fmt.Sprintf("descriptor.Implements[%s](%s)", name, explicitOption(iface)))
		}

		for _, c := range info.Ctors {
			entry.Options = append(entry.Options, fmt.Sprintf("descriptor.Constructor(%s)", c.Func.Name()))
		}

		data.Types = append(data.Types, entry)
	}

	if len(data.Types) == 0 {
		return nil, fmt.Errorf("package %s has no types to describe", pkgPath)
	}

	for path := range imports {
		spec := importSpec{Path: path}
		if imports[path] != "" && imports[path] != common.PkgAlias(path) {
			spec.Alias = imports[path]
		}

		data.Imports = append(data.Imports, spec)
	}

	slices.SortFunc(data.Imports, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	var buf bytes.Buffer
	if err := registrationTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	return &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// describable reports whether MustOf can be instantiated for the type:
// interfaces are contracts, generic types need type arguments.
func describable(info *analyze.TypeInfo) bool {
	if info.Kind == analyze.TypeKindInterface || info.Kind == analyze.TypeKindUnknown {
		return false
	}

	named, ok := info.GoType.(*types.Named)

	return ok && named.TypeParams().Len() == 0
}

// explicitOption spells descriptor.Explicit for interfaces embedding others,
// whose reflect method set would otherwise include the embedded methods.
func explicitOption(iface *analyze.TypeInfo) string {
	it, ok := iface.GoType.Underlying().(*types.Interface)
	if !ok || it.NumEmbeddeds() == 0 {
		return ""
	}

	quoted := make([]string, 0, len(iface.DeclaredMethods))
	for _, m := range iface.DeclaredMethods {
		quoted = append(quoted, strconv.Quote(m.MethodName))
	}

	return "descriptor.Explicit(" + strings.Join(quoted, ", ") + ")"
}

// pkgName returns the declared name of the package defining info, which
// differs from the last import path element for paths like "gopkg.in/yaml.v3".
func pkgName(info *analyze.TypeInfo) string {
	if named, ok := info.GoType.(*types.Named); ok && named.Obj().Pkg() != nil {
		return named.Obj().Pkg().Name()
	}

	return common.PkgAlias(info.ID.PkgPath)
}

var registrationTemplate = template.Must(template.New("descriptors").Parse(`// Code generated by class-inspector. DO NOT EDIT.

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Types}}
{{if $.GenerateComments}}// {{.Var}} describes {{.Name}}.
{{end -}}
{{if .Options -}}
var {{.Var}} = descriptor.MustOf[{{.Name}}](
{{- range .Options}}
	{{.}},
{{- end}}
)
{{else -}}
var {{.Var}} = descriptor.MustOf[{{.Name}}]()
{{end -}}
{{end -}}
`))
