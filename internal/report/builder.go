package report

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"class-inspector/descriptor"
	"class-inspector/inspect"
	"class-inspector/internal/analyze"
	"class-inspector/internal/diagnostic"
	"class-inspector/internal/query"
)

// ErrInvalidQuery is returned by Run when the query file does not validate.
var ErrInvalidQuery = errors.New("invalid query file")

// Options configures report generation.
type Options struct {
	// Dir is the directory package patterns are resolved in.
	Dir string
	// Limit bounds the number of types inspected at once; zero means GOMAXPROCS.
	Limit int
}

// Run loads the packages of f, validates the queries and builds the report.
// Diagnostics are returned even when err is not nil.
func Run(ctx context.Context, f *query.File, opts Options) (*Report, *diagnostic.Diagnostics, error) {
	if f == nil {
		return nil, nil, fmt.Errorf("%w: query file is nil", descriptor.ErrInvalidInput)
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = opts.Dir

	graph, err := analyzer.LoadPackagesContext(ctx, f.Packages...)
	if err != nil {
		return nil, nil, err
	}

	diags := &diagnostic.Diagnostics{}
	diags.Merge(*analyzer.Diagnostics())
	diags.Merge(*query.Validate(f, graph))

	if !diags.IsValid() {
		return nil, diags, fmt.Errorf("%w: %w", ErrInvalidQuery, diags.Error())
	}

	r, err := Build(ctx, graph, f.Queries, opts.Limit)

	return r, diags, err
}

// Build inspects every queried type of graph. Queries must have been
// validated; an unknown type fails the whole build.
func Build(ctx context.Context, graph *analyze.TypeGraph, queries []query.Query, limit int) (*Report, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	r := &Report{
		Version: "1",
		Types:   make([]TypeReport, len(queries)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	in := inspect.New()

	for i := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			q := &queries[i]

			info := graph.Resolve(q.Type)
			if info == nil {
				return fmt.Errorf("type %q not found", q.Type)
			}

			tr, err := inspectType(in, info, q)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", info.ID, err)
			}

			r.Types[i] = tr

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return r, nil
}

func inspectType(in *inspect.Inspector, info *analyze.TypeInfo, q *query.Query) (TypeReport, error) {
	tr := TypeReport{
		Type: info.ID.String(),
		Kind: info.Kind.String(),
	}

	if len(q.Markers) > 0 {
		tr.Fields = make(map[string][]string, len(q.Markers))
	}

	for _, marker := range q.Markers {
		fields, err := in.AnnotatedFields(info, descriptor.MarkerKind(marker))
		if err != nil {
			return tr, err
		}

		tr.Fields[marker] = fields.Sorted()
	}

	if q.WantMethods() {
		methods, err := in.AllDeclaredMethods(info)
		if err != nil {
			return tr, err
		}

		tr.Methods = methods.Sorted()
	}

	if q.Constructors {
		tr.Constructors = constructorsOf(info)
	}

	return tr, nil
}

func constructorsOf(td descriptor.TypeDescriptor) []Constructor {
	var out []Constructor

	for _, c := range td.Constructors() {
		entry := Constructor{
			Name:   c.Name(),
			Access: c.Access().String(),
			Params: make([]string, 0, len(c.Params())),
		}

		for _, p := range c.Params() {
			entry.Params = append(entry.Params, p.String())
		}

		if s, ok := c.(interface{ Signature() string }); ok {
			entry.Signature = s.Signature()
		}

		out = append(out, entry)
	}

	return out
}
