package query

import (
	"fmt"
	"strings"

	"class-inspector/internal/analyze"
	"class-inspector/internal/diagnostic"
	"class-inspector/internal/match"
)

// Validate checks a query file against the loaded type graph.
func Validate(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("query_is_nil", "query file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	if len(f.Queries) == 0 {
		res.AddWarning("no_queries", "query file has no queries", "", "")
	}

	seen := map[string]struct{}{}

	for i := range f.Queries {
		q := &f.Queries[i]
		loc := fmt.Sprintf("queries[%d]", i)

		if q.Type == "" {
			res.AddError("type_missing", "query has no type", "", loc)
			continue
		}

		info := graph.Resolve(q.Type)
		if info == nil {
			msg := fmt.Sprintf("type %q not found", q.Type)
			if hints := match.Suggest(q.Type, graph.ShortNames()); len(hints) > 0 {
				msg += ", did you mean " + strings.Join(hints, " or ") + "?"
			}

			res.AddError("type_not_found", msg, q.Type, loc)

			continue
		}

		id := info.ID.String()
		if _, ok := seen[id]; ok {
			res.AddError("duplicate_query", fmt.Sprintf("type %s is queried twice", id), q.Type, loc)
			continue
		}

		seen[id] = struct{}{}

		for j, m := range q.Markers {
			if m == "" {
				res.AddError("empty_marker", "marker is empty", q.Type, fmt.Sprintf("%s.markers[%d]", loc, j))
			}
		}

		if len(q.Markers) > 0 && info.Kind != analyze.TypeKindStruct {
			res.AddWarning("markers_on_non_struct",
				fmt.Sprintf("%s is a %s and has no fields", id, info.Kind), q.Type, loc)
		}
	}

	return res
}
