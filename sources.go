package pgschema

import (
	"context"
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/introspect"
	"github.com/schemadrift/schemadrift/internal/ir"
	"github.com/schemadrift/schemadrift/internal/parser"
)

// resolveSources resolves spec §6's source-spec grammar — `sql:<path-
// or-glob>` parses files, `db:<url>` introspects a live database — and
// merges every source into one Schema. "Multiple sources merge" (spec
// §6): a mix of sql: and db: entries is valid. All sql: entries are
// parsed together first; each db: schema is then merged on top, in the
// order the db: entries were given.
func resolveSources(ctx context.Context, specs []string) (*ir.Schema, error) {
	if len(specs) == 0 {
		return nil, errs.Parse("no sources given")
	}

	var sqlSources []parser.Source
	var dbSchemas []*ir.Schema

	for _, spec := range specs {
		switch {
		case strings.HasPrefix(spec, "sql:"):
			src, err := parser.ParseSourceSpec(spec)
			if err != nil {
				return nil, err
			}
			sqlSources = append(sqlSources, src)
		case strings.HasPrefix(spec, "db:"):
			url := strings.TrimPrefix(spec, "db:")
			schema, err := introspect.Introspect(ctx, url, nil)
			if err != nil {
				return nil, err
			}
			dbSchemas = append(dbSchemas, schema)
		default:
			return nil, errs.Parse("source %q has neither a sql: nor db: prefix", spec)
		}
	}

	merged := ir.New()
	if len(sqlSources) > 0 {
		schema, err := parser.ParseSources(ctx, sqlSources)
		if err != nil {
			return nil, err
		}
		merged = schema
	}

	if len(dbSchemas) > 0 {
		origins := make(map[string]string)
		for i, schema := range dbSchemas {
			if err := merged.Merge(schema, fmt.Sprintf("db source %d", i+1), origins); err != nil {
				return nil, err
			}
		}
		if err := merged.Finalize(true); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
