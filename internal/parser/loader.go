package parser

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/schemadrift/schemadrift/internal/depgraph"
	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/include"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Source is one entry of the `sql:<path-or-glob>` half of the
// source-spec grammar (spec §6); `db:<url>` sources are resolved by
// the introspection collaborator before reaching this package.
type Source struct {
	Glob string
}

// ParseSources expands each source's glob, parses every matched file
// concurrently, and merges the results into one finalized Schema in
// an order that satisfies cross-file forward references.
func ParseSources(ctx context.Context, sources []Source) (*ir.Schema, error) {
	var paths []string
	for _, src := range sources {
		matches, err := filepath.Glob(src.Glob)
		if err != nil {
			return nil, errs.Parse("invalid source glob %q: %v", src.Glob, err)
		}
		if len(matches) == 0 {
			return nil, errs.Parse("source glob %q matched no files", src.Glob)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return ParseFiles(ctx, paths)
}

type fileResult struct {
	path   string
	schema *ir.Schema
	raw    string
}

// ParseFiles parses each file (after resolving its own \i includes)
// into an independent Schema, then merges them in an order where a
// file defining an object is merged before a file that references it
// (spec §4.3.6). Parsing runs concurrently; the merge itself is
// sequential since Schema.Merge mutates a shared accumulator.
func ParseFiles(ctx context.Context, paths []string) (*ir.Schema, error) {
	results := make([]fileResult, len(paths))

	group, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			processor := include.NewProcessor(filepath.Dir(path))
			flattened, err := processor.ProcessFile(path)
			if err != nil {
				return errs.ParseAt(path, 0, "resolving includes: %v", err)
			}
			p := New()
			if err := p.ParseSQL(flattened); err != nil {
				return annotateFile(err, path)
			}
			results[i] = fileResult{path: path, schema: p.Schema(), raw: flattened}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	definedIn := make(map[string]string, len(results))
	for _, r := range results {
		for key := range r.schema.Tables {
			definedIn[key] = r.path
		}
		for key := range r.schema.Views {
			definedIn[key] = r.path
		}
		for key := range r.schema.Sequences {
			definedIn[key] = r.path
		}
		for key := range r.schema.Functions {
			definedIn[key] = r.path
		}
		for key := range r.schema.Enums {
			definedIn[key] = r.path
		}
		for key := range r.schema.Domains {
			definedIn[key] = r.path
		}
	}

	ordered, err := depgraph.TopologicalSort(results, fileKey, func(r fileResult) []string {
		return fileDeps(r, definedIn)
	})
	if err != nil {
		return nil, errs.Parse("ordering source files: %v", err)
	}

	merged := ir.New()
	origins := make(map[string]string)
	for _, r := range ordered {
		if err := merged.Merge(r.schema, r.path, origins); err != nil {
			return nil, err
		}
	}
	if err := merged.Finalize(true); err != nil {
		return nil, err
	}
	return merged, nil
}

func fileKey(r fileResult) string { return r.path }

// fileDeps reports the other files r's content references, derived
// from the application-level dependency set depgraph.Extract computes
// over r's raw SQL text.
func fileDeps(r fileResult, definedIn map[string]string) []string {
	refs := depgraph.Extract(r.raw, ir.DefaultNamespace)
	seen := make(map[string]bool)
	var deps []string
	add := func(key string) {
		if owner, ok := definedIn[key]; ok && owner != r.path && !seen[owner] {
			seen[owner] = true
			deps = append(deps, owner)
		}
	}
	for rel := range refs.Relations {
		add(rel)
	}
	for fn := range refs.Functions {
		add(fn)
	}
	return deps
}

// annotateFile rewrites a *errs.Error's File field to path when the
// error didn't already carry one, so the loader's concurrent parse
// still reports which file a bare parse error came from.
func annotateFile(err error, path string) error {
	var e *errs.Error
	if !errs.As(err, &e) || e.File != "" {
		return err
	}
	e.File = path
	return e
}

// ParseSourceSpec splits a `sql:<path-or-glob>` spec into its Source.
// `db:` specs are rejected here; the caller routes them to the
// introspection collaborator instead.
func ParseSourceSpec(spec string) (Source, error) {
	rest, ok := strings.CutPrefix(spec, "sql:")
	if !ok {
		return Source{}, errs.Parse("not a sql: source spec: %q", spec)
	}
	if rest == "" {
		return Source{}, errs.Parse("empty sql: source spec")
	}
	return Source{Glob: rest}, nil
}
