// Package depgraph extracts the application-level object references a
// SQL fragment makes (spec §4.8) and provides the generic topological
// sort the cross-file loader and CreateTable/DropTable planner stages
// use to order objects by those references.
package depgraph

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// References is the result of extracting dependencies from one SQL
// fragment: the set of qualified function names and the set of
// qualified relation (table/view) names it references.
type References struct {
	Functions map[string]bool
	Relations map[string]bool
}

func newReferences() *References {
	return &References{Functions: map[string]bool{}, Relations: map[string]bool{}}
}

// Extract parses sql as a standalone statement (or, failing that, as a
// wrapped "SELECT <sql>" expression, which covers function bodies and
// policy/check expressions that aren't valid top-level statements on
// their own) and walks the resulting AST collecting every function
// call and table reference, resolved against defaultNamespace when
// unqualified. Built-in language functions are filtered out so only
// application-level dependencies remain. A parse failure on both
// attempts returns an empty, non-nil result: the caller's contract
// treats missing dependency information as zero cascade risk, not an
// error.
func Extract(sql string, defaultNamespace string) *References {
	refs := newReferences()
	tree, err := pg_query.Parse(sql)
	if err != nil {
		tree, err = pg_query.Parse("SELECT " + sql)
		if err != nil {
			return refs
		}
	}
	for _, stmt := range tree.Stmts {
		walk(stmt.ProtoReflect(), refs, defaultNamespace)
	}
	return refs
}

// walk recursively visits every message field of m, recording
// FuncCall and RangeVar nodes as it goes. pg_query_go's AST is a
// protobuf oneof tree; walking it structurally instead of by an
// exhaustive statement-type switch means new statement kinds are
// covered automatically.
func walk(m protoreflect.Message, refs *References, defaultNamespace string) {
	if !m.IsValid() {
		return
	}
	switch msg := m.Interface().(type) {
	case *pg_query.FuncCall:
		if name := qualifiedFuncName(msg.Funcname, defaultNamespace); name != "" && !isBuiltinFunction(baseName(name)) {
			refs.Functions[name] = true
		}
	case *pg_query.RangeVar:
		refs.Relations[qualifiedRelName(msg, defaultNamespace)] = true
	}

	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		switch {
		case fd.IsList():
			list := v.List()
			for i := 0; i < list.Len(); i++ {
				item := list.Get(i)
				if fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind {
					walk(item.Message(), refs, defaultNamespace)
				}
			}
		case fd.IsMap():
			// pg_query_go's AST has no map fields; nothing to do.
		case fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind:
			walk(v.Message(), refs, defaultNamespace)
		}
		return true
	})
}

func qualifiedFuncName(parts []*pg_query.Node, defaultNamespace string) string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := p.GetString_(); s != nil {
			names = append(names, s.Sval)
		}
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return defaultNamespace + "." + names[0]
	}
	return strings.Join(names, ".")
}

func baseName(qualified string) string {
	parts := strings.Split(qualified, ".")
	return parts[len(parts)-1]
}

func qualifiedRelName(rv *pg_query.RangeVar, defaultNamespace string) string {
	ns := rv.Schemaname
	if ns == "" {
		ns = defaultNamespace
	}
	return ns + "." + rv.Relname
}
