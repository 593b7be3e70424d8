package parser

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseCreateView(stmt *pg_query.ViewStmt) error {
	namespace, name := extractRangeVar(stmt.View)
	p.schema.GetOrCreateNamespace(namespace)

	view := &ir.View{Namespace: namespace, Name: name, Query: deparseStmt(stmt.Query)}
	for _, opt := range stmt.Options {
		if defElem := opt.GetDefElem(); defElem != nil && defElem.Defname == "security_invoker" {
			if b := defElem.Arg.GetBoolean(); b != nil {
				view.SecurityInvoker = b.Boolval
			} else {
				view.SecurityInvoker = true
			}
		}
	}
	p.schema.Views[ir.Qualified(namespace, name)] = view
	return nil
}

// parseCreateTableAs handles CREATE MATERIALIZED VIEW, which pg_query
// parses as a CreateTableAsStmt with Objtype OBJECT_MATVIEW rather than
// a ViewStmt.
func (p *Parser) parseCreateTableAs(stmt *pg_query.CreateTableAsStmt) error {
	if stmt.Objtype != pg_query.ObjectType_OBJECT_MATVIEW {
		return nil
	}
	namespace, name := extractRangeVar(stmt.Into.Rel)
	p.schema.GetOrCreateNamespace(namespace)
	p.schema.Views[ir.Qualified(namespace, name)] = &ir.View{
		Namespace: namespace, Name: name,
		Query:        deparseStmt(stmt.Query),
		Materialized: true,
	}
	return nil
}
