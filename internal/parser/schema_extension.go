package parser

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseCreateSchema(stmt *pg_query.CreateSchemaStmt) error {
	name := stmt.Schemaname
	if name == "" && stmt.Authrole != nil {
		// CREATE SCHEMA AUTHORIZATION role (no explicit name): the schema
		// takes the role's name.
		name = extractRoleName(stmt.Authrole)
	}
	if name == "" {
		return nil
	}
	ns := p.schema.GetOrCreateNamespace(name)
	if stmt.Authrole != nil {
		ns.Owner = extractRoleName(stmt.Authrole)
	}
	return nil
}

func (p *Parser) parseCreateExtension(stmt *pg_query.CreateExtensionStmt) error {
	ext := &ir.Extension{Name: stmt.Extname}
	for _, opt := range stmt.Options {
		defElem := opt.GetDefElem()
		if defElem == nil {
			continue
		}
		switch defElem.Defname {
		case "new_version", "version":
			ext.Version = extractStringValue(defElem.Arg)
		case "schema":
			ext.InstallSchema = extractStringValue(defElem.Arg)
		}
	}
	p.schema.Extensions[ext.Name] = ext
	return nil
}
