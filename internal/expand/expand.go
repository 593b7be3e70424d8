// Package expand implements the spec §4.7 expand/contract rewriter:
// it splits an ordinary plan into three deployable phases so that old
// and new application code can coexist while a schema change rolls
// out.
package expand

import (
	"fmt"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
	"github.com/schemadrift/schemadrift/internal/util"
)

// Phases holds the three-way split of an input plan. Each phase is
// independently planned and applied; Backfill carries no executable
// DDL, only hints for a human-authored data migration.
type Phases struct {
	Expand   []diff.MigrationOp
	Backfill []diff.MigrationOp
	Contract []diff.MigrationOp
}

// Split rewrites ops into Expand/Backfill/Contract phases. The only
// rewrite rule in the core is AddColumn{not_null}; every other op
// passes through to Expand unchanged, since it carries no
// coexistence hazard the phasing needs to smooth over.
func Split(ops []diff.MigrationOp) Phases {
	var p Phases
	for _, op := range ops {
		ac, ok := op.(diff.AddColumn)
		if !ok || ac.Column.Nullable {
			p.Expand = append(p.Expand, op)
			continue
		}

		nullable := *ac.Column
		nullable.Nullable = true
		p.Expand = append(p.Expand, diff.AddColumn{Namespace: ac.Namespace, Table: ac.Table, Column: &nullable})
		p.Backfill = append(p.Backfill, diff.BackfillHint{
			Namespace: ac.Namespace, Table: ac.Table, Column: ac.Column.Name,
			Reason: fmt.Sprintf("update every row to set %s", ac.Column.Name),
		})
		p.Contract = append(p.Contract, diff.SetColumnNotNull{Namespace: ac.Namespace, Table: ac.Table, Column: ac.Column.Name})
	}
	return p
}

// VersionSchemaName returns the name of the overlay namespace for a
// given version of a base namespace.
func VersionSchemaName(baseNamespace string, version int) string {
	return fmt.Sprintf("%s_v%d", baseNamespace, version)
}

// VersionSchemaOverlay builds the optional version-schema overlay
// (spec §4.7): a namespace containing one security_invoker view per
// table in baseNamespace, with columns mapped 1:1 unless
// columnRenames overrides a table's mapping for an in-flight rename.
// The caller appends the result to the Expand phase.
//
// columnRenames maps a table name to a map of new column name -> old
// column name, for tables whose columns the base migration is
// renaming; absent entries use an identity mapping.
func VersionSchemaOverlay(base *ir.Schema, baseNamespace string, version int, columnRenames map[string]map[string]string) []diff.MigrationOp {
	overlay := VersionSchemaName(baseNamespace, version)
	ops := []diff.MigrationOp{diff.CreateSchema{Namespace: &ir.Namespace{Name: overlay}}}

	for _, t := range base.Tables {
		if t.Namespace != baseNamespace {
			continue
		}
		renames := columnRenames[t.Name]
		ops = append(ops, diff.CreateView{View: &ir.View{
			Namespace:       overlay,
			Name:            t.Name,
			Query:           versionViewQuery(t, renames),
			SecurityInvoker: true,
		}})
	}
	return ops
}

// PreviousVersionDrop returns the Contract-phase op that removes the
// overlay namespace one version back, once the new version schema has
// taken over.
func PreviousVersionDrop(baseNamespace string, previousVersion int) diff.MigrationOp {
	return diff.DropSchema{Name: VersionSchemaName(baseNamespace, previousVersion)}
}

func versionViewQuery(t *ir.Table, renames map[string]string) string {
	query := "SELECT "
	for i, c := range t.Columns {
		if i > 0 {
			query += ", "
		}
		source := c.Name
		if old, ok := renames[c.Name]; ok {
			source = old
		}
		if source == c.Name {
			query += util.QuoteIdentifier(source)
		} else {
			query += util.QuoteIdentifier(source) + " AS " + util.QuoteIdentifier(c.Name)
		}
	}
	query += " FROM " + ir.Qualified(t.Namespace, t.Name)
	return query
}
