// Package sqlgen serializes a planned MigrationOp sequence to DDL
// text. Per spec §9 ("Variant explosion"), each variant carries a
// complete, self-contained parameter set, so rendering is a pure
// per-variant pattern match with no back-reference to the source
// Schema.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/util"
)

// Render returns the DDL statement(s) for a single op, each element a
// complete statement terminated by a semicolon. Most ops produce one
// statement; a few (CreateTable with inline indexes/RLS/policies,
// CreatePartition with inline indexes, AlterColumn/AlterDomain with
// more than one changed property) produce several, returned as
// separate elements rather than joined by newline, so a caller that
// executes them individually (internal/applier) never has to split a
// pretty-printed, internally-multi-line single statement back apart.
func Render(op diff.MigrationOp) ([]string, error) {
	switch o := op.(type) {
	case diff.CreateSchema:
		return one(renderCreateSchema(o)), nil
	case diff.DropSchema:
		return one(fmt.Sprintf("DROP SCHEMA %s CASCADE;", q(o.Name))), nil

	case diff.CreateExtension:
		return one(renderCreateExtension(o)), nil
	case diff.DropExtension:
		return one(fmt.Sprintf("DROP EXTENSION %s;", q(o.Name))), nil

	case diff.CreateEnum:
		return one(renderCreateEnum(o)), nil
	case diff.DropEnum:
		return one(fmt.Sprintf("DROP TYPE %s;", qq(o.Namespace, o.Name))), nil
	case diff.AddEnumValue:
		return one(renderAddEnumValue(o)), nil

	case diff.CreateDomain:
		return one(renderCreateDomain(o)), nil
	case diff.DropDomain:
		return one(fmt.Sprintf("DROP DOMAIN %s;", qq(o.Namespace, o.Name))), nil
	case diff.AlterDomain:
		return renderAlterDomain(o), nil

	case diff.CreateSequence:
		return one(renderCreateSequence(o)), nil
	case diff.DropSequence:
		return one(fmt.Sprintf("DROP SEQUENCE %s;", qq(o.Namespace, o.Name))), nil
	case diff.AlterSequence:
		return one(renderAlterSequence(o)), nil

	case diff.CreateTable:
		return renderCreateTable(o), nil
	case diff.DropTable:
		return one(fmt.Sprintf("DROP TABLE %s;", qq(o.Namespace, o.Name))), nil

	case diff.CreatePartition:
		return renderCreatePartition(o), nil
	case diff.DropPartition:
		return one(fmt.Sprintf("DROP TABLE %s;", qq(o.Namespace, o.Name))), nil

	case diff.AddColumn:
		return one(renderAddColumn(o)), nil
	case diff.DropColumn:
		return one(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", qq(o.Namespace, o.Table), q(o.Column))), nil
	case diff.AlterColumn:
		return renderAlterColumn(o), nil

	case diff.AddPrimaryKey:
		return one(renderAddPrimaryKey(o)), nil
	case diff.DropPrimaryKey:
		return one(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", qq(o.Namespace, o.Table), q(o.Name))), nil
	case diff.AddIndex:
		return one(renderAddIndex(o)), nil
	case diff.DropIndex:
		return one(fmt.Sprintf("DROP INDEX %s;", qq(o.Namespace, o.Name))), nil
	case diff.AddForeignKey:
		return one(renderAddForeignKey(o)), nil
	case diff.DropForeignKey:
		return one(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", qq(o.Namespace, o.Table), q(o.Name))), nil
	case diff.AddCheckConstraint:
		return one(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);", qq(o.Namespace, o.Table), q(o.Check.Name), o.Check.Expression)), nil
	case diff.DropCheckConstraint:
		return one(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", qq(o.Namespace, o.Table), q(o.Name))), nil

	case diff.EnableRLS:
		return one(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY;", qq(o.Namespace, o.Table))), nil
	case diff.DisableRLS:
		return one(fmt.Sprintf("ALTER TABLE %s DISABLE ROW LEVEL SECURITY;", qq(o.Namespace, o.Table))), nil

	case diff.CreatePolicy:
		return one(renderCreatePolicy(o)), nil
	case diff.DropPolicy:
		return one(fmt.Sprintf("DROP POLICY %s ON %s;", q(o.Name), qq(o.Namespace, o.Table))), nil
	case diff.AlterPolicy:
		return one(renderAlterPolicy(o)), nil

	case diff.CreateFunction:
		return one(renderCreateFunction(o)), nil
	case diff.DropFunction:
		return one(fmt.Sprintf("DROP FUNCTION %s(%s);", qq(o.Namespace, o.Name), strings.Join(o.ArgTypes, ", "))), nil
	case diff.AlterFunction:
		return one(renderCreateFunctionText(o.Function, true)), nil

	case diff.CreateView:
		return one(renderCreateView(o.View, false)), nil
	case diff.DropView:
		kind := "VIEW"
		if o.Materialized {
			kind = "MATERIALIZED VIEW"
		}
		return one(fmt.Sprintf("DROP %s %s;", kind, qq(o.Namespace, o.Name))), nil
	case diff.AlterView:
		return one(renderCreateView(o.View, true)), nil

	case diff.CreateTrigger:
		return one(renderCreateTrigger(o)), nil
	case diff.DropTrigger:
		return one(fmt.Sprintf("DROP TRIGGER %s ON %s;", q(o.Name), qq(o.Namespace, o.Table))), nil
	case diff.AlterTriggerEnabled:
		return one(renderAlterTriggerEnabled(o)), nil

	case diff.GrantPrivileges:
		return one(renderGrant(o)), nil
	case diff.RevokePrivileges:
		return one(renderRevoke(o)), nil
	case diff.AlterDefaultPrivileges:
		return one(renderAlterDefaultPrivileges(o)), nil
	case diff.AlterOwner:
		return one(renderAlterOwner(o)), nil

	case diff.BackfillHint:
		return one(fmt.Sprintf("-- BACKFILL: %s\n-- UPDATE %s SET %s = <value> WHERE %s IS NULL;", o.Reason, qq(o.Namespace, o.Table), q(o.Column), q(o.Column))), nil
	case diff.SetColumnNotNull:
		return one(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL;", qq(o.Namespace, o.Table), q(o.Column))), nil
	}

	return nil, fmt.Errorf("sqlgen: unhandled op kind %q", op.Kind())
}

func one(stmt string) []string { return []string{stmt} }

// RenderAll renders every op in order, one statement per line, joined
// for readability (a display/dump rendering, not meant to be split
// back into individual tx.Exec calls — see internal/applier, which
// calls Render directly per op instead).
func RenderAll(ops []diff.MigrationOp) (string, error) {
	var b strings.Builder
	for i, op := range ops {
		stmts, err := Render(op)
		if err != nil {
			return "", fmt.Errorf("op %d (%s): %w", i, op.Describe(), err)
		}
		for _, stmt := range stmts {
			b.WriteString(stmt)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func q(ident string) string { return util.QuoteIdentifier(ident) }

func qq(namespace, name string) string {
	if namespace == "" {
		namespace = "public"
	}
	return q(namespace) + "." + q(name)
}
