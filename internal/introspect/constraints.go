package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildConstraints(ctx context.Context, ns string) error {
	if err := b.buildPrimaryKeys(ctx, ns); err != nil {
		return err
	}
	if err := b.buildForeignKeys(ctx, ns); err != nil {
		return err
	}
	return b.buildChecks(ctx, ns)
}

func (b *builder) buildPrimaryKeys(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, con.conname,
		       array(SELECT a.attname FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
		             JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
		             ORDER BY k.ord)
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND con.contype = 'p'
	`, ns)
	if err != nil {
		return scanErr(err, "primary keys")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName string
		var columns []string
		if err := rows.Scan(&tableName, &conName, &columns); err != nil {
			return scanErr(err, "primary key row")
		}
		if table, ok := b.schema.Tables[qualify(ns, tableName)]; ok {
			table.PrimaryKey = &ir.PrimaryKey{Name: conName, Columns: columns}
		}
	}
	return scanErr(rows.Err(), "primary keys")
}

func (b *builder) buildForeignKeys(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, con.conname,
		       array(SELECT a.attname FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
		             JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
		             ORDER BY k.ord),
		       fn.nspname, fc.relname,
		       array(SELECT a.attname FROM unnest(con.confkey) WITH ORDINALITY AS k(attnum, ord)
		             JOIN pg_attribute a ON a.attrelid = con.confrelid AND a.attnum = k.attnum
		             ORDER BY k.ord),
		       con.confupdtype, con.confdeltype, con.condeferrable, con.condeferred
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class fc ON fc.oid = con.confrelid
		JOIN pg_namespace fn ON fn.oid = fc.relnamespace
		WHERE n.nspname = $1 AND con.contype = 'f'
	`, ns)
	if err != nil {
		return scanErr(err, "foreign keys")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, refNS, refTable string
		var columns, refColumns []string
		var updAction, delAction string
		var deferrable, deferred bool
		if err := rows.Scan(&tableName, &conName, &columns, &refNS, &refTable, &refColumns,
			&updAction, &delAction, &deferrable, &deferred); err != nil {
			return scanErr(err, "foreign key row")
		}
		table, ok := b.schema.Tables[qualify(ns, tableName)]
		if !ok {
			continue
		}
		table.ForeignKeys = append(table.ForeignKeys, &ir.ForeignKey{
			Name: conName, Columns: columns,
			ReferencedSchema: refNS, ReferencedTable: refTable, ReferencedColumns: refColumns,
			OnUpdate: fkAction(updAction), OnDelete: fkAction(delAction),
			Deferrable: deferrable, InitiallyDeferred: deferred,
		})
	}
	return scanErr(rows.Err(), "foreign keys")
}

// fkAction maps pg_constraint's single-character confupdtype/confdeltype
// code to the SQL keyword sqlgen renders after ON UPDATE/ON DELETE.
func fkAction(code string) string {
	switch code {
	case "c":
		return "CASCADE"
	case "n":
		return "SET NULL"
	case "d":
		return "SET DEFAULT"
	case "r":
		return "RESTRICT"
	default:
		return "NO ACTION"
	}
}

func (b *builder) buildChecks(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, con.conname, pg_get_constraintdef(con.oid)
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND con.contype = 'c' AND con.conrelid <> 0
	`, ns)
	if err != nil {
		return scanErr(err, "check constraints")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, conName, def string
		if err := rows.Scan(&tableName, &conName, &def); err != nil {
			return scanErr(err, "check constraint row")
		}
		if table, ok := b.schema.Tables[qualify(ns, tableName)]; ok {
			table.Checks = append(table.Checks, &ir.CheckConstraint{
				Name: conName, Expression: stripCheckPrefix(def),
			})
		}
	}
	return scanErr(rows.Err(), "check constraints")
}

// stripCheckPrefix trims pg_get_constraintdef's "CHECK (...)" wrapper
// down to the bare expression, matching what the parser stores for
// the same constraint when read from source instead of the catalog.
func stripCheckPrefix(def string) string {
	const prefix = "CHECK ("
	if len(def) > len(prefix)+1 && def[:len(prefix)] == prefix && def[len(def)-1] == ')' {
		return def[len(prefix) : len(def)-1]
	}
	return def
}
