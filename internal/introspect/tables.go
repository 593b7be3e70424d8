package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildTables(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, pg_get_userbyid(c.relowner), c.relrowsecurity
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind IN ('r', 'p')
	`, ns)
	if err != nil {
		return scanErr(err, "tables")
	}
	defer rows.Close()

	for rows.Next() {
		var name, owner string
		var rls bool
		if err := rows.Scan(&name, &owner, &rls); err != nil {
			return scanErr(err, "table row")
		}
		b.schema.Tables[qualify(ns, name)] = &ir.Table{
			Namespace: ns, Name: name, Owner: owner, RLSEnabled: rls,
		}
	}
	return scanErr(rows.Err(), "tables")
}

func (b *builder) buildColumns(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, a.attname, a.attnum,
		       format_type(a.atttypid, a.atttypmod),
		       NOT a.attnotnull,
		       pg_get_expr(ad.adbin, ad.adrelid),
		       col_description(c.oid, a.attnum)
		FROM pg_attribute a
		JOIN pg_class c ON c.oid = a.attrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_attrdef ad ON ad.adrelid = c.oid AND ad.adnum = a.attnum
		WHERE n.nspname = $1 AND c.relkind IN ('r', 'p')
		  AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY c.relname, a.attnum
	`, ns)
	if err != nil {
		return scanErr(err, "columns")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, colName, dataType string
		var position int16
		var nullable bool
		var defaultExpr, comment *string
		if err := rows.Scan(&tableName, &colName, &position, &dataType, &nullable, &defaultExpr, &comment); err != nil {
			return scanErr(err, "column row")
		}
		table, ok := b.schema.Tables[qualify(ns, tableName)]
		if !ok {
			continue
		}
		col := &ir.Column{
			Name: colName, Position: int(position), DataType: dataType,
			Nullable: nullable, Default: defaultExpr,
		}
		if comment != nil {
			col.Comment = *comment
		}
		table.Columns = append(table.Columns, col)
	}
	return scanErr(rows.Err(), "columns")
}
