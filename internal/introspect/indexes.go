package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildIndexes(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, ic.relname, i.indisunique, am.amname,
		       pg_get_expr(i.indpred, i.indrelid),
		       array(SELECT pg_get_indexdef(i.indexrelid, k.ord, true)
		             FROM unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord)
		             ORDER BY k.ord)
		FROM pg_index i
		JOIN pg_class c ON c.oid = i.indrelid
		JOIN pg_class ic ON ic.oid = i.indexrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_am am ON am.oid = ic.relam
		WHERE n.nspname = $1 AND NOT i.indisprimary
	`, ns)
	if err != nil {
		return scanErr(err, "indexes")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, indexName, method string
		var unique bool
		var predicate *string
		var colExprs []string
		if err := rows.Scan(&tableName, &indexName, &unique, &method, &predicate, &colExprs); err != nil {
			return scanErr(err, "index row")
		}
		table, ok := b.schema.Tables[qualify(ns, tableName)]
		if !ok {
			continue
		}
		idx := &ir.Index{
			Namespace: ns, Table: tableName, Name: indexName, Unique: unique, Method: method,
		}
		if predicate != nil {
			idx.Predicate = *predicate
		}
		for _, expr := range colExprs {
			idx.Columns = append(idx.Columns, parseIndexColumnDef(expr))
		}
		table.Indexes = append(table.Indexes, idx)
	}
	return scanErr(rows.Err(), "indexes")
}

// parseIndexColumnDef splits one pg_get_indexdef column fragment (e.g.
// "lower(email)", "created_at DESC", "name COLLATE \"C\" ASC") into
// its expression and explicit sort direction, defaulting direction to
// the empty string (meaning ASC, sqlgen's default) when none is given.
func parseIndexColumnDef(expr string) ir.IndexColumn {
	for _, suffix := range []string{" DESC", " ASC"} {
		if len(expr) > len(suffix) && expr[len(expr)-len(suffix):] == suffix {
			return ir.IndexColumn{Expression: expr[:len(expr)-len(suffix)], Direction: suffix[1:]}
		}
	}
	return ir.IndexColumn{Expression: expr}
}
