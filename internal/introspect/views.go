package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildViews(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, c.relkind = 'm', pg_get_viewdef(c.oid, true), pg_get_userbyid(c.relowner),
		       COALESCE((SELECT o.value::boolean FROM pg_options_to_table(c.reloptions) o
		                 WHERE o.option_name = 'security_invoker'), false)
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind IN ('v', 'm')
	`, ns)
	if err != nil {
		return scanErr(err, "views")
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var materialized, securityInvoker bool
		var query, owner string
		if err := rows.Scan(&name, &materialized, &query, &owner, &securityInvoker); err != nil {
			return scanErr(err, "view row")
		}
		b.schema.Views[qualify(ns, name)] = &ir.View{
			Namespace: ns, Name: name, Query: query, Materialized: materialized,
			SecurityInvoker: securityInvoker, Owner: owner,
		}
	}
	return scanErr(rows.Err(), "views")
}
