package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildPolicies(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, pol.polname, pol.polpermissive, pol.polcmd,
		       pg_get_expr(pol.polqual, pol.polrelid), pg_get_expr(pol.polwithcheck, pol.polrelid),
		       array(SELECT rolname FROM pg_roles WHERE oid = ANY(pol.polroles))
		FROM pg_policy pol
		JOIN pg_class c ON c.oid = pol.polrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1
	`, ns)
	if err != nil {
		return scanErr(err, "policies")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, name string
		var permissive bool
		var cmd string
		var using, withCheck *string
		var roles []string
		if err := rows.Scan(&tableName, &name, &permissive, &cmd, &using, &withCheck, &roles); err != nil {
			return scanErr(err, "policy row")
		}
		table, ok := b.schema.Tables[qualify(ns, tableName)]
		if !ok {
			continue
		}
		if len(roles) == 0 {
			roles = []string{"PUBLIC"}
		}
		policy := &ir.Policy{
			Namespace: ns, Table: tableName, Name: name, Permissive: permissive,
			Command: policyCommand(cmd), Roles: ir.NormalizeRoles(roles),
		}
		if using != nil {
			policy.Using = ir.NormalizePolicyExpression(*using)
		}
		if withCheck != nil {
			policy.WithCheck = ir.NormalizePolicyExpression(*withCheck)
		}
		table.Policies = append(table.Policies, policy)
	}
	return scanErr(rows.Err(), "policies")
}

func policyCommand(code string) ir.PolicyCommand {
	switch code {
	case "r":
		return ir.PolicyCommandSelect
	case "a":
		return ir.PolicyCommandInsert
	case "w":
		return ir.PolicyCommandUpdate
	case "d":
		return ir.PolicyCommandDelete
	default:
		return ir.PolicyCommandAll
	}
}
