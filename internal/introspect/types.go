package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildEnumsAndDomains(ctx context.Context, ns string) error {
	if err := b.buildEnums(ctx, ns); err != nil {
		return err
	}
	return b.buildDomains(ctx, ns)
}

func (b *builder) buildEnums(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT t.typname, pg_get_userbyid(t.typowner),
		       array(SELECT e.enumlabel FROM pg_enum e WHERE e.enumtypid = t.oid ORDER BY e.enumsortorder)
		FROM pg_type t
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1 AND t.typtype = 'e'
	`, ns)
	if err != nil {
		return scanErr(err, "enums")
	}
	defer rows.Close()

	for rows.Next() {
		var name, owner string
		var values []string
		if err := rows.Scan(&name, &owner, &values); err != nil {
			return scanErr(err, "enum row")
		}
		b.schema.Enums[qualify(ns, name)] = &ir.Enum{Namespace: ns, Name: name, Owner: owner, Values: values}
	}
	return scanErr(rows.Err(), "enums")
}

func (b *builder) buildDomains(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT t.typname, pg_get_userbyid(t.typowner), format_type(t.typbasetype, t.typtypmod),
		       t.typnotnull, pg_get_expr(t.typdefaultbin, 0)
		FROM pg_type t
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1 AND t.typtype = 'd'
	`, ns)
	if err != nil {
		return scanErr(err, "domains")
	}
	defer rows.Close()

	var domains []*ir.Domain
	for rows.Next() {
		var name, owner, baseType string
		var notNull bool
		var def *string
		if err := rows.Scan(&name, &owner, &baseType, &notNull, &def); err != nil {
			return scanErr(err, "domain row")
		}
		d := &ir.Domain{Namespace: ns, Name: name, Owner: owner, BaseType: baseType, NotNull: notNull, Default: def}
		b.schema.Domains[qualify(ns, name)] = d
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return scanErr(err, "domains")
	}
	for _, d := range domains {
		if err := b.buildDomainChecks(ctx, ns, d); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildDomainChecks(ctx context.Context, ns string, d *ir.Domain) error {
	rows, err := b.pool.Query(ctx, `
		SELECT con.conname, pg_get_constraintdef(con.oid)
		FROM pg_constraint con
		JOIN pg_type t ON t.oid = con.contypid
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1 AND t.typname = $2
	`, ns, d.Name)
	if err != nil {
		return scanErr(err, "domain checks")
	}
	defer rows.Close()
	for rows.Next() {
		var name, def string
		if err := rows.Scan(&name, &def); err != nil {
			return scanErr(err, "domain check row")
		}
		d.Checks = append(d.Checks, &ir.NamedCheck{Name: name, Expression: stripCheckPrefix(def)})
	}
	return scanErr(rows.Err(), "domain checks")
}
