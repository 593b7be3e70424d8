package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffDomains(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Domains, to.Domains,
		func(_ string, d *ir.Domain) { ops = append(ops, CreateDomain{Domain: d}) },
		func(_ string, oldDomain, newDomain *ir.Domain) {
			if op, changed := diffDomainAttrs(oldDomain, newDomain); changed {
				ops = append(ops, op)
			}
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassType, newDomain.Namespace, newDomain.Name, nil, oldDomain.Owner, newDomain.Owner, oldDomain.Grants, newDomain.Grants)...)
		},
		func(_ string, d *ir.Domain) { ops = append(ops, DropDomain{Namespace: d.Namespace, Name: d.Name}) },
	)
	return ops
}

func diffDomainAttrs(from, to *ir.Domain) (AlterDomain, bool) {
	op := AlterDomain{Namespace: to.Namespace, Name: to.Name}
	changed := false

	if !defaultsEqual(from.Default, to.Default) {
		d := to.Default
		op.Default = &d
		changed = true
	}
	if from.NotNull != to.NotNull {
		nn := to.NotNull
		op.NotNull = &nn
		changed = true
	}
	return op, changed
}

func defaultsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ir.NormalizeExpression(*a) == ir.NormalizeExpression(*b)
}
