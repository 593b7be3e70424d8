package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffSchemas(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Namespaces, to.Namespaces,
		func(_ string, ns *ir.Namespace) { ops = append(ops, CreateSchema{Namespace: ns}) },
		func(_ string, oldNS, newNS *ir.Namespace) {
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassSchema, newNS.Name, newNS.Name, nil, oldNS.Owner, newNS.Owner, oldNS.Grants, newNS.Grants)...)
		},
		func(name string, _ *ir.Namespace) { ops = append(ops, DropSchema{Name: name}) },
	)
	return ops
}
