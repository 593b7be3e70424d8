package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffFunctions(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Functions, to.Functions,
		func(_ string, f *ir.Function) { ops = append(ops, CreateFunction{Function: f}) },
		func(_ string, oldFn, newFn *ir.Function) {
			if !oldFn.SemanticallyEquals(newFn) {
				if oldFn.RequiresDropRecreate(newFn) {
					ops = append(ops, DropFunction{Namespace: oldFn.Namespace, Name: oldFn.Name, ArgTypes: oldFn.ArgTypes()})
					ops = append(ops, CreateFunction{Function: newFn})
				} else {
					ops = append(ops, AlterFunction{Function: newFn})
				}
			}
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassFunction, newFn.Namespace, newFn.Name, newFn.ArgTypes(), oldFn.Owner, newFn.Owner, oldFn.Grants, newFn.Grants)...)
		},
		func(_ string, f *ir.Function) {
			ops = append(ops, DropFunction{Namespace: f.Namespace, Name: f.Name, ArgTypes: f.ArgTypes()})
		},
	)
	return ops
}
