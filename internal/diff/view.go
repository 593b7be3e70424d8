package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffViews(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Views, to.Views,
		func(_ string, v *ir.View) { ops = append(ops, CreateView{View: v}) },
		func(_ string, oldView, newView *ir.View) {
			if !oldView.SemanticallyEquals(newView) {
				ops = append(ops, AlterView{View: newView})
			}
			ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassView, newView.Namespace, newView.Name, nil, oldView.Owner, newView.Owner, oldView.Grants, newView.Grants)...)
		},
		func(_ string, v *ir.View) {
			ops = append(ops, DropView{Namespace: v.Namespace, Name: v.Name, Materialized: v.Materialized, View: v})
		},
	)
	return ops
}
