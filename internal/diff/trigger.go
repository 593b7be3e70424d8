package diff

import "github.com/schemadrift/schemadrift/internal/ir"

func diffTriggers(from, to *ir.Schema) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Triggers, to.Triggers,
		func(_ string, t *ir.Trigger) { ops = append(ops, CreateTrigger{Trigger: t}) },
		func(_ string, oldTrig, newTrig *ir.Trigger) {
			ops = append(ops, diffTrigger(oldTrig, newTrig)...)
		},
		func(_ string, t *ir.Trigger) {
			ops = append(ops, DropTrigger{Namespace: t.Namespace, Table: t.Table, Name: t.Name, Trigger: t})
		},
	)
	return ops
}

func diffTrigger(from, to *ir.Trigger) []MigrationOp {
	if from.SemanticallyEquals(to) {
		return nil
	}
	if onlyEnabledDiffers(from, to) {
		return []MigrationOp{AlterTriggerEnabled{Namespace: to.Namespace, Table: to.Table, Name: to.Name, Enabled: to.Enabled}}
	}
	return []MigrationOp{
		DropTrigger{Namespace: from.Namespace, Table: from.Table, Name: from.Name, Trigger: from},
		CreateTrigger{Trigger: to},
	}
}

// onlyEnabledDiffers reports whether swapping to.Enabled onto a copy
// of from would make the two triggers semantically equal, i.e. the
// only change is the enabled state.
func onlyEnabledDiffers(from, to *ir.Trigger) bool {
	probe := *from
	probe.Enabled = to.Enabled
	return probe.SemanticallyEquals(to)
}
