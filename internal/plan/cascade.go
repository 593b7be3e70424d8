package plan

import (
	"github.com/schemadrift/schemadrift/internal/depgraph"
	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// bracketCascades repositions the cascade drop/recreate pairs the
// differ emitted around every column type change so that, regardless
// of their bucketed position, the drop lands immediately before the
// earliest AlterColumn it forces and the recreate immediately after
// the latest one (spec §4.5 note, §4.8 P7, scenario 3: "drop precedes
// AlterColumns, AlterColumns precede the add").
func bracketCascades(ops []diff.MigrationOp) []diff.MigrationOp {
	alterPositions := alterColumnPositions(ops)
	if len(alterPositions) == 0 {
		return ops
	}

	n := len(ops)
	removed := make([]bool, n)
	before := make(map[int][]diff.MigrationOp)
	after := make(map[int][]diff.MigrationOp)

	bracket := func(dropPos, createPos int, related []int) {
		if len(related) == 0 || dropPos < 0 || createPos < 0 {
			return
		}
		removed[dropPos] = true
		removed[createPos] = true
		min, max := related[0], related[0]
		for _, p := range related {
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		before[min] = append(before[min], ops[dropPos])
		after[max] = append(after[max], ops[createPos])
	}

	for i, op := range ops {
		switch o := op.(type) {
		case diff.DropForeignKey:
			if o.ForeignKey == nil {
				continue
			}
			addPos := findAddForeignKey(ops, o.Namespace, o.Table, o.ForeignKey.Name)
			related := foreignKeyRelatedColumns(alterPositions, o)
			bracket(i, addPos, related)

		case diff.DropPolicy:
			if o.Policy == nil {
				continue
			}
			createPos := findCreatePolicy(ops, o.Namespace, o.Table, o.Name)
			related := tableRelatedColumns(alterPositions, o.Namespace, o.Table)
			bracket(i, createPos, related)

		case diff.DropTrigger:
			if o.Trigger == nil {
				continue
			}
			createPos := findCreateTrigger(ops, o.Namespace, o.Table, o.Name)
			related := tableRelatedColumns(alterPositions, o.Namespace, o.Table)
			bracket(i, createPos, related)

		case diff.DropView:
			if o.View == nil {
				continue
			}
			createPos := findCreateView(ops, o.Namespace, o.Name)
			related := viewRelatedColumns(alterPositions, o.View)
			bracket(i, createPos, related)
		}
	}

	if len(before) == 0 && len(after) == 0 {
		return ops
	}

	out := make([]diff.MigrationOp, 0, n)
	for i, op := range ops {
		out = append(out, before[i]...)
		if !removed[i] {
			out = append(out, op)
		}
		out = append(out, after[i]...)
	}
	return out
}

// alterColumnPositions maps each (namespace, table, column) touched
// by a data-type change to the position of its AlterColumn op.
func alterColumnPositions(ops []diff.MigrationOp) map[columnRef]int {
	out := map[columnRef]int{}
	for i, op := range ops {
		ac, ok := op.(diff.AlterColumn)
		if !ok || ac.Changes.DataType == nil {
			continue
		}
		out[columnRef{ac.Namespace, ac.Table, ac.Column}] = i
	}
	return out
}

type columnRef struct{ namespace, table, column string }

func foreignKeyRelatedColumns(alterPositions map[columnRef]int, drop diff.DropForeignKey) []int {
	var related []int
	for _, c := range drop.ForeignKey.Columns {
		if p, ok := alterPositions[columnRef{drop.Namespace, drop.Table, c}]; ok {
			related = append(related, p)
		}
	}
	for _, c := range drop.ForeignKey.ReferencedColumns {
		if p, ok := alterPositions[columnRef{drop.ForeignKey.ReferencedSchema, drop.ForeignKey.ReferencedTable, c}]; ok {
			related = append(related, p)
		}
	}
	return related
}

func tableRelatedColumns(alterPositions map[columnRef]int, namespace, table string) []int {
	var related []int
	for ref, pos := range alterPositions {
		if ref.namespace == namespace && ref.table == table {
			related = append(related, pos)
		}
	}
	return related
}

func viewRelatedColumns(alterPositions map[columnRef]int, v *ir.View) []int {
	refs := depgraph.Extract(v.Query, v.Namespace)
	var related []int
	for rel := range refs.Relations {
		ns, table := ir.SplitQualified(rel)
		related = append(related, tableRelatedColumns(alterPositions, ns, table)...)
	}
	return related
}

func findAddForeignKey(ops []diff.MigrationOp, namespace, table, name string) int {
	for i, op := range ops {
		if a, ok := op.(diff.AddForeignKey); ok && a.Namespace == namespace && a.Table == table && a.ForeignKey.Name == name {
			return i
		}
	}
	return -1
}

func findCreatePolicy(ops []diff.MigrationOp, namespace, table, name string) int {
	for i, op := range ops {
		if c, ok := op.(diff.CreatePolicy); ok && c.Namespace == namespace && c.Table == table && c.Policy.Name == name {
			return i
		}
	}
	return -1
}

func findCreateTrigger(ops []diff.MigrationOp, namespace, table, name string) int {
	for i, op := range ops {
		if c, ok := op.(diff.CreateTrigger); ok && c.Trigger.Namespace == namespace && c.Trigger.Table == table && c.Trigger.Name == name {
			return i
		}
	}
	return -1
}

func findCreateView(ops []diff.MigrationOp, namespace, name string) int {
	for i, op := range ops {
		if c, ok := op.(diff.CreateView); ok && c.View.Namespace == namespace && c.View.Name == name {
			return i
		}
	}
	return -1
}
