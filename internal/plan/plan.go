// Package plan implements the spec §4.5 planner: it takes the
// unordered operation set the differ produces and orders it into a
// sequence safe to execute statement-by-statement inside a single
// transaction.
package plan

import (
	"errors"
	"sort"

	"github.com/schemadrift/schemadrift/internal/depgraph"
	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// createSequence is the fixed Creates-phase ordering class.
var createSequence = []diff.OpKind{
	diff.KindCreateSchema,
	diff.KindCreateExtension,
	diff.KindCreateEnum,
	diff.KindAddEnumValue,
	diff.KindCreateDomain,
	diff.KindAlterDomain,
	diff.KindCreateSequence,
	diff.KindCreateFunction,
	diff.KindCreateTable,
	diff.KindCreatePartition,
	diff.KindAddColumn,
	diff.KindBackfillHint,
	diff.KindAddPrimaryKey,
	diff.KindAddIndex,
	diff.KindAlterColumn,
	diff.KindSetColumnNotNull,
	diff.KindAddForeignKey,
	diff.KindAddCheckConstraint,
	diff.KindEnableRLS,
	diff.KindCreatePolicy,
	diff.KindAlterPolicy,
	diff.KindAlterFunction,
	diff.KindCreateView,
	diff.KindAlterView,
	diff.KindCreateTrigger,
	diff.KindAlterTriggerEnabled,
	diff.KindAlterSequence,
	diff.KindAlterOwner,
	diff.KindGrantPrivileges,
	diff.KindAlterDefaultPrivileges,
}

// dropSequence is the fixed Drops-phase ordering class, reverse of
// dependency order.
var dropSequence = []diff.OpKind{
	diff.KindDropTrigger,
	diff.KindDropView,
	diff.KindDropPolicy,
	diff.KindDisableRLS,
	diff.KindDropCheckConstraint,
	diff.KindDropForeignKey,
	diff.KindDropIndex,
	diff.KindDropPrimaryKey,
	diff.KindDropColumn,
	diff.KindDropPartition,
	diff.KindDropTable,
	diff.KindDropFunction,
	diff.KindDropSequence,
	diff.KindDropDomain,
	diff.KindDropEnum,
	diff.KindDropExtension,
	diff.KindDropSchema,
	diff.KindRevokePrivileges,
}

func bucketIndex() map[diff.OpKind]int {
	idx := make(map[diff.OpKind]int, len(createSequence)+len(dropSequence))
	for i, k := range createSequence {
		idx[k] = i
	}
	base := len(createSequence)
	for i, k := range dropSequence {
		idx[k] = base + i
	}
	return idx
}

// Order arranges an unordered operation set into the sequence spec
// §4.5 describes: bucketed by fixed ordering class, CreateTable and
// DropTable sorted by foreign key dependency within their bucket, and
// finally the cascade-bracket pass that keeps every column type
// change sandwiched between the foreign keys, policies, triggers and
// views it forces to drop and recreate.
func Order(ops []diff.MigrationOp) ([]diff.MigrationOp, error) {
	idx := bucketIndex()
	ordered := make([]diff.MigrationOp, len(ops))
	copy(ordered, ops)
	sort.SliceStable(ordered, func(i, j int) bool {
		return idx[ordered[i].Kind()] < idx[ordered[j].Kind()]
	})

	ordered, err := orderCreateTables(ordered)
	if err != nil {
		return nil, err
	}
	ordered = orderDropTables(ordered)
	ordered = bracketCascades(ordered)
	return ordered, nil
}

// orderCreateTables topologically sorts the CreateTable ops in place,
// leaving every other op at its bucketed position (spec §4.5 step 2).
func orderCreateTables(ops []diff.MigrationOp) ([]diff.MigrationOp, error) {
	positions, tables := collectTables(ops, func(op diff.MigrationOp) *ir.Table {
		ct, ok := op.(diff.CreateTable)
		if !ok {
			return nil
		}
		return ct.Table
	})
	if len(tables) < 2 {
		return ops, nil
	}

	sortedTables, err := sortTablesByDependency(tables)
	if err != nil {
		var cycleErr *depgraph.CycleError
		if errors.As(err, &cycleErr) {
			// Spec §4.5: a cycle is reported as no error; the tables are
			// left in whatever order they were already in.
			return ops, nil
		}
		return nil, err
	}

	out := make([]diff.MigrationOp, len(ops))
	copy(out, ops)
	for i, t := range sortedTables {
		out[positions[i]] = diff.CreateTable{Table: t}
	}
	return out, nil
}

// orderDropTables reverse-topologically sorts the DropTable ops
// (spec §4.5 step 3): compute create-order over the dropped-table
// set, then reverse it.
func orderDropTables(ops []diff.MigrationOp) []diff.MigrationOp {
	positions, tables := collectTables(ops, func(op diff.MigrationOp) *ir.Table {
		dt, ok := op.(diff.DropTable)
		if !ok || dt.Table == nil {
			return nil
		}
		return dt.Table
	})
	if len(tables) < 2 {
		return ops
	}

	sortedTables, err := sortTablesByDependency(tables)
	if err != nil {
		return ops
	}
	reverse(sortedTables)

	out := make([]diff.MigrationOp, len(ops))
	copy(out, ops)
	for i, t := range sortedTables {
		original := ops[positions[i]].(diff.DropTable)
		out[positions[i]] = diff.DropTable{Namespace: t.Namespace, Name: t.Name, Table: original.Table}
	}
	return out
}

func collectTables(ops []diff.MigrationOp, extract func(diff.MigrationOp) *ir.Table) ([]int, []*ir.Table) {
	var positions []int
	var tables []*ir.Table
	for i, op := range ops {
		if t := extract(op); t != nil {
			positions = append(positions, i)
			tables = append(tables, t)
		}
	}
	return positions, tables
}

// sortTablesByDependency builds a table→referenced-table DAG from
// each table's in-set foreign keys (self-loops ignored) and runs
// Kahn's algorithm with lexicographic tie-breaking.
func sortTablesByDependency(tables []*ir.Table) ([]*ir.Table, error) {
	key := func(t *ir.Table) string { return ir.Qualified(t.Namespace, t.Name) }
	deps := func(t *ir.Table) []string {
		self := key(t)
		seen := map[string]bool{}
		var out []string
		for _, fk := range t.ForeignKeys {
			ref := ir.Qualified(fk.ReferencedSchema, fk.ReferencedTable)
			if ref == self || seen[ref] {
				continue
			}
			seen[ref] = true
			out = append(out, ref)
		}
		return out
	}
	return depgraph.TopologicalSort(tables, key, deps)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
