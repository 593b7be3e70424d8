package diff

import (
	"github.com/schemadrift/schemadrift/internal/ir"
	"github.com/schemadrift/schemadrift/internal/utils"
)

// Diff computes the unordered set of migration operations that would
// transform from into to (spec §4.4). The result is not safe to
// execute as-is: internal/plan orders it and internal/expand may
// rewrite some AddColumn ops into staged hints.
func Diff(from, to *ir.Schema, opts Options) ([]MigrationOp, error) {
	var ops []MigrationOp

	ops = append(ops, diffSchemas(from, to, opts)...)
	ops = append(ops, diffExtensions(from, to)...)
	ops = append(ops, diffEnums(from, to, opts)...)
	ops = append(ops, diffDomains(from, to, opts)...)
	ops = append(ops, diffSequences(from, to, opts)...)
	ops = append(ops, diffTables(from, to, opts)...)
	ops = append(ops, diffPartitions(from, to)...)
	ops = append(ops, diffFunctions(from, to, opts)...)
	ops = append(ops, diffViews(from, to, opts)...)
	ops = append(ops, diffTriggers(from, to)...)

	ops = applyCascades(from, to, ops)

	if opts.ManageGrants {
		ops = append(ops, diffDefaultPrivileges(from, to)...)
	}

	return ops, nil
}

// setDiff applies the generic template from spec §4.4.2: for every key
// in `to` absent from `from`, call onCreate; for every key present in
// both, call onBoth (which itself decides whether anything changed);
// for every key in `from` absent from `to`, call onDrop.
func setDiff[T any](from, to map[string]T, onCreate func(string, T), onBoth func(string, T, T), onDrop func(string, T)) {
	for _, key := range utils.SortedKeys(to) {
		newVal := to[key]
		if oldVal, ok := from[key]; ok {
			onBoth(key, oldVal, newVal)
		} else {
			onCreate(key, newVal)
		}
	}
	for _, key := range utils.SortedKeys(from) {
		if _, ok := to[key]; !ok {
			onDrop(key, from[key])
		}
	}
}
