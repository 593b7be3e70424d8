package diff

import (
	"github.com/schemadrift/schemadrift/internal/ir"
)

func diffTables(from, to *ir.Schema, opts Options) []MigrationOp {
	var ops []MigrationOp
	setDiff(from.Tables, to.Tables,
		func(_ string, t *ir.Table) { ops = append(ops, CreateTable{Table: t}) },
		func(_ string, oldTable, newTable *ir.Table) {
			ops = append(ops, diffTable(oldTable, newTable, opts)...)
		},
		func(_ string, t *ir.Table) { ops = append(ops, DropTable{Namespace: t.Namespace, Name: t.Name, Table: t}) },
	)
	return ops
}

// diffTable produces every op needed to move a single table, present
// in both schemas, from its `from` shape to its `to` shape.
func diffTable(from, to *ir.Table, opts Options) []MigrationOp {
	var ops []MigrationOp
	ns, tbl := to.Namespace, to.Name

	ops = append(ops, diffColumns(ns, tbl, from.Columns, to.Columns)...)
	ops = append(ops, diffPrimaryKey(ns, tbl, from.PrimaryKey, to.PrimaryKey)...)
	ops = append(ops, diffIndexes(ns, tbl, from.Indexes, to.Indexes)...)
	ops = append(ops, diffForeignKeys(ns, tbl, from.ForeignKeys, to.ForeignKeys)...)
	ops = append(ops, diffChecks(ns, tbl, from.Checks, to.Checks)...)
	ops = append(ops, diffRLS(ns, tbl, from.RLSEnabled, to.RLSEnabled)...)
	ops = append(ops, diffPolicies(ns, tbl, from.Policies, to.Policies)...)
	ops = append(ops, diffOwnerAndGrants(opts, ir.ObjectClassTable, ns, tbl, nil, from.Owner, to.Owner, from.Grants, to.Grants)...)

	return ops
}

func diffColumns(ns, tbl string, from, to []*ir.Column) []MigrationOp {
	var ops []MigrationOp
	fromByName := columnsByName(from)
	toByName := columnsByName(to)

	for _, c := range to {
		old, ok := fromByName[c.Name]
		if !ok {
			ops = append(ops, AddColumn{Namespace: ns, Table: tbl, Column: c})
			continue
		}
		changes := columnChanges(old, c)
		if !changes.IsEmpty() {
			ops = append(ops, AlterColumn{Namespace: ns, Table: tbl, Column: c.Name, Changes: changes})
		}
	}
	for _, c := range from {
		if _, ok := toByName[c.Name]; !ok {
			ops = append(ops, DropColumn{Namespace: ns, Table: tbl, Column: c.Name})
		}
	}
	return ops
}

func columnsByName(cols []*ir.Column) map[string]*ir.Column {
	m := make(map[string]*ir.Column, len(cols))
	for _, c := range cols {
		m[c.Name] = c
	}
	return m
}

// columnChanges computes the (data_type?, nullable?, default?) delta
// vector spec §4.4.2 describes.
func columnChanges(from, to *ir.Column) ColumnChanges {
	var c ColumnChanges
	if !ir.DataTypesEqual(from.DataType, to.DataType) {
		dt := to.DataType
		c.DataType = &dt
	}
	if from.Nullable != to.Nullable {
		n := to.Nullable
		c.Nullable = &n
	}
	if !defaultsEqual(from.Default, to.Default) {
		d := to.Default
		c.Default = &d
	}
	return c
}

func diffPrimaryKey(ns, tbl string, from, to *ir.PrimaryKey) []MigrationOp {
	switch {
	case from == nil && to != nil:
		return []MigrationOp{AddPrimaryKey{Namespace: ns, Table: tbl, PrimaryKey: to}}
	case from != nil && to == nil:
		return []MigrationOp{DropPrimaryKey{Namespace: ns, Table: tbl, Name: from.Name}}
	case from != nil && to != nil && !primaryKeysEqual(from, to):
		return []MigrationOp{
			DropPrimaryKey{Namespace: ns, Table: tbl, Name: from.Name},
			AddPrimaryKey{Namespace: ns, Table: tbl, PrimaryKey: to},
		}
	}
	return nil
}

func primaryKeysEqual(a, b *ir.PrimaryKey) bool {
	if a.Name != b.Name || len(a.Columns) != len(b.Columns) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i] != b.Columns[i] {
			return false
		}
	}
	return true
}

func diffIndexes(ns, tbl string, from, to []*ir.Index) []MigrationOp {
	var ops []MigrationOp
	fromByName := indexesByName(from)
	toByName := indexesByName(to)

	for _, idx := range to {
		old, ok := fromByName[idx.Name]
		if !ok {
			ops = append(ops, AddIndex{Namespace: ns, Table: tbl, Index: idx})
			continue
		}
		if !old.SemanticallyEquals(idx) {
			ops = append(ops, DropIndex{Namespace: ns, Table: tbl, Name: old.Name})
			ops = append(ops, AddIndex{Namespace: ns, Table: tbl, Index: idx})
		}
	}
	for _, idx := range from {
		if _, ok := toByName[idx.Name]; !ok {
			ops = append(ops, DropIndex{Namespace: ns, Table: tbl, Name: idx.Name})
		}
	}
	return ops
}

func indexesByName(idxs []*ir.Index) map[string]*ir.Index {
	m := make(map[string]*ir.Index, len(idxs))
	for _, i := range idxs {
		m[i.Name] = i
	}
	return m
}

func diffForeignKeys(ns, tbl string, from, to []*ir.ForeignKey) []MigrationOp {
	var ops []MigrationOp
	fromByName := foreignKeysByName(from)
	toByName := foreignKeysByName(to)

	for _, fk := range to {
		old, ok := fromByName[fk.Name]
		if !ok {
			ops = append(ops, AddForeignKey{Namespace: ns, Table: tbl, ForeignKey: fk})
			continue
		}
		if !foreignKeysEqual(old, fk) {
			ops = append(ops, DropForeignKey{Namespace: ns, Table: tbl, Name: old.Name, ForeignKey: old})
			ops = append(ops, AddForeignKey{Namespace: ns, Table: tbl, ForeignKey: fk})
		}
	}
	for _, fk := range from {
		if _, ok := toByName[fk.Name]; !ok {
			ops = append(ops, DropForeignKey{Namespace: ns, Table: tbl, Name: fk.Name, ForeignKey: fk})
		}
	}
	return ops
}

func foreignKeysByName(fks []*ir.ForeignKey) map[string]*ir.ForeignKey {
	m := make(map[string]*ir.ForeignKey, len(fks))
	for _, fk := range fks {
		m[fk.Name] = fk
	}
	return m
}

func foreignKeysEqual(a, b *ir.ForeignKey) bool {
	return stringSliceEqual(a.Columns, b.Columns) &&
		a.ReferencedSchema == b.ReferencedSchema &&
		a.ReferencedTable == b.ReferencedTable &&
		stringSliceEqual(a.ReferencedColumns, b.ReferencedColumns) &&
		a.OnDelete == b.OnDelete && a.OnUpdate == b.OnUpdate &&
		a.Deferrable == b.Deferrable && a.InitiallyDeferred == b.InitiallyDeferred
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func diffChecks(ns, tbl string, from, to []*ir.CheckConstraint) []MigrationOp {
	var ops []MigrationOp
	fromByName := checksByName(from)
	toByName := checksByName(to)

	for _, check := range to {
		old, ok := fromByName[check.Name]
		if !ok {
			ops = append(ops, AddCheckConstraint{Namespace: ns, Table: tbl, Check: check})
			continue
		}
		if !old.SemanticallyEquals(check) {
			ops = append(ops, DropCheckConstraint{Namespace: ns, Table: tbl, Name: old.Name})
			ops = append(ops, AddCheckConstraint{Namespace: ns, Table: tbl, Check: check})
		}
	}
	for _, check := range from {
		if _, ok := toByName[check.Name]; !ok {
			ops = append(ops, DropCheckConstraint{Namespace: ns, Table: tbl, Name: check.Name})
		}
	}
	return ops
}

func checksByName(checks []*ir.CheckConstraint) map[string]*ir.CheckConstraint {
	m := make(map[string]*ir.CheckConstraint, len(checks))
	for _, c := range checks {
		m[c.Name] = c
	}
	return m
}

func diffRLS(ns, tbl string, from, to bool) []MigrationOp {
	if from == to {
		return nil
	}
	if to {
		return []MigrationOp{EnableRLS{Namespace: ns, Table: tbl}}
	}
	return []MigrationOp{DisableRLS{Namespace: ns, Table: tbl}}
}

func diffPolicies(ns, tbl string, from, to []*ir.Policy) []MigrationOp {
	var ops []MigrationOp
	fromByName := policiesByName(from)
	toByName := policiesByName(to)

	for _, p := range to {
		old, ok := fromByName[p.Name]
		if !ok {
			ops = append(ops, CreatePolicy{Namespace: ns, Table: tbl, Policy: p})
			continue
		}
		if old.Command != p.Command {
			ops = append(ops, DropPolicy{Namespace: ns, Table: tbl, Name: old.Name, Policy: old})
			ops = append(ops, CreatePolicy{Namespace: ns, Table: tbl, Policy: p})
			continue
		}
		if changes, ok := policyChanges(old, p); ok {
			ops = append(ops, AlterPolicy{Namespace: ns, Table: tbl, Name: p.Name, Changes: changes})
		}
	}
	for _, p := range from {
		if _, ok := toByName[p.Name]; !ok {
			ops = append(ops, DropPolicy{Namespace: ns, Table: tbl, Name: p.Name, Policy: p})
		}
	}
	return ops
}

func policiesByName(policies []*ir.Policy) map[string]*ir.Policy {
	m := make(map[string]*ir.Policy, len(policies))
	for _, p := range policies {
		m[p.Name] = p
	}
	return m
}

func policyChanges(from, to *ir.Policy) (PolicyChanges, bool) {
	var c PolicyChanges
	changed := false

	if !stringSetEqualUnordered(ir.NormalizeRoles(from.Roles), ir.NormalizeRoles(to.Roles)) {
		roles := to.Roles
		c.Roles = &roles
		changed = true
	}
	if ir.NormalizePolicyExpression(from.Using) != ir.NormalizePolicyExpression(to.Using) {
		using := to.Using
		c.Using = &using
		changed = true
	}
	if ir.NormalizePolicyExpression(from.WithCheck) != ir.NormalizePolicyExpression(to.WithCheck) {
		check := to.WithCheck
		c.WithCheck = &check
		changed = true
	}
	return c, changed
}

func stringSetEqualUnordered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
