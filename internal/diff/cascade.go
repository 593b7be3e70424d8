package diff

import (
	"github.com/schemadrift/schemadrift/internal/depgraph"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// columnKey identifies one (table, column) pair.
type columnKey struct{ namespace, table, column string }

// applyCascades implements spec §4.4.3: the database forbids altering
// a column's type while foreign keys reference it, policies use it,
// triggers fire on its table, or views select it, so every AlterColumn
// with a data_type change is bracketed by the drop/recreate of every
// dependent object. Ops already present in the list (the non-cascade
// path may have scheduled the same drop already) are not duplicated.
func applyCascades(from, to *ir.Schema, ops []MigrationOp) []MigrationOp {
	typeChanges := collectTypeChangeColumns(ops)
	if len(typeChanges) == 0 {
		return ops
	}

	seen := existingDropSignatures(ops)
	add := func(op MigrationOp, sig string) {
		if seen[sig] {
			return
		}
		seen[sig] = true
		ops = append(ops, op)
	}

	// Step 2: foreign keys whose columns or referenced columns
	// intersect a type-changed column.
	for _, t := range from.Tables {
		for _, fk := range t.ForeignKeys {
			if !fkTouchesChange(t, fk, typeChanges) {
				continue
			}
			sig := "dropfk:" + ir.Qualified(t.Namespace, t.Name) + "." + fk.Name
			add(DropForeignKey{Namespace: t.Namespace, Table: t.Name, Name: fk.Name, ForeignKey: fk}, sig)
			restore := restoreForeignKey(to, t.Namespace, t.Name, fk)
			add(AddForeignKey{Namespace: t.Namespace, Table: t.Name, ForeignKey: restore}, "addfk:"+ir.Qualified(t.Namespace, t.Name)+"."+restore.Name)
		}
	}

	// Step 3: every policy and trigger on a table with a type change
	// is conservatively dropped and recreated around the AlterColumn.
	affectedTables := tablesWithChanges(typeChanges)
	for key := range affectedTables {
		table := tableOrFallback(from, to, key.namespace, key.table)
		if table == nil {
			continue
		}
		for _, p := range table.Policies {
			sig := "droppolicy:" + ir.Qualified(key.namespace, key.table) + "." + p.Name
			add(DropPolicy{Namespace: key.namespace, Table: key.table, Name: p.Name, Policy: p}, sig)
			add(CreatePolicy{Namespace: key.namespace, Table: key.table, Policy: p}, "createpolicy:"+ir.Qualified(key.namespace, key.table)+"."+p.Name)
		}
		schema := to
		if _, ok := schema.Tables[ir.Qualified(key.namespace, key.table)]; !ok {
			schema = from
		}
		for _, trig := range schema.TriggersForTable(table) {
			sig := "droptrigger:" + trig.Key()
			add(DropTrigger{Namespace: trig.Namespace, Table: trig.Table, Name: trig.Name, Trigger: trig}, sig)
			add(CreateTrigger{Trigger: trig}, "createtrigger:"+trig.Key())
		}
	}

	// Step 4: views whose query references an affected table.
	for _, v := range from.Views {
		refs := depgraph.Extract(v.Query, v.Namespace)
		if !referencesAny(refs, affectedTables) {
			continue
		}
		sig := "dropview:" + ir.Qualified(v.Namespace, v.Name)
		add(DropView{Namespace: v.Namespace, Name: v.Name, Materialized: v.Materialized, View: v}, sig)
		restored := v
		if toView, ok := to.Views[ir.Qualified(v.Namespace, v.Name)]; ok {
			restored = toView
		}
		add(CreateView{View: restored}, "createview:"+ir.Qualified(restored.Namespace, restored.Name))
	}

	// Step 5: policies referencing a function currently being dropped.
	droppedFunctions := droppedFunctionNames(ops)
	if len(droppedFunctions) > 0 {
		for _, t := range from.Tables {
			for _, p := range t.Policies {
				if !policyReferencesAny(p, t.Namespace, droppedFunctions) {
					continue
				}
				sig := "droppolicy:" + ir.Qualified(t.Namespace, t.Name) + "." + p.Name
				add(DropPolicy{Namespace: t.Namespace, Table: t.Name, Name: p.Name, Policy: p}, sig)
				add(CreatePolicy{Namespace: t.Namespace, Table: t.Name, Policy: p}, "createpolicy:"+ir.Qualified(t.Namespace, t.Name)+"."+p.Name)
			}
		}
	}

	return ops
}

func collectTypeChangeColumns(ops []MigrationOp) map[columnKey]bool {
	out := map[columnKey]bool{}
	for _, op := range ops {
		if ac, ok := op.(AlterColumn); ok && ac.Changes.DataType != nil {
			out[columnKey{ac.Namespace, ac.Table, ac.Column}] = true
		}
	}
	return out
}

func tablesWithChanges(typeChanges map[columnKey]bool) map[columnKey]bool {
	tables := map[columnKey]bool{}
	for ck := range typeChanges {
		tables[columnKey{ck.namespace, ck.table, ""}] = true
	}
	return tables
}

func tableOrFallback(from, to *ir.Schema, namespace, name string) *ir.Table {
	if t, ok := to.Tables[ir.Qualified(namespace, name)]; ok {
		return t
	}
	if t, ok := from.Tables[ir.Qualified(namespace, name)]; ok {
		return t
	}
	return nil
}

func fkTouchesChange(t *ir.Table, fk *ir.ForeignKey, typeChanges map[columnKey]bool) bool {
	for _, c := range fk.Columns {
		if typeChanges[columnKey{t.Namespace, t.Name, c}] {
			return true
		}
	}
	for _, c := range fk.ReferencedColumns {
		if typeChanges[columnKey{fk.ReferencedSchema, fk.ReferencedTable, c}] {
			return true
		}
	}
	return false
}

// restoreForeignKey returns the to-side version of fk if the
// referencing table still has a foreign key by that name in to,
// otherwise the from-side version unchanged (spec §4.4.3 step 2).
func restoreForeignKey(to *ir.Schema, namespace, table string, fromFK *ir.ForeignKey) *ir.ForeignKey {
	if t, ok := to.Tables[ir.Qualified(namespace, table)]; ok {
		if toFK := t.ForeignKeyByName(fromFK.Name); toFK != nil {
			return toFK
		}
	}
	return fromFK
}

func referencesAny(refs *depgraph.References, tables map[columnKey]bool) bool {
	for rel := range refs.Relations {
		ns, name := ir.SplitQualified(rel)
		if tables[columnKey{ns, name, ""}] {
			return true
		}
	}
	return false
}

func droppedFunctionNames(ops []MigrationOp) map[string]bool {
	out := map[string]bool{}
	for _, op := range ops {
		if df, ok := op.(DropFunction); ok {
			out[ir.Qualified(df.Namespace, df.Name)] = true
		}
	}
	return out
}

func policyReferencesAny(p *ir.Policy, namespace string, functions map[string]bool) bool {
	for _, expr := range []string{p.Using, p.WithCheck} {
		if expr == "" {
			continue
		}
		refs := depgraph.Extract(expr, namespace)
		for fn := range refs.Functions {
			if functions[fn] {
				return true
			}
		}
	}
	return false
}

func existingDropSignatures(ops []MigrationOp) map[string]bool {
	seen := map[string]bool{}
	for _, op := range ops {
		switch o := op.(type) {
		case DropForeignKey:
			seen["dropfk:"+ir.Qualified(o.Namespace, o.Table)+"."+o.Name] = true
		case DropPolicy:
			seen["droppolicy:"+ir.Qualified(o.Namespace, o.Table)+"."+o.Name] = true
		case DropTrigger:
			seen["droptrigger:"+ir.TriggerKey(o.Namespace, o.Table, o.Name)] = true
		case DropView:
			seen["dropview:"+ir.Qualified(o.Namespace, o.Name)] = true
		case AddForeignKey:
			seen["addfk:"+ir.Qualified(o.Namespace, o.Table)+"."+o.ForeignKey.Name] = true
		case CreatePolicy:
			seen["createpolicy:"+ir.Qualified(o.Namespace, o.Table)+"."+o.Policy.Name] = true
		case CreateTrigger:
			seen["createtrigger:"+o.Trigger.Key()] = true
		case CreateView:
			seen["createview:"+ir.Qualified(o.View.Namespace, o.View.Name)] = true
		}
	}
	return seen
}
