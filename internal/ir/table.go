package ir

// Table owns the full set of per-table descriptors spec §3 lists:
// columns, indexes, an optional primary key, foreign keys, checks, an
// RLS flag, policies, and an optional partition-key descriptor.
// Triggers live in Schema.Triggers (keyed "namespace.table.trigger")
// since they're also addressable standalone objects for diff/cascade
// purposes, but every trigger on a table can be found via
// Schema.TriggersForTable.
type Table struct {
	Namespace string
	Name      string

	Columns []*Column // declaration order

	Indexes     []*Index // ordered
	PrimaryKey  *PrimaryKey
	ForeignKeys []*ForeignKey // ordered
	Checks      []*CheckConstraint // ordered

	RLSEnabled bool
	Policies   []*Policy // ordered, sorted by name on finalize

	PartitionKey *PartitionKeyDescriptor // nil unless this table is PARTITION BY ...

	Owner  string
	Grants []*Grant
}

// PartitionKeyDescriptor records a partitioned table's PARTITION BY clause.
type PartitionKeyDescriptor struct {
	Strategy PartitionStrategy
	Columns  []string // column names or expressions, in key order
}

type PartitionStrategy string

const (
	PartitionStrategyRange PartitionStrategy = "RANGE"
	PartitionStrategyList  PartitionStrategy = "LIST"
	PartitionStrategyHash  PartitionStrategy = "HASH"
)

// IndexByName finds an index by name on t, or nil.
func (t *Table) IndexByName(name string) *Index {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx
		}
	}
	return nil
}

// ForeignKeyByName finds a foreign key by name on t, or nil.
func (t *Table) ForeignKeyByName(name string) *ForeignKey {
	for _, fk := range t.ForeignKeys {
		if fk.Name == name {
			return fk
		}
	}
	return nil
}

// CheckByName finds a check constraint by name on t, or nil.
func (t *Table) CheckByName(name string) *CheckConstraint {
	for _, c := range t.Checks {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PolicyByName finds a policy by name on t, or nil.
func (t *Table) PolicyByName(name string) *Policy {
	for _, p := range t.Policies {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// QualifiedName returns "namespace.name".
func (t *Table) QualifiedName() string { return Qualified(t.Namespace, t.Name) }

// TriggersForTable returns every trigger on t from the schema-level
// trigger map, in key order.
func (s *Schema) TriggersForTable(t *Table) []*Trigger {
	var out []*Trigger
	prefix := Qualified(t.Namespace, t.Name) + "."
	for _, name := range s.SortedTriggerNames() {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, s.Triggers[name])
		}
	}
	return out
}
