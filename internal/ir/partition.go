package ir

// PartitionDescriptor represents one `CREATE TABLE ... PARTITION OF
// parent` declaration: a child table attached to a parent with a
// bound. Spec §3 invariant: the parent must reference a table whose
// PartitionKey is present and whose strategy matches the bound kind.
type PartitionDescriptor struct {
	ChildNamespace  string
	ChildTable      string
	ParentNamespace string
	ParentTable     string
	Bound           PartitionBound

	// A partition may carry its own indexes/checks in addition to
	// those inherited from the parent.
	Indexes []*Index
	Checks  []*CheckConstraint
}

// BoundKind discriminates the PartitionBound sum type.
type BoundKind string

const (
	BoundKindRange   BoundKind = "RANGE"
	BoundKindList    BoundKind = "LIST"
	BoundKindHash    BoundKind = "HASH"
	BoundKindDefault BoundKind = "DEFAULT"
)

// PartitionBound is Range{From,To} | List{Values} | Hash{Modulus,Remainder} | Default.
type PartitionBound struct {
	Kind BoundKind

	// Range
	From []string
	To   []string

	// List
	Values []string

	// Hash
	Modulus   int
	Remainder int
}

// Key returns the canonical lookup key for the descriptor.
func (p *PartitionDescriptor) Key() string { return Qualified(p.ChildNamespace, p.ChildTable) }
