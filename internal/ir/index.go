package ir

// Index represents a CREATE INDEX.
type Index struct {
	Namespace string
	Table     string
	Name      string
	Unique    bool
	Method    string // btree, hash, gin, gist, ...
	Columns   []IndexColumn
	Predicate string // partial index WHERE clause, normalized
}

// IndexColumn is one column (or expression) participating in an index.
type IndexColumn struct {
	Expression string // column name, or an expression for a functional index
	Direction  string // ASC, DESC ("" means default ASC)
	Operator   string // operator class, if any
}
