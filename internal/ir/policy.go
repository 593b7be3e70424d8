package ir

// Policy represents a CREATE POLICY (row-level security).
type Policy struct {
	Namespace  string
	Table      string
	Name       string
	Command    PolicyCommand
	Permissive bool
	// Roles may carry the literal PUBLIC; the model stores the exact
	// set parsed even though a missing Roles list implies PUBLIC by
	// database convention (spec §3).
	Roles     []string
	Using     string
	WithCheck string
}

type PolicyCommand string

const (
	PolicyCommandAll    PolicyCommand = "ALL"
	PolicyCommandSelect PolicyCommand = "SELECT"
	PolicyCommandInsert PolicyCommand = "INSERT"
	PolicyCommandUpdate PolicyCommand = "UPDATE"
	PolicyCommandDelete PolicyCommand = "DELETE"
)
