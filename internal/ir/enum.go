package ir

// Enum represents a CREATE TYPE ... AS ENUM. Value order is
// semantically significant: additions take a Before/After anchor
// rather than being treated as an unordered set (spec §3 invariants,
// §4.4.2 enum diff rule).
type Enum struct {
	Namespace string
	Name      string
	Values    []string // ordered
	Owner     string
	Grants    []*Grant
}

// ValueIndex returns the position of value in e.Values, or -1.
func (e *Enum) ValueIndex(value string) int {
	for i, v := range e.Values {
		if v == value {
			return i
		}
	}
	return -1
}
