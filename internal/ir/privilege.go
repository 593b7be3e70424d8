package ir

// Grant represents one grantee's accumulated privileges on a single
// object. Spec §4.2 finalize step 3: grants merge by grantee (same
// grantee => union of privileges).
type Grant struct {
	Grantee         string // role name, or the literal "PUBLIC"
	Privileges      []string
	WithGrantOption bool
}

// HasPrivilege reports whether g already carries priv.
func (g *Grant) HasPrivilege(priv string) bool {
	for _, p := range g.Privileges {
		if p == priv {
			return true
		}
	}
	return false
}

// AddPrivileges merges new privileges into g (idempotent on duplicates).
func (g *Grant) AddPrivileges(privs ...string) {
	for _, p := range privs {
		if !g.HasPrivilege(p) {
			g.Privileges = append(g.Privileges, p)
		}
	}
}

// RemovePrivileges subtracts privileges from g, returning true if g
// became empty (caller should drop it from the grant list in that case).
func (g *Grant) RemovePrivileges(privs ...string) (empty bool) {
	remove := make(map[string]bool, len(privs))
	for _, p := range privs {
		remove[p] = true
	}
	kept := g.Privileges[:0:0]
	for _, p := range g.Privileges {
		if !remove[p] {
			kept = append(kept, p)
		}
	}
	g.Privileges = kept
	return len(g.Privileges) == 0
}

// ObjectClass enumerates the grant/ownership target classes spec
// §4.3.5 and §4.4.1's AlterOwner variant need to distinguish.
type ObjectClass string

const (
	ObjectClassTable    ObjectClass = "TABLE"
	ObjectClassSequence ObjectClass = "SEQUENCE"
	ObjectClassFunction ObjectClass = "FUNCTION"
	ObjectClassSchema   ObjectClass = "SCHEMA"
	ObjectClassType     ObjectClass = "TYPE" // covers enums and domains
	ObjectClassView     ObjectClass = "VIEW"
)

// AllPrivileges expands the ALL shorthand per object class (spec §4.3.5).
func AllPrivileges(class ObjectClass) []string {
	switch class {
	case ObjectClassTable, ObjectClassView:
		return []string{"select", "insert", "update", "delete", "truncate", "references", "trigger"}
	case ObjectClassSequence:
		return []string{"usage", "select", "update"}
	case ObjectClassFunction:
		return []string{"execute"}
	case ObjectClassType:
		return []string{"usage"}
	case ObjectClassSchema:
		return []string{"usage", "create"}
	default:
		return nil
	}
}

// DefaultPrivilege represents one ALTER DEFAULT PRIVILEGES entry: a
// grant applied automatically to objects of ObjectClass created in
// the future by Role within (optionally) SchemaScope.
type DefaultPrivilege struct {
	Role            string
	SchemaScope     string // "" means not scoped to a schema
	ObjectClass     ObjectClass
	Grantee         string
	Privileges      []string
	WithGrantOption bool
}
