package ir

// View represents a CREATE VIEW or CREATE MATERIALIZED VIEW.
type View struct {
	Namespace    string
	Name         string
	Query        string
	Materialized bool
	// SecurityInvoker marks a view as WITH (security_invoker = true),
	// so it runs with the querying role's privileges rather than the
	// view owner's. Used by the version-schema overlay (spec §4.7) so
	// the overlay grants no privilege beyond what the caller already has.
	SecurityInvoker bool
	Owner           string
	Grants          []*Grant
}

// QualifiedName returns "namespace.name".
func (v *View) QualifiedName() string { return Qualified(v.Namespace, v.Name) }
