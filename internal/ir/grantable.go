package ir

// grantable is implemented by every object class that can carry an
// owner and a grant list, letting finalize() operate on pending
// owner/grant/revoke entries without a type switch at every call site.
type grantable interface {
	GetGrants() []*Grant
	SetGrants([]*Grant)
	GetOwner() string
	SetOwner(string)
}

func (t *Table) GetGrants() []*Grant     { return t.Grants }
func (t *Table) SetGrants(g []*Grant)    { t.Grants = g }
func (t *Table) GetOwner() string        { return t.Owner }
func (t *Table) SetOwner(owner string)   { t.Owner = owner }

func (v *View) GetGrants() []*Grant   { return v.Grants }
func (v *View) SetGrants(g []*Grant)  { v.Grants = g }
func (v *View) GetOwner() string      { return v.Owner }
func (v *View) SetOwner(owner string) { v.Owner = owner }

func (s *Sequence) GetGrants() []*Grant   { return s.Grants }
func (s *Sequence) SetGrants(g []*Grant)  { s.Grants = g }
func (s *Sequence) GetOwner() string      { return s.Owner }
func (s *Sequence) SetOwner(owner string) { s.Owner = owner }

func (e *Enum) GetGrants() []*Grant   { return e.Grants }
func (e *Enum) SetGrants(g []*Grant)  { e.Grants = g }
func (e *Enum) GetOwner() string      { return e.Owner }
func (e *Enum) SetOwner(owner string) { e.Owner = owner }

func (d *Domain) GetGrants() []*Grant   { return d.Grants }
func (d *Domain) SetGrants(g []*Grant)  { d.Grants = g }
func (d *Domain) GetOwner() string      { return d.Owner }
func (d *Domain) SetOwner(owner string) { d.Owner = owner }

func (f *Function) GetGrants() []*Grant   { return f.Grants }
func (f *Function) SetGrants(g []*Grant)  { f.Grants = g }
func (f *Function) GetOwner() string      { return f.Owner }
func (f *Function) SetOwner(owner string) { f.Owner = owner }

func (n *Namespace) GetGrants() []*Grant   { return n.Grants }
func (n *Namespace) SetGrants(g []*Grant)  { n.Grants = g }
func (n *Namespace) GetOwner() string      { return n.Owner }
func (n *Namespace) SetOwner(owner string) { n.Owner = owner }

// lookupGrantable resolves a (class, key) pair to its grantable object.
func (s *Schema) lookupGrantable(class ObjectClass, key string) grantable {
	switch class {
	case ObjectClassTable, ObjectClassView:
		if t, ok := s.Tables[key]; ok {
			return t
		}
		if v, ok := s.Views[key]; ok {
			return v
		}
	case ObjectClassSequence:
		if sq, ok := s.Sequences[key]; ok {
			return sq
		}
	case ObjectClassFunction:
		if f, ok := s.Functions[key]; ok {
			return f
		}
	case ObjectClassType:
		if e, ok := s.Enums[key]; ok {
			return e
		}
		if d, ok := s.Domains[key]; ok {
			return d
		}
	case ObjectClassSchema:
		if n, ok := s.Namespaces[key]; ok {
			return n
		}
	}
	return nil
}
