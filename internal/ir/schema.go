// Package ir implements the declarative schema model described in
// spec §3: a normalized, value-semantic representation of a database
// schema produced either by parsing DDL source or by introspecting a
// live database, such that two Schema values captured from different
// sources compare equal when they describe the same database state.
package ir

import "github.com/schemadrift/schemadrift/internal/utils"

// Schema is the top-level container: a mapping from qualified names to
// typed object descriptors. Every map is keyed so that
// utils.SortedKeys produces a deterministic iteration order, which is
// what makes serialization (and therefore fingerprinting) stable.
type Schema struct {
	Metadata Metadata

	Namespaces map[string]*Namespace // namespace name -> Namespace (a "schema" in Postgres terms)
	Extensions map[string]*Extension
	Enums      map[string]*Enum
	Domains    map[string]*Domain
	Sequences  map[string]*Sequence
	Tables     map[string]*Table // "namespace.table" -> Table
	Partitions map[string]*PartitionDescriptor
	Functions  map[string]*Function // "namespace.name(argtypes)" -> Function
	Views      map[string]*View
	Triggers   map[string]*Trigger // "namespace.table.trigger" -> Trigger

	DefaultPrivileges []*DefaultPrivilege

	// Lifecycle: late-binding artifacts queued until Finalize resolves
	// their target objects (spec §3 "Lifecycles").
	PendingPolicies []*PendingPolicy
	PendingOwners   []*PendingOwner
	PendingGrants   []*PendingGrant
	PendingRevokes  []*PendingRevoke

	// Unsupported records constructs the parser or introspector had to
	// approximate or skip entirely (an EXCLUDE constraint, a DO $$...$$
	// block, a statement kind outside the model). Excluded from the
	// fingerprint: it's a diagnostic trail, not part of the schema's
	// logical content.
	Unsupported []string `json:"-"`
}

// Metadata carries provenance information about how a Schema was produced.
type Metadata struct {
	DatabaseVersion string
	Source          string // "parser" or "introspect"
}

// Namespace is a database-internal container for names. Called
// "schema" in Postgres's own terminology; the GLOSSARY flags the
// collision with Schema, the model type, hence the rename here.
type Namespace struct {
	Name  string
	Owner string
	Grants []*Grant
}

// New returns an empty Schema with all maps initialized.
func New() *Schema {
	return &Schema{
		Namespaces: make(map[string]*Namespace),
		Extensions: make(map[string]*Extension),
		Enums:      make(map[string]*Enum),
		Domains:    make(map[string]*Domain),
		Sequences:  make(map[string]*Sequence),
		Tables:     make(map[string]*Table),
		Partitions: make(map[string]*PartitionDescriptor),
		Functions:  make(map[string]*Function),
		Views:      make(map[string]*View),
		Triggers:   make(map[string]*Trigger),
	}
}

// GetOrCreateNamespace returns the named namespace, creating (and
// defaulting its owner to "") it if absent.
func (s *Schema) GetOrCreateNamespace(name string) *Namespace {
	if name == "" {
		name = "public"
	}
	if ns, ok := s.Namespaces[name]; ok {
		return ns
	}
	ns := &Namespace{Name: name}
	s.Namespaces[name] = ns
	return ns
}

// SortedNamespaceNames returns namespace names in key order.
func (s *Schema) SortedNamespaceNames() []string { return utils.SortedKeys(s.Namespaces) }

// SortedTableNames returns "namespace.table" keys in key order.
func (s *Schema) SortedTableNames() []string { return utils.SortedKeys(s.Tables) }

// SortedEnumNames returns enum keys in key order.
func (s *Schema) SortedEnumNames() []string { return utils.SortedKeys(s.Enums) }

// SortedDomainNames returns domain keys in key order.
func (s *Schema) SortedDomainNames() []string { return utils.SortedKeys(s.Domains) }

// SortedSequenceNames returns sequence keys in key order.
func (s *Schema) SortedSequenceNames() []string { return utils.SortedKeys(s.Sequences) }

// SortedFunctionNames returns function keys in key order.
func (s *Schema) SortedFunctionNames() []string { return utils.SortedKeys(s.Functions) }

// SortedViewNames returns view keys in key order.
func (s *Schema) SortedViewNames() []string { return utils.SortedKeys(s.Views) }

// SortedTriggerNames returns trigger keys in key order.
func (s *Schema) SortedTriggerNames() []string { return utils.SortedKeys(s.Triggers) }

// SortedExtensionNames returns extension keys in key order, with the
// implicit plpgsql language-runtime extension filtered out on both
// input sides per spec §3/§4.3.
func (s *Schema) SortedExtensionNames() []string {
	names := utils.SortedKeys(s.Extensions)
	out := names[:0:0]
	for _, n := range names {
		if n == ImplicitExtension {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ImplicitExtension is the language-runtime extension that is always
// present and must never surface as a diffable object.
const ImplicitExtension = "plpgsql"
