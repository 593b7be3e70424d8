// Package diff implements the spec §4.4 differ: given two ir.Schema
// values it produces an unordered set of pure migration operations
// that would transform one into the other, including the dependency
// cascades a column type change forces. Operations carry every
// parameter needed to serialize them and never reference the source
// Schema after construction; rendering them to SQL text is the
// internal/sqlgen package's job, not this one's.
package diff

import "github.com/schemadrift/schemadrift/internal/ir"

// OpKind discriminates the MigrationOp tagged union (spec §4.4.1).
type OpKind string

const (
	KindCreateSchema OpKind = "CreateSchema"
	KindDropSchema   OpKind = "DropSchema"

	KindCreateExtension OpKind = "CreateExtension"
	KindDropExtension   OpKind = "DropExtension"

	KindCreateEnum   OpKind = "CreateEnum"
	KindDropEnum     OpKind = "DropEnum"
	KindAddEnumValue OpKind = "AddEnumValue"

	KindCreateDomain OpKind = "CreateDomain"
	KindDropDomain   OpKind = "DropDomain"
	KindAlterDomain  OpKind = "AlterDomain"

	KindCreateSequence OpKind = "CreateSequence"
	KindDropSequence   OpKind = "DropSequence"
	KindAlterSequence  OpKind = "AlterSequence"

	KindCreateTable OpKind = "CreateTable"
	KindDropTable   OpKind = "DropTable"

	KindCreatePartition OpKind = "CreatePartition"
	KindDropPartition   OpKind = "DropPartition"

	KindAddColumn   OpKind = "AddColumn"
	KindDropColumn  OpKind = "DropColumn"
	KindAlterColumn OpKind = "AlterColumn"

	KindAddPrimaryKey     OpKind = "AddPrimaryKey"
	KindDropPrimaryKey    OpKind = "DropPrimaryKey"
	KindAddIndex          OpKind = "AddIndex"
	KindDropIndex         OpKind = "DropIndex"
	KindAddForeignKey     OpKind = "AddForeignKey"
	KindDropForeignKey    OpKind = "DropForeignKey"
	KindAddCheckConstraint  OpKind = "AddCheckConstraint"
	KindDropCheckConstraint OpKind = "DropCheckConstraint"

	KindEnableRLS  OpKind = "EnableRls"
	KindDisableRLS OpKind = "DisableRls"

	KindCreatePolicy OpKind = "CreatePolicy"
	KindDropPolicy   OpKind = "DropPolicy"
	KindAlterPolicy  OpKind = "AlterPolicy"

	KindCreateFunction OpKind = "CreateFunction"
	KindDropFunction   OpKind = "DropFunction"
	KindAlterFunction  OpKind = "AlterFunction"

	KindCreateView OpKind = "CreateView"
	KindDropView   OpKind = "DropView"
	KindAlterView  OpKind = "AlterView"

	KindCreateTrigger      OpKind = "CreateTrigger"
	KindDropTrigger        OpKind = "DropTrigger"
	KindAlterTriggerEnabled OpKind = "AlterTriggerEnabled"

	KindGrantPrivileges        OpKind = "GrantPrivileges"
	KindRevokePrivileges       OpKind = "RevokePrivileges"
	KindAlterDefaultPrivileges OpKind = "AlterDefaultPrivileges"

	KindAlterOwner OpKind = "AlterOwner"

	// Staging hints, produced by the phased planner (internal/expand),
	// not by the differ itself.
	KindBackfillHint    OpKind = "BackfillHint"
	KindSetColumnNotNull OpKind = "SetColumnNotNull"
)

// MigrationOp is implemented by every operation variant. Kind lets
// generic code (the planner's bucket sort, the lint engine) switch on
// variant without a type assertion; Describe is a short human-readable
// summary used in plan output and log lines.
type MigrationOp interface {
	Kind() OpKind
	Describe() string
}

// --- Schema lifecycle ---

type CreateSchema struct{ Namespace *ir.Namespace }

func (CreateSchema) Kind() OpKind        { return KindCreateSchema }
func (o CreateSchema) Describe() string { return "create schema " + o.Namespace.Name }

type DropSchema struct{ Name string }

func (DropSchema) Kind() OpKind        { return KindDropSchema }
func (o DropSchema) Describe() string { return "drop schema " + o.Name }

// --- Extensions ---

type CreateExtension struct{ Extension *ir.Extension }

func (CreateExtension) Kind() OpKind        { return KindCreateExtension }
func (o CreateExtension) Describe() string { return "create extension " + o.Extension.Name }

type DropExtension struct{ Name string }

func (DropExtension) Kind() OpKind        { return KindDropExtension }
func (o DropExtension) Describe() string { return "drop extension " + o.Name }

// --- Enums ---

type CreateEnum struct{ Enum *ir.Enum }

func (CreateEnum) Kind() OpKind { return KindCreateEnum }
func (o CreateEnum) Describe() string {
	return "create enum " + ir.Qualified(o.Enum.Namespace, o.Enum.Name)
}

type DropEnum struct{ Namespace, Name string }

func (DropEnum) Kind() OpKind        { return KindDropEnum }
func (o DropEnum) Describe() string { return "drop enum " + ir.Qualified(o.Namespace, o.Name) }

// EnumValuePosition anchors a new enum value relative to an existing one.
type EnumValuePosition string

const (
	EnumPositionNone   EnumValuePosition = "NONE"
	EnumPositionBefore EnumValuePosition = "BEFORE"
	EnumPositionAfter  EnumValuePosition = "AFTER"
)

type AddEnumValue struct {
	Namespace, Name string
	Value           string
	Position        EnumValuePosition
	Anchor          string // the existing value Position is relative to; "" when Position is None
}

func (AddEnumValue) Kind() OpKind { return KindAddEnumValue }
func (o AddEnumValue) Describe() string {
	return "alter type " + ir.Qualified(o.Namespace, o.Name) + " add value '" + o.Value + "'"
}

// --- Domains ---

type CreateDomain struct{ Domain *ir.Domain }

func (CreateDomain) Kind() OpKind { return KindCreateDomain }
func (o CreateDomain) Describe() string {
	return "create domain " + ir.Qualified(o.Domain.Namespace, o.Domain.Name)
}

type DropDomain struct{ Namespace, Name string }

func (DropDomain) Kind() OpKind { return KindDropDomain }
func (o DropDomain) Describe() string {
	return "drop domain " + ir.Qualified(o.Namespace, o.Name)
}

type AlterDomain struct {
	Namespace, Name string
	Default         **string // nil: no change; non-nil points at the new value (which may itself be nil, meaning DROP DEFAULT)
	NotNull         *bool
}

func (AlterDomain) Kind() OpKind { return KindAlterDomain }
func (o AlterDomain) Describe() string {
	return "alter domain " + ir.Qualified(o.Namespace, o.Name)
}

// --- Sequences ---

type CreateSequence struct{ Sequence *ir.Sequence }

func (CreateSequence) Kind() OpKind { return KindCreateSequence }
func (o CreateSequence) Describe() string {
	return "create sequence " + ir.Qualified(o.Sequence.Namespace, o.Sequence.Name)
}

type DropSequence struct{ Namespace, Name string }

func (DropSequence) Kind() OpKind { return KindDropSequence }
func (o DropSequence) Describe() string {
	return "drop sequence " + ir.Qualified(o.Namespace, o.Name)
}

// SequenceChanges carries only the fields that differ; zero value
// fields mean "unchanged".
type SequenceChanges struct {
	Increment *int64
	Min       *int64
	Max       *int64
	Cache     *int64
	Cycle     *bool
}

func (c SequenceChanges) IsEmpty() bool {
	return c.Increment == nil && c.Min == nil && c.Max == nil && c.Cache == nil && c.Cycle == nil
}

type AlterSequence struct {
	Namespace, Name string
	Changes         SequenceChanges
}

func (AlterSequence) Kind() OpKind { return KindAlterSequence }
func (o AlterSequence) Describe() string {
	return "alter sequence " + ir.Qualified(o.Namespace, o.Name)
}

// --- Tables ---

type CreateTable struct{ Table *ir.Table }

func (CreateTable) Kind() OpKind { return KindCreateTable }
func (o CreateTable) Describe() string {
	return "create table " + ir.Qualified(o.Table.Namespace, o.Table.Name)
}

type DropTable struct {
	Namespace, Name string
	// Table is the dropped table's full definition, carried so the
	// planner can order drops by reverse FK dependency without
	// re-consulting the source schema.
	Table *ir.Table
}

func (DropTable) Kind() OpKind { return KindDropTable }
func (o DropTable) Describe() string {
	return "drop table " + ir.Qualified(o.Namespace, o.Name)
}

// --- Partitions ---

type CreatePartition struct{ Partition *ir.PartitionDescriptor }

func (CreatePartition) Kind() OpKind { return KindCreatePartition }
func (o CreatePartition) Describe() string {
	return "create partition " + ir.Qualified(o.Partition.ChildNamespace, o.Partition.ChildTable)
}

type DropPartition struct{ Namespace, Name string }

func (DropPartition) Kind() OpKind { return KindDropPartition }
func (o DropPartition) Describe() string {
	return "drop partition " + ir.Qualified(o.Namespace, o.Name)
}

// --- Columns ---

type AddColumn struct {
	Namespace, Table string
	Column           *ir.Column
}

func (AddColumn) Kind() OpKind { return KindAddColumn }
func (o AddColumn) Describe() string {
	return "add column " + ir.Qualified(o.Namespace, o.Table) + "." + o.Column.Name
}

type DropColumn struct {
	Namespace, Table, Column string
}

func (DropColumn) Kind() OpKind { return KindDropColumn }
func (o DropColumn) Describe() string {
	return "drop column " + ir.Qualified(o.Namespace, o.Table) + "." + o.Column
}

// ColumnChanges carries only the present deltas (spec §4.4.2: "If all
// absent, emit nothing; otherwise one AlterColumn carrying the
// present deltas").
type ColumnChanges struct {
	DataType *string
	Nullable *bool
	Default  **string // non-nil: change default; inner nil means DROP DEFAULT
}

func (c ColumnChanges) IsEmpty() bool {
	return c.DataType == nil && c.Nullable == nil && c.Default == nil
}

type AlterColumn struct {
	Namespace, Table, Column string
	Changes                  ColumnChanges
}

func (AlterColumn) Kind() OpKind { return KindAlterColumn }
func (o AlterColumn) Describe() string {
	return "alter column " + ir.Qualified(o.Namespace, o.Table) + "." + o.Column
}

// --- Constraints ---

type AddPrimaryKey struct {
	Namespace, Table string
	PrimaryKey       *ir.PrimaryKey
}

func (AddPrimaryKey) Kind() OpKind { return KindAddPrimaryKey }
func (o AddPrimaryKey) Describe() string {
	return "add primary key on " + ir.Qualified(o.Namespace, o.Table)
}

type DropPrimaryKey struct {
	Namespace, Table, Name string
}

func (DropPrimaryKey) Kind() OpKind { return KindDropPrimaryKey }
func (o DropPrimaryKey) Describe() string {
	return "drop primary key " + o.Name + " on " + ir.Qualified(o.Namespace, o.Table)
}

type AddIndex struct {
	Namespace, Table string
	Index            *ir.Index
}

func (AddIndex) Kind() OpKind { return KindAddIndex }
func (o AddIndex) Describe() string { return "create index " + o.Index.Name }

type DropIndex struct {
	Namespace, Table, Name string
}

func (DropIndex) Kind() OpKind        { return KindDropIndex }
func (o DropIndex) Describe() string { return "drop index " + o.Name }

type AddForeignKey struct {
	Namespace, Table string
	ForeignKey       *ir.ForeignKey
}

func (AddForeignKey) Kind() OpKind { return KindAddForeignKey }
func (o AddForeignKey) Describe() string {
	return "add foreign key " + o.ForeignKey.Name + " on " + ir.Qualified(o.Namespace, o.Table)
}

type DropForeignKey struct {
	Namespace, Table, Name string
	// ForeignKey is the dropped constraint's full definition, carried
	// so the cascade pass can tell which columns it touched without
	// re-consulting the source schema.
	ForeignKey *ir.ForeignKey
}

func (DropForeignKey) Kind() OpKind { return KindDropForeignKey }
func (o DropForeignKey) Describe() string {
	return "drop foreign key " + o.Name + " on " + ir.Qualified(o.Namespace, o.Table)
}

type AddCheckConstraint struct {
	Namespace, Table string
	Check            *ir.CheckConstraint
}

func (AddCheckConstraint) Kind() OpKind { return KindAddCheckConstraint }
func (o AddCheckConstraint) Describe() string {
	return "add check " + o.Check.Name + " on " + ir.Qualified(o.Namespace, o.Table)
}

type DropCheckConstraint struct {
	Namespace, Table, Name string
}

func (DropCheckConstraint) Kind() OpKind { return KindDropCheckConstraint }
func (o DropCheckConstraint) Describe() string {
	return "drop check " + o.Name + " on " + ir.Qualified(o.Namespace, o.Table)
}

// --- RLS ---

type EnableRLS struct{ Namespace, Table string }

func (EnableRLS) Kind() OpKind { return KindEnableRLS }
func (o EnableRLS) Describe() string {
	return "enable row level security on " + ir.Qualified(o.Namespace, o.Table)
}

type DisableRLS struct{ Namespace, Table string }

func (DisableRLS) Kind() OpKind { return KindDisableRLS }
func (o DisableRLS) Describe() string {
	return "disable row level security on " + ir.Qualified(o.Namespace, o.Table)
}

// --- Policies ---

type CreatePolicy struct {
	Namespace, Table string
	Policy           *ir.Policy
}

func (CreatePolicy) Kind() OpKind { return KindCreatePolicy }
func (o CreatePolicy) Describe() string { return "create policy " + o.Policy.Name }

type DropPolicy struct {
	Namespace, Table, Name string
	Policy                 *ir.Policy // snapshot, for cascade matching and recreate-after
}

func (DropPolicy) Kind() OpKind        { return KindDropPolicy }
func (o DropPolicy) Describe() string { return "drop policy " + o.Name }

// PolicyChanges carries only present deltas.
type PolicyChanges struct {
	Roles     *[]string
	Using     *string
	WithCheck *string
}

func (c PolicyChanges) IsEmpty() bool {
	return c.Roles == nil && c.Using == nil && c.WithCheck == nil
}

type AlterPolicy struct {
	Namespace, Table, Name string
	Changes                PolicyChanges
}

func (AlterPolicy) Kind() OpKind        { return KindAlterPolicy }
func (o AlterPolicy) Describe() string { return "alter policy " + o.Name }

// --- Functions ---

type CreateFunction struct{ Function *ir.Function }

func (CreateFunction) Kind() OpKind { return KindCreateFunction }
func (o CreateFunction) Describe() string { return "create function " + o.Function.Signature() }

type DropFunction struct {
	Namespace, Name string
	ArgTypes        []string
}

func (DropFunction) Kind() OpKind { return KindDropFunction }
func (o DropFunction) Describe() string {
	return "drop function " + ir.FunctionKey(o.Namespace, o.Name, o.ArgTypes)
}

type AlterFunction struct{ Function *ir.Function }

func (AlterFunction) Kind() OpKind { return KindAlterFunction }
func (o AlterFunction) Describe() string {
	return "replace function " + o.Function.Signature()
}

// --- Views ---

type CreateView struct{ View *ir.View }

func (CreateView) Kind() OpKind        { return KindCreateView }
func (o CreateView) Describe() string { return "create view " + o.View.QualifiedName() }

type DropView struct {
	Namespace, Name string
	Materialized    bool
	View            *ir.View // snapshot, for cascade matching and recreate-after
}

func (DropView) Kind() OpKind        { return KindDropView }
func (o DropView) Describe() string { return "drop view " + ir.Qualified(o.Namespace, o.Name) }

type AlterView struct{ View *ir.View }

func (AlterView) Kind() OpKind        { return KindAlterView }
func (o AlterView) Describe() string { return "replace view " + o.View.QualifiedName() }

// --- Triggers ---

type CreateTrigger struct{ Trigger *ir.Trigger }

func (CreateTrigger) Kind() OpKind        { return KindCreateTrigger }
func (o CreateTrigger) Describe() string { return "create trigger " + o.Trigger.Key() }

type DropTrigger struct {
	Namespace, Table, Name string
	Trigger                *ir.Trigger // snapshot, for cascade matching and recreate-after
}

func (DropTrigger) Kind() OpKind { return KindDropTrigger }
func (o DropTrigger) Describe() string {
	return "drop trigger " + ir.TriggerKey(o.Namespace, o.Table, o.Name)
}

type AlterTriggerEnabled struct {
	Namespace, Table, Name string
	Enabled                ir.TriggerEnabled
}

func (AlterTriggerEnabled) Kind() OpKind { return KindAlterTriggerEnabled }
func (o AlterTriggerEnabled) Describe() string {
	return "alter trigger " + ir.TriggerKey(o.Namespace, o.Table, o.Name) + " " + string(o.Enabled)
}

// --- Permissions & ownership ---

type GrantPrivileges struct {
	Class            ir.ObjectClass
	Namespace, Name  string
	ArgTypes         []string // functions only
	Grant            *ir.Grant
}

func (GrantPrivileges) Kind() OpKind { return KindGrantPrivileges }
func (o GrantPrivileges) Describe() string {
	return "grant to " + o.Grant.Grantee + " on " + ir.Qualified(o.Namespace, o.Name)
}

type RevokePrivileges struct {
	Class           ir.ObjectClass
	Namespace, Name string
	ArgTypes        []string
	Grantee         string
	Privileges      []string
	GrantOptionFor  bool
}

func (RevokePrivileges) Kind() OpKind { return KindRevokePrivileges }
func (o RevokePrivileges) Describe() string {
	return "revoke from " + o.Grantee + " on " + ir.Qualified(o.Namespace, o.Name)
}

type AlterDefaultPrivileges struct {
	DefaultPrivilege *ir.DefaultPrivilege
	Revoke           bool // true: this op removes the default privilege entry instead of adding it
}

func (AlterDefaultPrivileges) Kind() OpKind { return KindAlterDefaultPrivileges }
func (o AlterDefaultPrivileges) Describe() string {
	return "alter default privileges for " + o.DefaultPrivilege.Role
}

type AlterOwner struct {
	Class           ir.ObjectClass
	Namespace, Name string
	ArgTypes        []string
	NewOwner        string
}

func (AlterOwner) Kind() OpKind        { return KindAlterOwner }
func (o AlterOwner) Describe() string { return "alter owner of " + ir.Qualified(o.Namespace, o.Name) }

// --- Staging hints (produced by the phased planner, not the differ) ---

type BackfillHint struct {
	Namespace, Table, Column string
	Reason                   string
}

func (BackfillHint) Kind() OpKind        { return KindBackfillHint }
func (o BackfillHint) Describe() string { return "backfill hint for " + o.Column + ": " + o.Reason }

type SetColumnNotNull struct {
	Namespace, Table, Column string
}

func (SetColumnNotNull) Kind() OpKind { return KindSetColumnNotNull }
func (o SetColumnNotNull) Describe() string {
	return "set not null " + ir.Qualified(o.Namespace, o.Table) + "." + o.Column
}
