// Package ir re-exports the schema model (internal/ir) for external
// consumers of this module, mirroring the way the teacher repo exposes
// its own top-level ir package as the stable public surface over an
// internal implementation.
package ir

import "github.com/schemadrift/schemadrift/internal/ir"

type (
	Schema          = ir.Schema
	Metadata        = ir.Metadata
	Namespace       = ir.Namespace
	Extension       = ir.Extension
	Enum            = ir.Enum
	Domain          = ir.Domain
	NamedCheck      = ir.NamedCheck
	Sequence        = ir.Sequence
	Table           = ir.Table
	Column          = ir.Column
	Index           = ir.Index
	IndexColumn     = ir.IndexColumn
	PrimaryKey      = ir.PrimaryKey
	ForeignKey      = ir.ForeignKey
	CheckConstraint = ir.CheckConstraint

	PartitionDescriptor    = ir.PartitionDescriptor
	PartitionKeyDescriptor = ir.PartitionKeyDescriptor
	PartitionBound         = ir.PartitionBound
	PartitionStrategy      = ir.PartitionStrategy

	Function    = ir.Function
	Argument    = ir.Argument
	ArgMode     = ir.ArgMode
	ConfigParam = ir.ConfigParam
	Volatility  = ir.Volatility
	Security    = ir.Security

	View = ir.View

	Trigger        = ir.Trigger
	TriggerTiming  = ir.TriggerTiming
	TriggerEvent   = ir.TriggerEvent
	TriggerEnabled = ir.TriggerEnabled

	Policy        = ir.Policy
	PolicyCommand = ir.PolicyCommand

	DefaultPrivilege = ir.DefaultPrivilege
	Grant            = ir.Grant

	Fingerprint = ir.Fingerprint
)

// New returns an empty Schema, ready to be populated by a parser or
// introspector.
func New() *Schema { return ir.New() }

// ComputeFingerprint hashes a Schema's canonical JSON form.
func ComputeFingerprint(s *Schema) (*Fingerprint, error) { return ir.ComputeFingerprint(s) }

// Qualified joins a namespace and name the same way every internal
// package keys its maps, for callers building their own lookups
// against a Schema's Tables/Views/Sequences maps.
func Qualified(namespace, name string) string { return ir.Qualified(namespace, name) }
