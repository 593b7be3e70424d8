package pgschema

import (
	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/lint"
	"github.com/schemadrift/schemadrift/internal/report"
	"github.com/schemadrift/schemadrift/ir"
)

// Re-exports of the core's public vocabulary (spec §6), so a consumer
// of this package never needs to reach into internal/* directly.

// Schema is the normalized in-memory representation of a database
// schema (spec §1): the shared product of parsing source files and
// introspecting a live database.
type Schema = ir.Schema

// Fingerprint is a content hash of a Schema's canonical JSON form,
// used for drift detection's cheap equality check.
type Fingerprint = ir.Fingerprint

// MigrationOp is one step of a migration plan: a single DDL-producing
// change (CreateTable, AddColumn, DropIndex, ...).
type MigrationOp = diff.MigrationOp

// DiffOptions controls the opportunistic ownership/grant emission the
// differ performs alongside the structural diff.
type DiffOptions = diff.Options

// LintOptions controls the lint engine's severity decisions:
// AllowDestructive downgrades destructive findings from error to
// warning, IsProduction escalates drops on user-data tables back to
// error regardless.
type LintOptions = lint.Options

// LintResult is a single finding against a planned operation (or, when
// OperationIndex is -1, an unsupported-construct notice unrelated to
// any op).
type LintResult = lint.Result

// Severity orders a LintResult from most to least blocking.
type Severity = lint.Severity

const (
	SeverityError   = lint.SeverityError
	SeverityWarning = lint.SeverityWarning
	SeverityInfo    = lint.SeverityInfo
)

// HasLintError reports whether any result blocks an apply.
func HasLintError(results []LintResult) bool { return lint.HasError(results) }

// Drift is the result of comparing a target schema against a live
// database: whether it has drifted, both fingerprints, and — when it
// has — the operations that would reconcile it.
type Drift = report.Drift

// Baseline is a previously recorded schema fingerprint, trusted as a
// drift-detection anchor without re-parsing and re-diffing a source
// tree on every check.
type Baseline = report.Baseline

// OpEstimate is a single operation's lock-hazard and row-count-based
// duration estimate.
type OpEstimate = report.OpEstimate
