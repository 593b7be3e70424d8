// Package lint implements the spec §4.6 lint engine: it inspects an
// already-planned operation sequence for destructive changes and lock
// hazards without mutating it.
package lint

import (
	"fmt"

	"github.com/schemadrift/schemadrift/internal/diff"
)

// Severity orders from most to least blocking.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Rule names one of the engine's checks.
type Rule string

const (
	RuleDestructive    Rule = "destructive"
	RuleLockHazard     Rule = "lock_hazard"
	RuleProductionOnly Rule = "production_only"
	RuleUnsupported    Rule = "unsupported"
)

// LockLevel names the Postgres lock an operation's DDL statement
// acquires on the objects it touches.
type LockLevel string

const (
	LockAccessExclusive   LockLevel = "AccessExclusive"
	LockShareRowExclusive LockLevel = "ShareRowExclusive"
)

// Result is one finding against a single operation.
type Result struct {
	Rule           Rule
	Severity       Severity
	Message        string
	OperationIndex int
}

// Options mirrors spec §4.6's LintOptions.
type Options struct {
	AllowDestructive bool
	IsProduction     bool
}

// destructiveKinds are unconditionally destructive: they discard
// stored data or the objects that carry it.
var destructiveKinds = map[diff.OpKind]bool{
	diff.KindDropTable:    true,
	diff.KindDropColumn:   true,
	diff.KindDropEnum:     true,
	diff.KindDropDomain:   true,
	diff.KindDropSequence: true,
	diff.KindDropFunction: true,
	diff.KindDropSchema:   true,
}

// productionOnlyKinds is the "small configurable subset" spec §4.6
// names as "all drops on user data tables": dropping a table or a
// column both discard rows, unlike the other destructive kinds (which
// drop schema-level objects with no stored rows of their own).
var productionOnlyKinds = map[diff.OpKind]bool{
	diff.KindDropTable:  true,
	diff.KindDropColumn: true,
}

// lockHazardKinds maps every operation spec §4.6 calls out as a lock
// hazard to the lock level its DDL statement acquires. CreateTrigger
// and DropTrigger take ShareRowExclusive; everything else here takes
// AccessExclusive.
var lockHazardKinds = map[diff.OpKind]LockLevel{
	diff.KindDropTable:          LockAccessExclusive,
	diff.KindDropColumn:         LockAccessExclusive,
	diff.KindAlterColumn:        LockAccessExclusive,
	diff.KindAddIndex:           LockAccessExclusive,
	diff.KindAddPrimaryKey:      LockAccessExclusive,
	diff.KindDropPrimaryKey:     LockAccessExclusive,
	diff.KindAddForeignKey:      LockAccessExclusive,
	diff.KindDropForeignKey:     LockAccessExclusive,
	diff.KindAddCheckConstraint: LockAccessExclusive,
	diff.KindDropCheckConstraint: LockAccessExclusive,
	diff.KindDropIndex:          LockAccessExclusive,
	diff.KindEnableRLS:          LockAccessExclusive,
	diff.KindDisableRLS:         LockAccessExclusive,
	diff.KindCreatePolicy:       LockAccessExclusive,
	diff.KindAlterPolicy:        LockAccessExclusive,
	diff.KindDropPolicy:         LockAccessExclusive,
	diff.KindDropView:           LockAccessExclusive,
	diff.KindAlterView:          LockAccessExclusive,
	diff.KindDropSequence:       LockAccessExclusive,
	diff.KindAlterSequence:      LockAccessExclusive,
	diff.KindAlterTriggerEnabled: LockAccessExclusive,
	diff.KindCreateTrigger:      LockShareRowExclusive,
	diff.KindDropTrigger:        LockShareRowExclusive,
}

// LockLevelFor reports the lock level an op kind's DDL statement
// acquires, per lockHazardKinds, for callers outside this package that
// need the raw annotation (internal/report's estimate report) rather
// than a full Check finding.
func LockLevelFor(kind diff.OpKind) (LockLevel, bool) {
	level, ok := lockHazardKinds[kind]
	return level, ok
}

// Check runs every rule over ops and returns every finding, in
// operation order. It never mutates ops.
func Check(ops []diff.MigrationOp, opts Options) []Result {
	var results []Result
	for i, op := range ops {
		kind := op.Kind()

		if destructiveKinds[kind] {
			sev := SeverityWarning
			if !opts.AllowDestructive {
				sev = SeverityError
			}
			if opts.IsProduction && productionOnlyKinds[kind] {
				sev = SeverityError
			}
			results = append(results, Result{
				Rule:           RuleDestructive,
				Severity:       sev,
				Message:        fmt.Sprintf("destructive operation: %s", op.Describe()),
				OperationIndex: i,
			})
		}

		if level, ok := lockHazardKinds[kind]; ok {
			results = append(results, Result{
				Rule:           RuleLockHazard,
				Severity:       SeverityWarning,
				Message:        fmt.Sprintf("%s acquires %s lock", op.Describe(), level),
				OperationIndex: i,
			})
		}
	}
	return results
}

// CheckUnsupported turns the parser/introspector's skipped-construct
// notices (ir.Schema.Unsupported) into Info-severity findings. Unlike
// Check, these aren't tied to a planned op, so OperationIndex is -1;
// callers join them with Check's results when rendering a combined
// lint report.
func CheckUnsupported(notices []string) []Result {
	var results []Result
	for _, notice := range notices {
		results = append(results, Result{
			Rule:           RuleUnsupported,
			Severity:       SeverityInfo,
			Message:        notice,
			OperationIndex: -1,
		})
	}
	return results
}

// HasError reports whether any result blocks an apply.
func HasError(results []Result) bool {
	for _, r := range results {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}
