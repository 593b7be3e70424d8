package report

import (
	"fmt"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
	"github.com/schemadrift/schemadrift/internal/lint"
)

// SizeClass buckets a table by row count for the estimate report's
// best-effort lock-duration guess (grounded on the original
// implementation's src/estimate module, which does the same
// small/medium/large bucketing against configurable thresholds).
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// SizeThresholds are the row-count boundaries between size classes.
// A table at or above LargeRows is Large; at or above MediumRows but
// below LargeRows is Medium; otherwise Small.
type SizeThresholds struct {
	MediumRows int64
	LargeRows  int64
}

// DefaultSizeThresholds matches the original implementation's
// defaults: under 10k rows is small, under 1M is medium, at or above
// is large.
func DefaultSizeThresholds() SizeThresholds {
	return SizeThresholds{MediumRows: 10_000, LargeRows: 1_000_000}
}

func (t SizeThresholds) classify(rows int64) SizeClass {
	switch {
	case rows >= t.LargeRows:
		return SizeLarge
	case rows >= t.MediumRows:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// OpEstimate is one operation's lock-hazard estimate.
type OpEstimate struct {
	Op        diff.MigrationOp
	LockLevel lint.LockLevel
	SizeClass SizeClass
	Note      string
}

// Estimate produces a best-effort lock-time estimate for each op,
// given a row-count table (usually from a recent ANALYZE, keyed by
// "namespace.table"; missing entries are treated as Small). Ops with
// no lock hazard (per lint.LockLevelFor) are omitted.
func Estimate(ops []diff.MigrationOp, rowCounts map[string]int64, thresholds SizeThresholds) []OpEstimate {
	var estimates []OpEstimate
	for _, op := range ops {
		level, hazardous := lint.LockLevelFor(op.Kind())
		if !hazardous {
			continue
		}
		class := SizeSmall
		if key, ok := tableKey(op); ok {
			class = thresholds.classify(rowCounts[key])
		}
		estimates = append(estimates, OpEstimate{
			Op:        op,
			LockLevel: level,
			SizeClass: class,
			Note:      note(level, class),
		})
	}
	return estimates
}

func note(level lint.LockLevel, class SizeClass) string {
	switch {
	case level == lint.LockAccessExclusive && class == SizeLarge:
		return "blocks all reads and writes; likely minutes on a table this size"
	case level == lint.LockAccessExclusive && class == SizeMedium:
		return "blocks all reads and writes; likely seconds"
	case level == lint.LockAccessExclusive:
		return "blocks all reads and writes; brief on a table this size"
	case level == lint.LockShareRowExclusive && class == SizeLarge:
		return "blocks writes; reads unaffected; likely seconds to minutes"
	default:
		return "blocks writes; reads unaffected; brief"
	}
}

// tableKey extracts the "namespace.table" a table-affecting op targets,
// for row-count lookup. Ops with no single target table (schema-wide
// drops, grants) report ok=false.
func tableKey(op diff.MigrationOp) (string, bool) {
	switch o := op.(type) {
	case diff.DropTable:
		return ir.Qualified(o.Namespace, o.Name), true
	case diff.AddColumn:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropColumn:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AlterColumn:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AddPrimaryKey:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropPrimaryKey:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AddIndex:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropIndex:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AddForeignKey:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropForeignKey:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AddCheckConstraint:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropCheckConstraint:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.EnableRLS:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DisableRLS:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.CreatePolicy:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.AlterPolicy:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropPolicy:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.DropView:
		return ir.Qualified(o.Namespace, o.Name), true
	case diff.AlterView:
		return ir.Qualified(o.View.Namespace, o.View.Name), true
	case diff.DropSequence:
		return ir.Qualified(o.Namespace, o.Name), true
	case diff.AlterSequence:
		return ir.Qualified(o.Namespace, o.Name), true
	case diff.AlterTriggerEnabled:
		return ir.Qualified(o.Namespace, o.Table), true
	case diff.CreateTrigger:
		return ir.Qualified(o.Trigger.Namespace, o.Trigger.Table), true
	case diff.DropTrigger:
		return ir.Qualified(o.Namespace, o.Table), true
	default:
		return "", false
	}
}

// Summary renders a one-line-per-op human report.
func Summary(estimates []OpEstimate) string {
	var out string
	for _, e := range estimates {
		out += fmt.Sprintf("[%s/%s] %s: %s\n", e.LockLevel, e.SizeClass, e.Op.Describe(), e.Note)
	}
	return out
}
