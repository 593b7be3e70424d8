package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

// Trigger bitmask/enable-code values, matching Postgres's own
// pg_trigger.h and the parser's triggerTiming/triggerEvents, since
// pg_trigger.tgtype carries the same raw bitmask the parser decodes
// from CreateTrigStmt.
const (
	tgBefore   = 1 << 1
	tgInsert   = 1 << 2
	tgDelete   = 1 << 3
	tgUpdate   = 1 << 4
	tgTruncate = 1 << 5
	tgInstead  = 1 << 6
	tgRow      = 1 << 0
)

func (b *builder) buildTriggers(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT c.relname, t.tgname, t.tgtype, t.tgenabled,
		       pg_get_expr(t.tgqual, t.tgrelid),
		       fn.nspname, fp.proname,
		       array(SELECT a.attname FROM unnest(t.tgattr) WITH ORDINALITY AS k(attnum, ord)
		             JOIN pg_attribute a ON a.attrelid = t.tgrelid AND a.attnum = k.attnum
		             ORDER BY k.ord)
		FROM pg_trigger t
		JOIN pg_class c ON c.oid = t.tgrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_proc fp ON fp.oid = t.tgfoid
		JOIN pg_namespace fn ON fn.oid = fp.pronamespace
		WHERE n.nspname = $1 AND NOT t.tgisinternal
	`, ns)
	if err != nil {
		return scanErr(err, "triggers")
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, name string
		var tgtype int16
		var tgenabled string
		var when *string
		var fnNS, fnName string
		var updateColumns []string
		if err := rows.Scan(&tableName, &name, &tgtype, &tgenabled, &when, &fnNS, &fnName, &updateColumns); err != nil {
			return scanErr(err, "trigger row")
		}
		trig := &ir.Trigger{
			Namespace: ns, Table: tableName, Name: name,
			Timing:            triggerTiming(tgtype),
			Events:            ir.SortEvents(triggerEvents(tgtype)),
			ForEachRow:        tgtype&tgRow != 0,
			FunctionNamespace: fnNS, FunctionName: fnName,
			UpdateColumns: updateColumns,
			Enabled:       triggerEnabled(tgenabled),
		}
		if when != nil {
			trig.When = ir.NormalizeTriggerCondition(*when)
		}
		b.schema.Triggers[trig.Key()] = trig
	}
	return scanErr(rows.Err(), "triggers")
}

func triggerTiming(mask int16) ir.TriggerTiming {
	switch {
	case mask&tgInstead != 0:
		return ir.TriggerTimingInsteadOf
	case mask&tgBefore != 0:
		return ir.TriggerTimingBefore
	default:
		return ir.TriggerTimingAfter
	}
}

func triggerEvents(mask int16) []ir.TriggerEvent {
	var events []ir.TriggerEvent
	if mask&tgInsert != 0 {
		events = append(events, ir.TriggerEventInsert)
	}
	if mask&tgUpdate != 0 {
		events = append(events, ir.TriggerEventUpdate)
	}
	if mask&tgDelete != 0 {
		events = append(events, ir.TriggerEventDelete)
	}
	if mask&tgTruncate != 0 {
		events = append(events, ir.TriggerEventTruncate)
	}
	return events
}

func triggerEnabled(code string) ir.TriggerEnabled {
	switch code {
	case "D":
		return ir.TriggerEnabledDisabled
	case "R":
		return ir.TriggerEnabledReplica
	case "A":
		return ir.TriggerEnabledAlways
	default:
		return ir.TriggerEnabledOrigin
	}
}
