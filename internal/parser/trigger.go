package parser

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Trigger event/timing bitmask values, copied from Postgres's own
// pg_trigger.h (TRIGGER_TYPE_*) since pg_query surfaces the raw
// C bitmask rather than a typed enum for these two fields.
const (
	triggerTypeBefore   = 1 << 1
	triggerTypeInsert   = 1 << 2
	triggerTypeDelete   = 1 << 3
	triggerTypeUpdate   = 1 << 4
	triggerTypeTruncate = 1 << 5
	triggerTypeInstead  = 1 << 6
)

func (p *Parser) parseCreateTrigger(stmt *pg_query.CreateTrigStmt) error {
	if stmt.Trigname == "" || stmt.Relation == nil {
		return nil
	}
	namespace, tableName := extractRangeVar(stmt.Relation)
	table, ok := p.schema.Tables[ir.Qualified(namespace, tableName)]
	if !ok {
		return errs.Parse("table %s not found for trigger %s", ir.Qualified(namespace, tableName), stmt.Trigname)
	}

	trigger := &ir.Trigger{
		Namespace:  namespace,
		Table:      tableName,
		Name:       stmt.Trigname,
		Timing:     triggerTiming(stmt.Timing),
		Events:     ir.SortEvents(triggerEvents(stmt.Events)),
		ForEachRow: stmt.Row,
	}
	if stmt.WhenClause != nil {
		trigger.When = ir.NormalizeTriggerCondition(extractExpressionText(stmt.WhenClause))
	}
	trigger.UpdateColumns = extractNameList(stmt.Columns)
	trigger.FunctionNamespace, trigger.FunctionName = splitQualifiedNameNodes(stmt.Funcname)
	for _, arg := range stmt.Args {
		trigger.FunctionArgs = append(trigger.FunctionArgs, extractStringValue(arg))
	}
	for _, tr := range stmt.TransitionRels {
		t := tr.GetTriggerTransition()
		if t == nil {
			continue
		}
		if t.IsNew {
			trigger.NewTableAlias = t.Name
		} else {
			trigger.OldTableAlias = t.Name
		}
	}
	trigger.Enabled = ir.TriggerEnabledOrigin

	if err := trigger.Validate(); err != nil {
		return errs.Parse("%v", err)
	}
	_ = table // existence already confirmed above; triggers are stored schema-wide
	p.schema.Triggers[trigger.Key()] = trigger
	return nil
}

func triggerTiming(bitmask int32) ir.TriggerTiming {
	switch {
	case bitmask&triggerTypeInstead != 0:
		return ir.TriggerTimingInsteadOf
	case bitmask&triggerTypeBefore != 0:
		return ir.TriggerTimingBefore
	default:
		return ir.TriggerTimingAfter
	}
}

func triggerEvents(bitmask int32) []ir.TriggerEvent {
	var events []ir.TriggerEvent
	if bitmask&triggerTypeInsert != 0 {
		events = append(events, ir.TriggerEventInsert)
	}
	if bitmask&triggerTypeUpdate != 0 {
		events = append(events, ir.TriggerEventUpdate)
	}
	if bitmask&triggerTypeDelete != 0 {
		events = append(events, ir.TriggerEventDelete)
	}
	if bitmask&triggerTypeTruncate != 0 {
		events = append(events, ir.TriggerEventTruncate)
	}
	return events
}
