package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func renderCreateFunction(o diff.CreateFunction) string {
	return renderCreateFunctionText(o.Function, false)
}

func renderCreateFunctionText(f *ir.Function, replace bool) string {
	verb := "CREATE FUNCTION"
	if replace {
		verb = "CREATE OR REPLACE FUNCTION"
	}

	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		arg := string(a.Mode) + " "
		if a.Name != "" {
			arg += a.Name + " "
		}
		arg += a.DataType
		if a.Default != nil {
			arg += " DEFAULT " + *a.Default
		}
		args[i] = strings.TrimSpace(arg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s(%s) RETURNS %s LANGUAGE %s %s", verb,
		qq(f.Namespace, f.Name), strings.Join(args, ", "), f.ReturnType, f.Language, f.Volatility)
	if f.Security == ir.SecurityDefiner {
		b.WriteString(" SECURITY DEFINER")
	}
	for _, cfg := range f.Config {
		if cfg.FromCurrent {
			fmt.Fprintf(&b, " SET %s FROM CURRENT", cfg.Name)
		} else {
			fmt.Fprintf(&b, " SET %s = %s", cfg.Name, cfg.Value)
		}
	}
	fmt.Fprintf(&b, " AS $$%s$$;", f.Body)
	return b.String()
}

func renderCreateView(v *ir.View, replace bool) string {
	kind := "VIEW"
	if v.Materialized {
		kind = "MATERIALIZED VIEW"
	}
	verb := "CREATE " + kind
	if replace && !v.Materialized {
		verb = "CREATE OR REPLACE " + kind
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", verb, qq(v.Namespace, v.Name))
	if v.SecurityInvoker {
		b.WriteString(" WITH (security_invoker = true)")
	}
	fmt.Fprintf(&b, " AS %s;", v.Query)
	return b.String()
}

func renderCreateTrigger(o diff.CreateTrigger) string {
	t := o.Trigger
	events := make([]string, len(ir.SortEvents(t.Events)))
	for i, e := range ir.SortEvents(t.Events) {
		events[i] = string(e)
	}

	level := "STATEMENT"
	if t.ForEachRow {
		level = "ROW"
	}

	funcArgs := strings.Join(t.FunctionArgs, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s", q(t.Name), triggerTiming(t.Timing), strings.Join(events, " OR "), qq(t.Namespace, t.Table))
	if t.OldTableAlias != "" || t.NewTableAlias != "" {
		b.WriteString(" REFERENCING")
		if t.OldTableAlias != "" {
			fmt.Fprintf(&b, " OLD TABLE AS %s", t.OldTableAlias)
		}
		if t.NewTableAlias != "" {
			fmt.Fprintf(&b, " NEW TABLE AS %s", t.NewTableAlias)
		}
	}
	fmt.Fprintf(&b, " FOR EACH %s", level)
	if t.When != "" {
		fmt.Fprintf(&b, " WHEN (%s)", t.When)
	}
	fmt.Fprintf(&b, " EXECUTE FUNCTION %s(%s);", qq(t.FunctionNamespace, t.FunctionName), funcArgs)
	return b.String()
}

func triggerTiming(timing ir.TriggerTiming) string {
	if timing == ir.TriggerTimingInsteadOf {
		return "INSTEAD OF"
	}
	return string(timing)
}

func renderAlterTriggerEnabled(o diff.AlterTriggerEnabled) string {
	var mode string
	switch o.Enabled {
	case ir.TriggerEnabledDisabled:
		mode = "DISABLE TRIGGER"
	case ir.TriggerEnabledReplica:
		mode = "ENABLE REPLICA TRIGGER"
	case ir.TriggerEnabledAlways:
		mode = "ENABLE ALWAYS TRIGGER"
	default:
		mode = "ENABLE TRIGGER"
	}
	return fmt.Sprintf("ALTER TABLE %s %s %s;", qq(o.Namespace, o.Table), mode, q(o.Name))
}
