package ir

import "strings"

// SemanticallyEquals reports whether f and other describe the same
// function once cosmetic differences are normalized: whitespace in
// the body and keyword case in language/volatility/security are
// ignored (spec §4.2).
func (f *Function) SemanticallyEquals(other *Function) bool {
	if f == nil || other == nil {
		return f == other
	}
	if !strings.EqualFold(f.Language, other.Language) {
		return false
	}
	if !strings.EqualFold(string(f.Volatility), string(other.Volatility)) {
		return false
	}
	if !strings.EqualFold(string(f.Security), string(other.Security)) {
		return false
	}
	if collapseWhitespace(f.Body) != collapseWhitespace(other.Body) {
		return false
	}
	if !strings.EqualFold(NormalizeExpression(f.ReturnType), NormalizeExpression(other.ReturnType)) {
		return false
	}
	if !argsEqual(f.Arguments, other.Arguments) {
		return false
	}
	return configParamsEqual(f.Config, other.Config)
}

// RequiresDropRecreate reports whether moving from f to other cannot be
// expressed as CREATE OR REPLACE FUNCTION and instead needs a drop
// followed by a create: a changed return type, changed argument modes,
// or a signature-affecting default change (spec §4.2).
func (f *Function) RequiresDropRecreate(other *Function) bool {
	if f == nil || other == nil {
		return true
	}
	if !strings.EqualFold(NormalizeExpression(f.ReturnType), NormalizeExpression(other.ReturnType)) {
		return true
	}
	if len(f.Arguments) != len(other.Arguments) {
		return true
	}
	for i, a := range f.Arguments {
		b := other.Arguments[i]
		if a.Mode != b.Mode {
			return true
		}
		if !strings.EqualFold(NormalizeExpression(a.DataType), NormalizeExpression(b.DataType)) {
			return true
		}
		if (a.Default == nil) != (b.Default == nil) {
			return true
		}
	}
	return false
}

func argsEqual(a, b []*Argument) bool {
	if len(a) != len(b) {
		return false
	}
	for i, arg := range a {
		other := b[i]
		if arg.Name != other.Name || arg.Mode != other.Mode {
			return false
		}
		if !strings.EqualFold(NormalizeExpression(arg.DataType), NormalizeExpression(other.DataType)) {
			return false
		}
		switch {
		case arg.Default == nil && other.Default == nil:
		case arg.Default == nil || other.Default == nil:
			return false
		case NormalizeExpression(*arg.Default) != NormalizeExpression(*other.Default):
			return false
		}
	}
	return true
}

func configParamsEqual(a, b []ConfigParam) bool {
	if len(a) != len(b) {
		return false
	}
	for i, p := range a {
		q := b[i]
		if p.Name != q.Name || p.FromCurrent != q.FromCurrent || p.Value != q.Value {
			return false
		}
	}
	return true
}

// SemanticallyEquals reports whether v and other describe the same
// view once the query text is normalized.
func (v *View) SemanticallyEquals(other *View) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Materialized != other.Materialized || v.SecurityInvoker != other.SecurityInvoker {
		return false
	}
	return collapseWhitespace(v.Query) == collapseWhitespace(other.Query)
}

// SemanticallyEquals reports whether t and other describe the same
// trigger: the event set is compared order-insensitively (P8) and the
// WHEN clause through the expression normalizer.
func (t *Trigger) SemanticallyEquals(other *Trigger) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Timing != other.Timing || t.ForEachRow != other.ForEachRow || t.Enabled != other.Enabled {
		return false
	}
	if !eventSetEqual(t.Events, other.Events) {
		return false
	}
	if !stringSetEqual(t.UpdateColumns, other.UpdateColumns) {
		return false
	}
	if NormalizeTriggerCondition(t.When) != NormalizeTriggerCondition(other.When) {
		return false
	}
	if t.FunctionNamespace != other.FunctionNamespace || t.FunctionName != other.FunctionName {
		return false
	}
	if t.OldTableAlias != other.OldTableAlias || t.NewTableAlias != other.NewTableAlias {
		return false
	}
	return stringsEqual(t.FunctionArgs, other.FunctionArgs)
}

// SemanticallyEquals reports whether c and other describe the same
// CHECK constraint once the expression is normalized.
func (c *CheckConstraint) SemanticallyEquals(other *CheckConstraint) bool {
	if c == nil || other == nil {
		return c == other
	}
	return NormalizeExpression(c.Expression) == NormalizeExpression(other.Expression)
}

// SemanticallyEquals reports whether i and other describe the same
// index once the WHERE predicate is normalized.
func (i *Index) SemanticallyEquals(other *Index) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Unique != other.Unique || !strings.EqualFold(i.Method, other.Method) {
		return false
	}
	if len(i.Columns) != len(other.Columns) {
		return false
	}
	for idx, col := range i.Columns {
		oc := other.Columns[idx]
		if !strings.EqualFold(NormalizeExpression(col.Expression), NormalizeExpression(oc.Expression)) {
			return false
		}
		if col.Operator != oc.Operator {
			return false
		}
		if normalizeDirection(col.Direction) != normalizeDirection(oc.Direction) {
			return false
		}
	}
	return NormalizeIndexWhereClause(i.Predicate) == NormalizeIndexWhereClause(other.Predicate)
}

func normalizeDirection(d string) string {
	if d == "" {
		return "ASC"
	}
	return strings.ToUpper(d)
}

func eventSetEqual(a, b []TriggerEvent) bool {
	sa, sb := SortEvents(a), SortEvents(b)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func stringSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if !set[s] {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
