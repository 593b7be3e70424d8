package parser

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// extractExpressionText rebuilds a textual representation of an
// expression node by recursive descent over the small set of node
// kinds that appear in column defaults, CHECK bodies, and policy
// USING/WITH CHECK clauses. ir.NormalizeExpression re-parses and
// re-deparses the result afterward, so this only needs to produce
// *some* valid SQL rendering of the expression, not a canonical one.
func extractExpressionText(expr *pg_query.Node) string {
	if expr == nil {
		return ""
	}
	switch e := expr.Node.(type) {
	case *pg_query.Node_AExpr:
		return parseAExpr(e.AExpr)
	case *pg_query.Node_BoolExpr:
		return parseBoolExpr(e.BoolExpr)
	case *pg_query.Node_ColumnRef:
		return extractColumnRef(e.ColumnRef)
	case *pg_query.Node_AConst:
		return extractDefaultValue(expr)
	case *pg_query.Node_List:
		return parseExprList(e.List)
	case *pg_query.Node_FuncCall:
		return parseFuncCall(e.FuncCall)
	case *pg_query.Node_TypeCast:
		return parseTypeCast(e.TypeCast)
	case *pg_query.Node_NullTest:
		return parseNullTest(e.NullTest)
	case *pg_query.Node_SubLink:
		return parseSubLink(e.SubLink)
	default:
		return deparseStmt(expr)
	}
}

func extractColumnRef(ref *pg_query.ColumnRef) string {
	var parts []string
	for _, f := range ref.Fields {
		if s := f.GetString_(); s != nil {
			part := s.Sval
			if part == "new" || part == "old" {
				part = strings.ToUpper(part)
			}
			parts = append(parts, part)
		} else if f.GetAStar() != nil {
			parts = append(parts, "*")
		}
	}
	return strings.Join(parts, ".")
}

func parseAExpr(expr *pg_query.A_Expr) string {
	if expr.Kind == pg_query.A_Expr_Kind_AEXPR_IN {
		left := extractExpressionText(expr.Lexpr)
		right := extractExpressionText(expr.Rexpr)
		return fmt.Sprintf("%s IN %s", left, right)
	}
	if expr.Kind == pg_query.A_Expr_Kind_AEXPR_LIKE {
		left := extractExpressionText(expr.Lexpr)
		right := extractExpressionText(expr.Rexpr)
		return fmt.Sprintf("%s LIKE %s", left, right)
	}
	if len(expr.Name) > 0 {
		if s := expr.Name[0].GetString_(); s != nil {
			op := s.Sval
			left := extractExpressionText(expr.Lexpr)
			right := extractExpressionText(expr.Rexpr)
			if left == "" {
				return fmt.Sprintf("(%s %s)", op, right)
			}
			return fmt.Sprintf("(%s %s %s)", left, op, right)
		}
	}
	return ""
}

func parseBoolExpr(expr *pg_query.BoolExpr) string {
	var op string
	switch expr.Boolop {
	case pg_query.BoolExprType_AND_EXPR:
		op = "AND"
	case pg_query.BoolExprType_OR_EXPR:
		op = "OR"
	case pg_query.BoolExprType_NOT_EXPR:
		if len(expr.Args) == 1 {
			return fmt.Sprintf("(NOT %s)", extractExpressionText(expr.Args[0]))
		}
	}
	parts := make([]string, 0, len(expr.Args))
	for _, arg := range expr.Args {
		parts = append(parts, extractExpressionText(arg))
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}

func parseExprList(list *pg_query.List) string {
	items := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, extractExpressionText(item))
	}
	return "(" + strings.Join(items, ", ") + ")"
}

func parseFuncCall(call *pg_query.FuncCall) string {
	var name string
	if len(call.Funcname) > 0 {
		if s := call.Funcname[len(call.Funcname)-1].GetString_(); s != nil {
			name = s.Sval
		}
	}
	args := make([]string, 0, len(call.Args))
	for _, a := range call.Args {
		args = append(args, extractExpressionText(a))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func parseTypeCast(cast *pg_query.TypeCast) string {
	arg := extractExpressionText(cast.Arg)
	typeName := parseTypeName(cast.TypeName)
	return fmt.Sprintf("%s::%s", arg, typeName)
}

func parseNullTest(test *pg_query.NullTest) string {
	arg := extractExpressionText(test.Arg)
	if test.Nulltesttype == pg_query.NullTestType_IS_NOT_NULL {
		return fmt.Sprintf("%s IS NOT NULL", arg)
	}
	return fmt.Sprintf("%s IS NULL", arg)
}

func parseSubLink(sub *pg_query.SubLink) string {
	return deparseStmt(sub.Subselect)
}
