package ir

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// NormalizeExpression canonicalizes a SQL expression fragment (a
// column default, a CHECK body, a policy USING/WITH CHECK clause, an
// index WHERE predicate) so that two textually different but
// semantically identical renderings of the same expression compare
// equal (spec §4.1). The primary path parses the fragment as the
// target list of a synthetic SELECT and deparses it back through
// pg_query_go, which is how Postgres itself would re-render the
// expression; this absorbs whitespace, parenthesization, and literal
// formatting differences for free. When the fragment isn't valid as a
// standalone expression (wrapped DDL clauses, policy shorthand) we
// fall back to the regex-based rules below.
func NormalizeExpression(expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return expr
	}
	if normalized, ok := normalizeExpressionViaAST(expr); ok {
		return normalized
	}
	return normalizeExpressionFallback(expr)
}

// normalizeExpressionViaAST wraps expr in "SELECT <expr>", parses it,
// and deparses the single target-list entry's expression tree back to
// text. Returns ok=false if expr doesn't parse as a bare expression
// (e.g. it already carries a wrapping clause the fallback understands).
func normalizeExpressionViaAST(expr string) (string, bool) {
	wrapped := "SELECT " + expr
	tree, err := pg_query.Parse(wrapped)
	if err != nil || len(tree.Stmts) != 1 {
		return "", false
	}
	rendered, err := pg_query.Deparse(tree)
	if err != nil {
		return "", false
	}
	const prefix = "SELECT "
	rendered = strings.TrimSpace(rendered)
	if !strings.HasPrefix(strings.ToUpper(rendered), prefix) {
		return "", false
	}
	result := strings.TrimSpace(rendered[len(prefix):])
	return normalizePostgreSQLType(result), true
}

// normalizeExpressionFallback applies the teacher's regex-based rules
// for fragments that don't round-trip through the AST deparser on
// their own: whitespace collapsing, required/redundant parenthesis
// handling, and internal-type-name normalization.
func normalizeExpressionFallback(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = regexp.MustCompile(`\s+`).ReplaceAllString(expr, " ")
	expr = normalizeExpressionParentheses(expr)
	expr = normalizePostgreSQLType(expr)
	return expr
}

// NormalizePolicyExpression normalizes a policy USING/WITH CHECK
// clause. Policies require their expression be parenthesized in DDL,
// which NormalizeExpression alone doesn't guarantee, so this wraps it.
func NormalizePolicyExpression(expr string) string {
	if expr == "" {
		return expr
	}
	normalized := NormalizeExpression(expr)
	if !strings.HasPrefix(normalized, "(") || !strings.HasSuffix(normalized, ")") {
		normalized = fmt.Sprintf("(%s)", normalized)
	}
	return normalized
}

// NormalizeTriggerCondition canonicalizes a trigger WHEN clause,
// additionally upper-casing the NEW/OLD transition-row identifiers so
// that case differences in hand-written DDL don't produce a diff.
func NormalizeTriggerCondition(condition string) string {
	if condition == "" {
		return condition
	}
	condition = NormalizeExpression(condition)
	condition = regexp.MustCompile(`\bnew\b`).ReplaceAllStringFunc(condition, strings.ToUpper)
	condition = regexp.MustCompile(`\bold\b`).ReplaceAllStringFunc(condition, strings.ToUpper)
	return condition
}

// NormalizeIndexWhereClause canonicalizes a partial index's predicate,
// adding outer parentheses only when the expression's shape requires
// them for valid DDL.
func NormalizeIndexWhereClause(where string) string {
	if where == "" {
		return where
	}
	normalized := strings.TrimSpace(where)
	if strings.HasPrefix(normalized, "(") && strings.HasSuffix(normalized, ")") {
		inner := normalized[1 : len(normalized)-1]
		if isBalancedParentheses(inner) {
			normalized = inner
		}
	}
	normalized = NormalizeExpression(normalized)
	if shouldAddParenthesesForWhereClause(normalized) {
		return fmt.Sprintf("(%s)", normalized)
	}
	return normalized
}

// NormalizeTypeName rewrites an internal catalog type spelling (int4,
// pg_catalog.timestamptz, the _xxx array forms) to the canonical SQL
// name, for parsers building a Column/Argument/Sequence DataType field
// directly from a TypeName AST node.
func NormalizeTypeName(typeName string) string {
	return normalizePostgreSQLType(typeName)
}

// DataTypesEqual reports whether two type spellings denote the same
// Postgres type once internal catalog names are canonicalized (e.g.
// "int4" and "integer", "pg_catalog.text" and "text").
func DataTypesEqual(a, b string) bool {
	return strings.EqualFold(normalizePostgreSQLType(strings.TrimSpace(a)), normalizePostgreSQLType(strings.TrimSpace(b)))
}

// NormalizeRoles sorts and case-normalizes a policy's role list,
// keeping the PUBLIC pseudo-role upper-cased.
func NormalizeRoles(roles []string) []string {
	if len(roles) == 0 {
		return roles
	}
	normalized := make([]string, len(roles))
	for i, role := range roles {
		trimmed := strings.TrimSpace(role)
		if strings.ToUpper(trimmed) == "PUBLIC" {
			normalized[i] = "PUBLIC"
		} else {
			normalized[i] = strings.ToLower(trimmed)
		}
	}
	sort.Strings(normalized)
	return normalized
}

func shouldAddParenthesesForWhereClause(expr string) bool {
	if expr == "" {
		return false
	}
	if strings.Contains(expr, " IN (") {
		return false
	}
	if matches, _ := regexp.MatchString(`^[a-zA-Z_][a-zA-Z0-9_]*\s*\(.*\)$`, expr); matches {
		return false
	}
	if matches, _ := regexp.MatchString(`^[a-zA-Z_][a-zA-Z0-9_]*\s*[=<>!]+\s*\(.*\)$`, expr); matches {
		return false
	}
	if strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		return false
	}
	return true
}

// normalizeExpressionParentheses ensures policy-style expressions
// carry the parentheses Postgres's own DDL rendering requires, while
// collapsing doubled parens around bare function calls and stripping
// a redundant ::text cast off string literals.
func normalizeExpressionParentheses(expr string) string {
	if expr == "" {
		return expr
	}
	functionParensRegex := regexp.MustCompile(`\(([a-zA-Z_][a-zA-Z0-9_]*\([^)]*\))\)`)
	for {
		original := expr
		expr = functionParensRegex.ReplaceAllString(expr, "$1")
		if expr == original {
			break
		}
	}
	redundantTextCastRegex := regexp.MustCompile(`'([^']+)'::text`)
	expr = redundantTextCastRegex.ReplaceAllString(expr, "'$1'")
	return expr
}

// isBalancedParentheses reports whether expr's parentheses, ignoring
// quoted substrings, are balanced.
func isBalancedParentheses(expr string) bool {
	count := 0
	inQuotes := false
	var quoteChar rune
	for _, r := range expr {
		if !inQuotes {
			switch r {
			case '\'', '"':
				inQuotes = true
				quoteChar = r
			case '(':
				count++
			case ')':
				count--
				if count < 0 {
					return false
				}
			}
		} else if r == quoteChar {
			inQuotes = false
		}
	}
	return count == 0
}

// normalizePostgreSQLType rewrites internal catalog type spellings
// (int4, pg_catalog.timestamptz, the _xxx array forms) to the
// canonical SQL names the parser path would have produced, so an
// introspected expression and a parsed one compare equal.
func normalizePostgreSQLType(input string) string {
	if input == "" {
		return input
	}
	typeMap := map[string]string{
		"int2": "smallint", "int4": "integer", "int8": "bigint",
		"float4": "real", "float8": "double precision", "bool": "boolean",
		"pg_catalog.int2": "smallint", "pg_catalog.int4": "integer", "pg_catalog.int8": "bigint",
		"pg_catalog.float4": "real", "pg_catalog.float8": "double precision", "pg_catalog.bool": "boolean",
		"pg_catalog.numeric": "numeric",
		"bpchar":             "character", "character varying": "varchar",
		"pg_catalog.text": "text", "pg_catalog.varchar": "varchar", "pg_catalog.bpchar": "character",
		"timestamp with time zone": "timestamptz", "timestamp without time zone": "timestamp",
		"time with time zone": "timetz", "timestamptz": "timestamptz", "timetz": "timetz",
		"pg_catalog.timestamptz": "timestamptz", "pg_catalog.timestamp": "timestamp",
		"pg_catalog.date": "date", "pg_catalog.time": "time", "pg_catalog.timetz": "timetz",
		"pg_catalog.interval": "interval",
		"_text":               "text[]", "_int2": "smallint[]", "_int4": "integer[]", "_int8": "bigint[]",
		"_float4": "real[]", "_float8": "double precision[]", "_bool": "boolean[]",
		"_varchar": "varchar[]", "_char": "character[]", "_bpchar": "character[]", "_numeric": "numeric[]",
		"_uuid": "uuid[]", "_json": "json[]", "_jsonb": "jsonb[]", "_bytea": "bytea[]",
		"_inet": "inet[]", "_cidr": "cidr[]", "_macaddr": "macaddr[]", "_macaddr8": "macaddr8[]",
		"_date": "date[]", "_time": "time[]", "_timetz": "timetz[]",
		"_timestamp": "timestamp[]", "_timestamptz": "timestamptz[]", "_interval": "interval[]",
		"pg_catalog.uuid": "uuid", "pg_catalog.json": "json", "pg_catalog.jsonb": "jsonb",
		"pg_catalog.bytea": "bytea", "pg_catalog.inet": "inet", "pg_catalog.cidr": "cidr",
		"pg_catalog.macaddr": "macaddr",
		"serial":             "serial", "smallserial": "smallserial", "bigserial": "bigserial",
	}

	if strings.Contains(input, "::") {
		expr := input
		for pgType, sqlType := range typeMap {
			expr = strings.ReplaceAll(expr, "::"+pgType, "::"+sqlType)
		}
		if strings.Contains(expr, "::pg_catalog.") {
			expr = regexp.MustCompile(`::pg_catalog\.(\w+)`).ReplaceAllString(expr, "::$1")
		}
		return expr
	}

	if normalized, exists := typeMap[input]; exists {
		return normalized
	}
	if after, found := strings.CutPrefix(input, "pg_catalog."); found {
		return after
	}
	return input
}
