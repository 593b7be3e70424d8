package introspect

import (
	"context"
	"strings"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildFunctions(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT p.proname, pg_get_userbyid(p.proowner), l.lanname, p.prosrc,
		       format_type(p.prorettype, null),
		       CASE p.provolatile WHEN 'i' THEN 'IMMUTABLE' WHEN 's' THEN 'STABLE' ELSE 'VOLATILE' END,
		       p.prosecdef,
		       pg_get_function_arguments(p.oid)
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		JOIN pg_language l ON l.oid = p.prolang
		WHERE n.nspname = $1 AND p.prokind IN ('f', 'p')
	`, ns)
	if err != nil {
		return scanErr(err, "functions")
	}
	defer rows.Close()

	for rows.Next() {
		var name, owner, lang, body, returnType, volatility, argsText string
		var secdef bool
		if err := rows.Scan(&name, &owner, &lang, &body, &returnType, &volatility, &secdef, &argsText); err != nil {
			return scanErr(err, "function row")
		}
		fn := &ir.Function{
			Namespace: ns, Name: name, Owner: owner, Language: lang, Body: body,
			ReturnType: returnType, Volatility: ir.Volatility(volatility),
			Arguments: parseFunctionArguments(argsText),
		}
		if secdef {
			fn.Security = ir.SecurityDefiner
		} else {
			fn.Security = ir.SecurityInvoker
		}
		b.schema.Functions[fn.Key()] = fn
	}
	return scanErr(rows.Err(), "functions")
}

// parseFunctionArguments splits pg_get_function_arguments' rendered
// "name type, name type DEFAULT expr, OUT name type" text back into
// Argument values. It is deliberately simple (split on top-level
// commas, then on the first space) since the catalog's own rendering
// is already normalized and never nests parens inside a single
// argument's type except via user-defined composite/array types,
// which retain their own internal commas only inside array bounds
// that this split does not need to understand.
func parseFunctionArguments(text string) []*ir.Argument {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var args []*ir.Argument
	for _, part := range splitTopLevel(text) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		arg := &ir.Argument{Mode: ir.ArgIn}
		fields := strings.Fields(part)
		idx := 0
		switch strings.ToUpper(fields[0]) {
		case "OUT":
			arg.Mode = ir.ArgOut
			idx = 1
		case "INOUT":
			arg.Mode = ir.ArgInOut
			idx = 1
		case "IN", "VARIADIC":
			idx = 1
		}
		if idx < len(fields) {
			arg.Name = fields[idx]
			rest := strings.Join(fields[idx+1:], " ")
			if i := strings.Index(rest, "DEFAULT"); i >= 0 {
				arg.DataType = strings.TrimSpace(rest[:i])
				def := strings.TrimSpace(rest[i+len("DEFAULT"):])
				arg.Default = &def
			} else {
				arg.DataType = rest
			}
		}
		args = append(args, arg)
	}
	return args
}

func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
