package parser

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseCreateFunction(stmt *pg_query.CreateFunctionStmt) error {
	namespace, name := splitQualifiedNameNodes(stmt.Funcname)
	if name == "" {
		return nil
	}
	p.schema.GetOrCreateNamespace(namespace)

	fn := &ir.Function{Namespace: namespace, Name: name}
	fn.Arguments = parseFunctionParameters(stmt.Parameters)
	if stmt.ReturnType != nil {
		fn.ReturnType = parseTypeName(stmt.ReturnType)
	}
	fn.Language = functionLanguage(stmt.Options)
	fn.Body = functionBody(stmt.Options)
	fn.Volatility = functionVolatility(stmt.Options)
	if functionIsSecurityDefiner(stmt.Options) {
		fn.Security = ir.SecurityDefiner
	}
	fn.Config = functionConfig(stmt.Options)
	fn.ApplyDefaults()

	p.schema.Functions[fn.Key()] = fn
	return nil
}

func parseFunctionParameters(params []*pg_query.Node) []*ir.Argument {
	out := make([]*ir.Argument, 0, len(params))
	for _, param := range params {
		fp := param.GetFunctionParameter()
		if fp == nil {
			continue
		}
		arg := &ir.Argument{Name: fp.Name, Mode: ir.ArgIn}
		if fp.ArgType != nil {
			arg.DataType = parseTypeName(fp.ArgType)
		}
		switch fp.Mode {
		case pg_query.FunctionParameterMode_FUNC_PARAM_OUT, pg_query.FunctionParameterMode_FUNC_PARAM_TABLE:
			arg.Mode = ir.ArgOut
		case pg_query.FunctionParameterMode_FUNC_PARAM_INOUT:
			arg.Mode = ir.ArgInOut
		}
		if fp.Defexpr != nil {
			val := extractDefaultValue(fp.Defexpr)
			arg.Default = &val
		}
		out = append(out, arg)
	}
	return out
}

func functionOption(options []*pg_query.Node, name string) *pg_query.DefElem {
	for _, opt := range options {
		if defElem := opt.GetDefElem(); defElem != nil && defElem.Defname == name {
			return defElem
		}
	}
	return nil
}

func functionLanguage(options []*pg_query.Node) string {
	if defElem := functionOption(options, "language"); defElem != nil {
		if v := extractStringValue(defElem.Arg); v != "" {
			return v
		}
	}
	return "sql"
}

func functionBody(options []*pg_query.Node) string {
	defElem := functionOption(options, "as")
	if defElem == nil || defElem.Arg == nil {
		return ""
	}
	if list := defElem.Arg.GetList(); list != nil {
		parts := make([]string, 0, len(list.Items))
		for _, item := range list.Items {
			if v := extractStringValue(item); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, "\n")
	}
	return extractStringValue(defElem.Arg)
}

func functionVolatility(options []*pg_query.Node) ir.Volatility {
	defElem := functionOption(options, "volatility")
	if defElem == nil || defElem.Arg == nil {
		return ir.VolatilityVolatile
	}
	switch strings.ToLower(extractStringValue(defElem.Arg)) {
	case "immutable", "i":
		return ir.VolatilityImmutable
	case "stable", "s":
		return ir.VolatilityStable
	default:
		return ir.VolatilityVolatile
	}
}

func functionIsSecurityDefiner(options []*pg_query.Node) bool {
	defElem := functionOption(options, "security")
	if defElem == nil || defElem.Arg == nil {
		return false
	}
	if b := defElem.Arg.GetBoolean(); b != nil {
		return b.Boolval
	}
	return strings.EqualFold(extractStringValue(defElem.Arg), "definer")
}

func functionConfig(options []*pg_query.Node) []ir.ConfigParam {
	var out []ir.ConfigParam
	for _, opt := range options {
		defElem := opt.GetDefElem()
		if defElem == nil || defElem.Defname != "set" {
			continue
		}
		vs := defElem.Arg.GetVariableSetStmt()
		if vs == nil {
			continue
		}
		cp := ir.ConfigParam{Name: strings.ToLower(vs.Name)}
		if vs.Kind == pg_query.VariableSetKind_VAR_SET_DEFAULT || vs.Kind == pg_query.VariableSetKind_VAR_SET_CURRENT {
			cp.FromCurrent = vs.Kind == pg_query.VariableSetKind_VAR_SET_CURRENT
		} else {
			values := make([]string, 0, len(vs.Args))
			for _, a := range vs.Args {
				if v := extractStringValue(a); v != "" {
					values = append(values, v)
				}
			}
			cp.Value = strings.Join(values, ", ")
		}
		out = append(out, cp)
	}
	return out
}
