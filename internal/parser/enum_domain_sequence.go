package parser

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseCreateEnum(stmt *pg_query.CreateEnumStmt) error {
	namespace, name := splitQualifiedNameNodes(stmt.TypeName)
	if name == "" {
		return nil
	}
	p.schema.GetOrCreateNamespace(namespace)

	values := make([]string, 0, len(stmt.Vals))
	for _, v := range stmt.Vals {
		if s := v.GetString_(); s != nil {
			values = append(values, s.Sval)
		}
	}
	p.schema.Enums[ir.Qualified(namespace, name)] = &ir.Enum{
		Namespace: namespace, Name: name, Values: values,
	}
	return nil
}

func (p *Parser) parseCreateDomain(stmt *pg_query.CreateDomainStmt) error {
	namespace, name := splitQualifiedNameNodes(stmt.Domainname)
	if name == "" {
		return nil
	}
	p.schema.GetOrCreateNamespace(namespace)

	domain := &ir.Domain{Namespace: namespace, Name: name}
	if stmt.TypeName != nil {
		domain.BaseType = parseTypeName(stmt.TypeName)
	}
	for _, c := range stmt.Constraints {
		cons := c.GetConstraint()
		if cons == nil {
			continue
		}
		switch cons.Contype {
		case pg_query.ConstrType_CONSTR_NOTNULL:
			domain.NotNull = true
		case pg_query.ConstrType_CONSTR_DEFAULT:
			if cons.RawExpr != nil {
				val := extractDefaultValue(cons.RawExpr)
				domain.Default = &val
			}
		case pg_query.ConstrType_CONSTR_CHECK:
			if cons.RawExpr == nil {
				continue
			}
			name := cons.Conname
			if name == "" {
				name = domain.Name + "_check"
			}
			domain.Checks = append(domain.Checks, &ir.NamedCheck{
				Name:       name,
				Expression: extractExpressionText(cons.RawExpr),
			})
		}
	}
	p.schema.Domains[ir.Qualified(namespace, name)] = domain
	return nil
}

// splitQualifiedNameNodes splits a dotted type/domain name list into
// its namespace (defaulting to public) and bare name, matching the
// schema-then-name convention pg_query uses for a multi-part TypeName.
func splitQualifiedNameNodes(nodes []*pg_query.Node) (namespace, name string) {
	names := extractNameList(nodes)
	if len(names) == 0 {
		return ir.DefaultNamespace, ""
	}
	if len(names) == 1 {
		return ir.DefaultNamespace, names[0]
	}
	return names[len(names)-2], names[len(names)-1]
}

func (p *Parser) parseCreateSequence(stmt *pg_query.CreateSeqStmt) error {
	namespace, name := extractRangeVar(stmt.Sequence)
	p.schema.GetOrCreateNamespace(namespace)

	seq := &ir.Sequence{Namespace: namespace, Name: name, Width: 64}

	var startExplicit, minExplicit, maxExplicit bool
	for _, opt := range stmt.Options {
		defElem := opt.GetDefElem()
		if defElem == nil {
			continue
		}
		switch defElem.Defname {
		case "as":
			if defElem.Arg != nil {
				if tn := defElem.Arg.GetTypeName(); tn != nil {
					seq.Width = sequenceWidth(parseTypeName(tn))
				}
			}
		case "start":
			if iv, ok := extractIntValue(defElem.Arg); ok {
				seq.Start = iv
				startExplicit = true
			}
		case "increment":
			if iv, ok := extractIntValue(defElem.Arg); ok {
				seq.Increment = iv
			}
		case "minvalue":
			if iv, ok := extractIntValue(defElem.Arg); ok {
				seq.Min = iv
				minExplicit = true
			}
		case "maxvalue":
			if iv, ok := extractIntValue(defElem.Arg); ok {
				seq.Max = iv
				maxExplicit = true
			}
		case "nominvalue":
			minExplicit = false
		case "nomaxvalue":
			maxExplicit = false
		case "cache":
			if iv, ok := extractIntValue(defElem.Arg); ok {
				seq.Cache = iv
			}
		case "cycle":
			seq.Cycle = true
		case "nocycle":
			seq.Cycle = false
		case "owned_by":
			ownedBy := extractNameList(defElem.Arg.GetList().GetItems())
			if len(ownedBy) >= 2 && !strings.EqualFold(ownedBy[len(ownedBy)-1], "none") {
				seq.OwnedByColumn = ownedBy[len(ownedBy)-1]
				seq.OwnedByTable = ownedBy[len(ownedBy)-2]
			}
		}
	}
	ir.ApplySequenceDefaults(seq, startExplicit, minExplicit, maxExplicit)
	p.schema.Sequences[ir.Qualified(namespace, name)] = seq
	return nil
}

func sequenceWidth(dataType string) int {
	switch strings.ToLower(dataType) {
	case "smallint", "int2":
		return 16
	case "integer", "int", "int4":
		return 32
	default:
		return 64
	}
}
