// Package parser turns declarative SQL source into the ir.Schema model
// (spec §4.3): each file is split into statements with pg_query_go and
// each statement is translated into the matching IR object. Cross-file
// ordering and late-binding artifacts (policies/owners/grants that
// reference an object defined elsewhere) are resolved by Load, not by
// this single-file parser.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Parser accumulates statements from one or more SQL sources into a
// single ir.Schema. Create one per logical "file" passed to Load so
// duplicate-within-file and duplicate-across-file errors can be told
// apart by the caller.
type Parser struct {
	schema *ir.Schema

	// partitionChildren tracks CREATE TABLE ... PARTITION OF parent
	// statements seen before their ATTACH (inline Partbound case), so
	// Finalize-time partition wiring has the parent name even though
	// pg_query reports the bound on the child statement itself.
	partitionChildren map[string]string // child "ns.table" -> parent "ns.table"
}

// New returns a Parser with an empty backing schema.
func New() *Parser {
	return &Parser{
		schema:            ir.New(),
		partitionChildren: make(map[string]string),
	}
}

// Schema returns the schema accumulated so far.
func (p *Parser) Schema() *ir.Schema { return p.schema }

// ParseSQL splits sqlContent into statements and folds each into the
// parser's schema. Statement order matters: ALTER TABLE, CREATE INDEX,
// CREATE POLICY, and ATTACH PARTITION all require their target table
// to already exist unless the caller defers resolution (spec §4.3.6
// allows a policy to precede its table within the same load — that
// case is handled by the pending-policy queue, not by requiring order).
func (p *Parser) ParseSQL(sqlContent string) error {
	statements, err := pg_query.SplitWithParser(sqlContent, true)
	if err != nil {
		return errs.Parse("splitting SQL statements: %v", err)
	}
	for _, stmt := range statements {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := p.parseStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseStatement(stmt string) error {
	result, err := pg_query.Parse(stmt)
	if err != nil {
		return errs.Parse("%v in statement %q", err, truncate(stmt, 120))
	}
	for _, raw := range result.Stmts {
		if raw.Stmt == nil {
			continue
		}
		if err := p.processStatement(raw.Stmt); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (p *Parser) processStatement(node *pg_query.Node) error {
	switch n := node.Node.(type) {
	case *pg_query.Node_CreateSchemaStmt:
		return p.parseCreateSchema(n.CreateSchemaStmt)
	case *pg_query.Node_CreateExtensionStmt:
		return p.parseCreateExtension(n.CreateExtensionStmt)
	case *pg_query.Node_CreateEnumStmt:
		return p.parseCreateEnum(n.CreateEnumStmt)
	case *pg_query.Node_CreateDomainStmt:
		return p.parseCreateDomain(n.CreateDomainStmt)
	case *pg_query.Node_CreateSeqStmt:
		return p.parseCreateSequence(n.CreateSeqStmt)
	case *pg_query.Node_CreateStmt:
		return p.parseCreateTable(n.CreateStmt)
	case *pg_query.Node_AlterTableStmt:
		return p.parseAlterTable(n.AlterTableStmt)
	case *pg_query.Node_IndexStmt:
		return p.parseCreateIndex(n.IndexStmt)
	case *pg_query.Node_ViewStmt:
		return p.parseCreateView(n.ViewStmt)
	case *pg_query.Node_CreateTableAsStmt:
		return p.parseCreateTableAs(n.CreateTableAsStmt)
	case *pg_query.Node_CreateFunctionStmt:
		return p.parseCreateFunction(n.CreateFunctionStmt)
	case *pg_query.Node_CreateTrigStmt:
		return p.parseCreateTrigger(n.CreateTrigStmt)
	case *pg_query.Node_CreatePolicyStmt:
		return p.parseCreatePolicy(n.CreatePolicyStmt)
	case *pg_query.Node_GrantStmt:
		return p.parseGrant(n.GrantStmt)
	case *pg_query.Node_AlterOwnerStmt:
		return p.parseAlterOwner(n.AlterOwnerStmt)
	case *pg_query.Node_AlterDefaultPrivilegesStmt:
		return p.parseAlterDefaultPrivileges(n.AlterDefaultPrivilegesStmt)
	default:
		p.schema.Unsupported = append(p.schema.Unsupported,
			fmt.Sprintf("statement kind %T is outside the schema model and was skipped", n))
		return nil
	}
}

func extractRangeVar(rv *pg_query.RangeVar) (namespace, name string) {
	namespace = rv.Schemaname
	if namespace == "" {
		namespace = ir.DefaultNamespace
	}
	return namespace, rv.Relname
}

func extractNameList(nodes []*pg_query.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := n.GetString_(); s != nil {
			out = append(out, s.Sval)
		}
	}
	return out
}

func extractStringValue(node *pg_query.Node) string {
	if node == nil {
		return ""
	}
	switch n := node.Node.(type) {
	case *pg_query.Node_String_:
		return n.String_.Sval
	case *pg_query.Node_AConst:
		if n.AConst.Val != nil {
			switch val := n.AConst.Val.(type) {
			case *pg_query.A_Const_Sval:
				return val.Sval.Sval
			case *pg_query.A_Const_Ival:
				return strconv.FormatInt(int64(val.Ival.Ival), 10)
			}
		}
	}
	return ""
}

func extractIntValue(node *pg_query.Node) (int64, bool) {
	if node == nil {
		return 0, false
	}
	switch n := node.Node.(type) {
	case *pg_query.Node_Integer:
		return n.Integer.Ival, true
	case *pg_query.Node_AConst:
		if n.AConst.Val != nil {
			if iv, ok := n.AConst.Val.(*pg_query.A_Const_Ival); ok {
				return int64(iv.Ival.Ival), true
			}
		}
	}
	return 0, false
}

// deparseStmt renders a full statement node (e.g. a SelectStmt
// standing in for a view query) back to SQL text.
func deparseStmt(node *pg_query.Node) string {
	if node == nil {
		return ""
	}
	stmt := &pg_query.RawStmt{Stmt: node}
	result := &pg_query.ParseResult{Stmts: []*pg_query.RawStmt{stmt}}
	rendered, err := pg_query.Deparse(result)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(rendered)
}

func parseTypeName(typeName *pg_query.TypeName) string {
	if typeName == nil || len(typeName.Names) == 0 {
		return ""
	}
	parts := make([]string, 0, len(typeName.Names))
	for _, n := range typeName.Names {
		if s := n.GetString_(); s != nil {
			parts = append(parts, s.Sval)
		}
	}
	dataType := ir.NormalizeTypeName(strings.Join(parts, "."))

	if len(typeName.Typmods) > 0 {
		mods := make([]string, 0, len(typeName.Typmods))
		for _, mod := range typeName.Typmods {
			if aConst := mod.GetAConst(); aConst != nil {
				if iv, ok := aConst.Val.(*pg_query.A_Const_Ival); ok {
					mods = append(mods, strconv.FormatInt(int64(iv.Ival.Ival), 10))
				}
			}
		}
		if len(mods) > 0 {
			dataType = fmt.Sprintf("%s(%s)", dataType, strings.Join(mods, ","))
		}
	}
	if len(typeName.ArrayBounds) > 0 {
		dataType += "[]"
	}
	return dataType
}

func extractDefaultValue(expr *pg_query.Node) string {
	if expr == nil {
		return ""
	}
	switch e := expr.Node.(type) {
	case *pg_query.Node_AConst:
		if e.AConst.Val != nil {
			switch val := e.AConst.Val.(type) {
			case *pg_query.A_Const_Sval:
				return "'" + val.Sval.Sval + "'"
			case *pg_query.A_Const_Ival:
				return strconv.FormatInt(int64(val.Ival.Ival), 10)
			case *pg_query.A_Const_Fval:
				return val.Fval.Fval
			case *pg_query.A_Const_Boolval:
				if val.Boolval.Boolval {
					return "true"
				}
				return "false"
			}
		}
		return "NULL"
	default:
		return extractExpressionText(expr)
	}
}

func mapReferentialAction(action string) string {
	switch action {
	case "r":
		return "RESTRICT"
	case "c":
		return "CASCADE"
	case "n":
		return "SET NULL"
	case "d":
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}
