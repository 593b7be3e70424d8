package parser

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseCreatePolicy(stmt *pg_query.CreatePolicyStmt) error {
	if stmt.PolicyName == "" || stmt.Table == nil {
		return nil
	}
	namespace, tableName := extractRangeVar(stmt.Table)

	policy := &ir.Policy{
		Namespace:  namespace,
		Table:      tableName,
		Name:       stmt.PolicyName,
		Command:    policyCommand(stmt.CmdName),
		Permissive: stmt.Permissive,
	}
	if stmt.Qual != nil {
		policy.Using = ir.NormalizePolicyExpression(extractExpressionText(stmt.Qual))
	}
	if stmt.WithCheck != nil {
		policy.WithCheck = ir.NormalizePolicyExpression(extractExpressionText(stmt.WithCheck))
	}
	for _, r := range stmt.Roles {
		if role := extractRoleName(r); role != "" {
			policy.Roles = append(policy.Roles, role)
		}
	}
	if len(policy.Roles) == 0 {
		policy.Roles = []string{"PUBLIC"}
	}
	policy.Roles = ir.NormalizeRoles(policy.Roles)

	if table, ok := p.schema.Tables[ir.Qualified(namespace, tableName)]; ok {
		table.Policies = append(table.Policies, policy)
		return nil
	}
	// The table may be defined later in the same load (spec §3
	// Lifecycles); queue it for Finalize to attach.
	p.schema.PendingPolicies = append(p.schema.PendingPolicies, &ir.PendingPolicy{
		Namespace: namespace, Table: tableName, Policy: policy,
	})
	return nil
}

func policyCommand(cmdName string) ir.PolicyCommand {
	switch strings.ToLower(cmdName) {
	case "select", "r":
		return ir.PolicyCommandSelect
	case "insert", "a":
		return ir.PolicyCommandInsert
	case "update", "w":
		return ir.PolicyCommandUpdate
	case "delete", "d":
		return ir.PolicyCommandDelete
	default:
		return ir.PolicyCommandAll
	}
}
