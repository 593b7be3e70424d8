package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func policyStatement(namespace, table string, p *ir.Policy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE POLICY %s ON %s", q(p.Name), qq(namespace, table))
	if !p.Permissive {
		b.WriteString(" AS RESTRICTIVE")
	}
	fmt.Fprintf(&b, " FOR %s", p.Command)
	if len(p.Roles) > 0 {
		fmt.Fprintf(&b, " TO %s", strings.Join(p.Roles, ", "))
	}
	if p.Using != "" {
		fmt.Fprintf(&b, " USING (%s)", p.Using)
	}
	if p.WithCheck != "" {
		fmt.Fprintf(&b, " WITH CHECK (%s)", p.WithCheck)
	}
	b.WriteString(";")
	return b.String()
}

func renderCreatePolicy(o diff.CreatePolicy) string {
	return policyStatement(o.Namespace, o.Table, o.Policy)
}

func renderAlterPolicy(o diff.AlterPolicy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER POLICY %s ON %s", q(o.Name), qq(o.Namespace, o.Table))
	if o.Changes.Roles != nil {
		fmt.Fprintf(&b, " TO %s", strings.Join(*o.Changes.Roles, ", "))
	}
	if o.Changes.Using != nil {
		fmt.Fprintf(&b, " USING (%s)", *o.Changes.Using)
	}
	if o.Changes.WithCheck != nil {
		fmt.Fprintf(&b, " WITH CHECK (%s)", *o.Changes.WithCheck)
	}
	b.WriteString(";")
	return b.String()
}
