package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
)

func grantTargetClause(class, namespace, name string, argTypes []string) string {
	switch class {
	case "FUNCTION":
		return fmt.Sprintf("FUNCTION %s(%s)", qq(namespace, name), strings.Join(argTypes, ", "))
	case "SCHEMA":
		return fmt.Sprintf("SCHEMA %s", q(name))
	default:
		return fmt.Sprintf("%s %s", class, qq(namespace, name))
	}
}

func renderGrant(o diff.GrantPrivileges) string {
	grantee := o.Grant.Grantee
	stmt := fmt.Sprintf("GRANT %s ON %s TO %s", strings.Join(o.Grant.Privileges, ", "), grantTargetClause(string(o.Class), o.Namespace, o.Name, o.ArgTypes), grantee)
	if o.Grant.WithGrantOption {
		stmt += " WITH GRANT OPTION"
	}
	return stmt + ";"
}

func renderRevoke(o diff.RevokePrivileges) string {
	grantClause := "GRANT OPTION FOR "
	if !o.GrantOptionFor {
		grantClause = ""
	}
	return fmt.Sprintf("REVOKE %s%s ON %s FROM %s;", grantClause, strings.Join(o.Privileges, ", "), grantTargetClause(string(o.Class), o.Namespace, o.Name, o.ArgTypes), o.Grantee)
}

func renderAlterDefaultPrivileges(o diff.AlterDefaultPrivileges) string {
	d := o.DefaultPrivilege
	verb := "GRANT"
	preposition := "TO"
	if o.Revoke {
		verb = "REVOKE"
		preposition = "FROM"
	}

	var scope string
	if d.SchemaScope != "" {
		scope = fmt.Sprintf(" IN SCHEMA %s", q(d.SchemaScope))
	}

	return fmt.Sprintf("ALTER DEFAULT PRIVILEGES FOR ROLE %s%s %s %s ON %sS %s %s;",
		q(d.Role), scope, verb, strings.Join(d.Privileges, ", "), d.ObjectClass, preposition, d.Grantee)
}

func renderAlterOwner(o diff.AlterOwner) string {
	target := grantTargetClause(string(o.Class), o.Namespace, o.Name, o.ArgTypes)
	return fmt.Sprintf("ALTER %s OWNER TO %s;", target, q(o.NewOwner))
}
