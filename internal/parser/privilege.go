package parser

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/ir"
)

// extractRoleName resolves a RoleSpec node to its name, mapping the
// special role kinds (PUBLIC, CURRENT_USER, ...) to their keyword form.
func extractRoleName(node *pg_query.Node) string {
	if node == nil {
		return ""
	}
	spec := node.GetRoleSpec()
	if spec == nil {
		return ""
	}
	if spec.Rolename != "" {
		return spec.Rolename
	}
	switch spec.Roletype {
	case pg_query.RoleSpecType_ROLESPEC_PUBLIC:
		return "PUBLIC"
	case pg_query.RoleSpecType_ROLESPEC_CURRENT_USER:
		return "CURRENT_USER"
	case pg_query.RoleSpecType_ROLESPEC_CURRENT_ROLE:
		return "CURRENT_ROLE"
	case pg_query.RoleSpecType_ROLESPEC_SESSION_USER:
		return "SESSION_USER"
	}
	return ""
}

func grantObjectClass(objtype pg_query.ObjectType) ir.ObjectClass {
	switch objtype {
	case pg_query.ObjectType_OBJECT_SEQUENCE:
		return ir.ObjectClassSequence
	case pg_query.ObjectType_OBJECT_FUNCTION, pg_query.ObjectType_OBJECT_PROCEDURE, pg_query.ObjectType_OBJECT_ROUTINE:
		return ir.ObjectClassFunction
	case pg_query.ObjectType_OBJECT_SCHEMA:
		return ir.ObjectClassSchema
	case pg_query.ObjectType_OBJECT_TYPE, pg_query.ObjectType_OBJECT_DOMAIN:
		return ir.ObjectClassType
	case pg_query.ObjectType_OBJECT_VIEW:
		return ir.ObjectClassView
	default:
		return ir.ObjectClassTable
	}
}

// grantObjectKeys resolves the names a GRANT/REVOKE/OWNER statement
// targets into schema object keys, matching the shape Objects takes
// for each Objtype (a RangeVar per table/sequence/view, a bare name
// for a schema, an ObjectWithArgs for a function overload).
func grantObjectKeys(class ir.ObjectClass, objects []*pg_query.Node) (keys []string, argTypes map[string][]string) {
	argTypes = make(map[string][]string)
	for _, obj := range objects {
		switch class {
		case ir.ObjectClassSchema:
			if s := obj.GetString_(); s != nil {
				keys = append(keys, s.Sval)
			}
		case ir.ObjectClassFunction:
			if owa := obj.GetObjectWithArgs(); owa != nil {
				namespace, name := splitQualifiedNameNodes(owa.Objname)
				types := make([]string, 0, len(owa.Objargs))
				for _, t := range owa.Objargs {
					if tn := t.GetTypeName(); tn != nil {
						types = append(types, parseTypeName(tn))
					}
				}
				key := ir.FunctionKey(namespace, name, types)
				keys = append(keys, key)
				argTypes[key] = types
			}
		default:
			if rv := obj.GetRangeVar(); rv != nil {
				namespace, name := extractRangeVar(rv)
				keys = append(keys, ir.Qualified(namespace, name))
			}
		}
	}
	return keys, argTypes
}

func (p *Parser) parseGrant(stmt *pg_query.GrantStmt) error {
	class := grantObjectClass(stmt.Objtype)
	keys, argTypes := grantObjectKeys(class, stmt.Objects)

	privileges := make([]string, 0, len(stmt.Privileges))
	if len(stmt.Privileges) == 0 {
		privileges = ir.AllPrivileges(class)
	}
	for _, priv := range stmt.Privileges {
		if ap := priv.GetAccessPriv(); ap != nil {
			privileges = append(privileges, strings.ToLower(ap.PrivName))
		}
	}

	_ = argTypes // function overloads are already disambiguated within each key
	for _, granteeNode := range stmt.Grantees {
		grantee := extractRoleName(granteeNode)
		if grantee == "" {
			continue
		}
		for _, key := range keys {
			p.applyGrantOrRevoke(stmt.IsGrant, class, key, grantee, privileges, stmt.GrantOption)
		}
	}
	return nil
}

func (p *Parser) applyGrantOrRevoke(isGrant bool, class ir.ObjectClass, key, grantee string, privileges []string, grantOption bool) {
	if isGrant {
		p.schema.PendingGrants = append(p.schema.PendingGrants, &ir.PendingGrant{
			Class: class, Key: key,
			Grant: &ir.Grant{Grantee: grantee, Privileges: privileges, WithGrantOption: grantOption},
		})
		return
	}
	p.schema.PendingRevokes = append(p.schema.PendingRevokes, &ir.PendingRevoke{
		Class: class, Key: key, Grantee: grantee, Privileges: privileges, GrantOptionFor: grantOption,
	})
}

func (p *Parser) parseAlterOwner(stmt *pg_query.AlterOwnerStmt) error {
	class := grantObjectClass(stmt.ObjectType)
	owner := extractRoleName(stmt.Newowner)
	if owner == "" {
		return nil
	}

	var key string
	if stmt.Relation != nil {
		namespace, name := extractRangeVar(stmt.Relation)
		key = ir.Qualified(namespace, name)
	} else if stmt.Object != nil {
		switch class {
		case ir.ObjectClassSchema:
			key = extractStringValue(stmt.Object)
		case ir.ObjectClassFunction:
			if owa := stmt.Object.GetObjectWithArgs(); owa != nil {
				namespace, name := splitQualifiedNameNodes(owa.Objname)
				types := make([]string, 0, len(owa.Objargs))
				for _, t := range owa.Objargs {
					if tn := t.GetTypeName(); tn != nil {
						types = append(types, parseTypeName(tn))
					}
				}
				key = ir.FunctionKey(namespace, name, types)
			}
		default:
			if list := stmt.Object.GetList(); list != nil {
				namespace, name := splitQualifiedNameNodes(list.Items)
				key = ir.Qualified(namespace, name)
			}
		}
	}
	if key == "" {
		return nil
	}
	p.schema.PendingOwners = append(p.schema.PendingOwners, &ir.PendingOwner{Class: class, Key: key, Owner: owner})
	return nil
}

func (p *Parser) parseAlterDefaultPrivileges(stmt *pg_query.AlterDefaultPrivilegesStmt) error {
	if stmt.Action == nil {
		return nil
	}
	var role, schemaScope string
	for _, opt := range stmt.Options {
		defElem := opt.GetDefElem()
		if defElem == nil {
			continue
		}
		switch defElem.Defname {
		case "roles":
			if list := defElem.Arg.GetList(); list != nil && len(list.Items) > 0 {
				role = extractRoleName(list.Items[0])
			}
		case "schemas":
			if list := defElem.Arg.GetList(); list != nil && len(list.Items) > 0 {
				schemaScope = extractStringValue(list.Items[0])
			}
		}
	}

	class := grantObjectClass(stmt.Action.Objtype)
	privileges := make([]string, 0, len(stmt.Action.Privileges))
	if len(stmt.Action.Privileges) == 0 {
		privileges = ir.AllPrivileges(class)
	}
	for _, priv := range stmt.Action.Privileges {
		if ap := priv.GetAccessPriv(); ap != nil {
			privileges = append(privileges, strings.ToLower(ap.PrivName))
		}
	}

	for _, granteeNode := range stmt.Action.Grantees {
		grantee := extractRoleName(granteeNode)
		if grantee == "" {
			continue
		}
		p.schema.DefaultPrivileges = append(p.schema.DefaultPrivileges, &ir.DefaultPrivilege{
			Role: role, SchemaScope: schemaScope, ObjectClass: class,
			Grantee: grantee, Privileges: privileges, WithGrantOption: stmt.Action.GrantOption,
		})
	}
	return nil
}
