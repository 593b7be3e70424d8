package diff

import (
	"github.com/schemadrift/schemadrift/internal/ir"
	"github.com/schemadrift/schemadrift/internal/utils"
)

// diffOwnerAndGrants emits AlterOwner/GrantPrivileges/RevokePrivileges
// ops for one object, opportunistically, when the corresponding
// Options flag is set (spec §4.4.2 "Ownership and grants"). class,
// namespace, name, argTypes identify the target object for
// serialization; argTypes is nil except for functions.
func diffOwnerAndGrants(opts Options, class ir.ObjectClass, namespace, name string, argTypes []string, fromOwner, toOwner string, fromGrants, toGrants []*ir.Grant) []MigrationOp {
	var ops []MigrationOp
	if opts.ManageOwnership && fromOwner != toOwner && toOwner != "" {
		ops = append(ops, AlterOwner{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, NewOwner: toOwner})
	}
	if opts.ManageGrants {
		ops = append(ops, diffGrants(class, namespace, name, argTypes, fromGrants, toGrants)...)
	}
	return ops
}

// diffGrants computes the set-algebra delta between two grant lists by
// (grantee, privilege) pair (spec §4.4.2): one GrantPrivileges op per
// newly-present privilege set, one RevokePrivileges per removed set,
// and, when the with-grant-option flag transitions, one more op: a
// Revoke(grant_option_for) when it turns off, a Grant with the option
// when it turns on.
func diffGrants(class ir.ObjectClass, namespace, name string, argTypes []string, from, to []*ir.Grant) []MigrationOp {
	var ops []MigrationOp

	fromByGrantee := grantsByGrantee(from)
	toByGrantee := grantsByGrantee(to)

	grantees := make(map[string]bool)
	for g := range fromByGrantee {
		grantees[g] = true
	}
	for g := range toByGrantee {
		grantees[g] = true
	}

	for _, grantee := range utils.SortedKeys(grantees) {
		fromGrant, hadFrom := fromByGrantee[grantee]
		toGrant, hasTo := toByGrantee[grantee]

		switch {
		case !hadFrom && hasTo:
			ops = append(ops, GrantPrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grant: toGrant})
		case hadFrom && !hasTo:
			ops = append(ops, RevokePrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grantee: grantee, Privileges: fromGrant.Privileges})
		case hadFrom && hasTo:
			added := privilegeSetDiff(toGrant.Privileges, fromGrant.Privileges)
			removed := privilegeSetDiff(fromGrant.Privileges, toGrant.Privileges)
			if len(added) > 0 {
				ops = append(ops, GrantPrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grant: &ir.Grant{Grantee: grantee, Privileges: added, WithGrantOption: toGrant.WithGrantOption}})
			}
			if len(removed) > 0 {
				ops = append(ops, RevokePrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grantee: grantee, Privileges: removed})
			}
			if fromGrant.WithGrantOption && !toGrant.WithGrantOption {
				ops = append(ops, RevokePrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grantee: grantee, Privileges: toGrant.Privileges, GrantOptionFor: true})
			} else if !fromGrant.WithGrantOption && toGrant.WithGrantOption {
				ops = append(ops, GrantPrivileges{Class: class, Namespace: namespace, Name: name, ArgTypes: argTypes, Grant: &ir.Grant{Grantee: grantee, Privileges: toGrant.Privileges, WithGrantOption: true}})
			}
		}
	}
	return ops
}

func grantsByGrantee(grants []*ir.Grant) map[string]*ir.Grant {
	m := make(map[string]*ir.Grant, len(grants))
	for _, g := range grants {
		m[g.Grantee] = g
	}
	return m
}

// privilegeSetDiff returns the privileges in a that aren't in b.
func privilegeSetDiff(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, p := range b {
		inB[p] = true
	}
	var out []string
	for _, p := range a {
		if !inB[p] {
			out = append(out, p)
		}
	}
	return out
}
