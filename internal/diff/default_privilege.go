package diff

import "github.com/schemadrift/schemadrift/internal/ir"

// diffDefaultPrivileges compares the ALTER DEFAULT PRIVILEGES entries
// of the two schemas by their (role, schema scope, object class,
// grantee) identity, emitting an add or remove op for each side of
// the delta.
func diffDefaultPrivileges(from, to *ir.Schema) []MigrationOp {
	var ops []MigrationOp
	fromByKey := defaultPrivilegesByKey(from.DefaultPrivileges)
	toByKey := defaultPrivilegesByKey(to.DefaultPrivileges)

	for key, dp := range toByKey {
		if old, ok := fromByKey[key]; !ok || !defaultPrivilegeEqual(old, dp) {
			ops = append(ops, AlterDefaultPrivileges{DefaultPrivilege: dp})
		}
	}
	for key, dp := range fromByKey {
		if _, ok := toByKey[key]; !ok {
			ops = append(ops, AlterDefaultPrivileges{DefaultPrivilege: dp, Revoke: true})
		}
	}
	return ops
}

func defaultPrivilegesByKey(dps []*ir.DefaultPrivilege) map[string]*ir.DefaultPrivilege {
	m := make(map[string]*ir.DefaultPrivilege, len(dps))
	for _, dp := range dps {
		m[defaultPrivilegeKey(dp)] = dp
	}
	return m
}

func defaultPrivilegeKey(dp *ir.DefaultPrivilege) string {
	return dp.Role + "|" + dp.SchemaScope + "|" + string(dp.ObjectClass) + "|" + dp.Grantee
}

func defaultPrivilegeEqual(a, b *ir.DefaultPrivilege) bool {
	if len(a.Privileges) != len(b.Privileges) || a.WithGrantOption != b.WithGrantOption {
		return false
	}
	for i := range a.Privileges {
		if a.Privileges[i] != b.Privileges[i] {
			return false
		}
	}
	return true
}
