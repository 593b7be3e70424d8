package ir

import (
	"sort"

	"github.com/schemadrift/schemadrift/internal/errs"
)

// Finalize runs the spec §4.2 finalize algorithm: it attaches every
// pending policy to its target table, applies pending owners, merges
// pending grants, and subtracts pending revokes. In strict mode an
// unresolved pending policy is a Parse error ("unknown target table");
// in lenient mode unresolved policies are left in the pending list so a
// later Finalize(strict) call (after a multi-file merge) can retry.
// Unresolved owners, grants, and revokes are never an error, in either
// mode: they stay in their pending lists (see UnresolvedPendingCount).
func (s *Schema) Finalize(strict bool) error {
	if err := s.finalizePolicies(strict); err != nil {
		return err
	}
	s.finalizeOwners(strict)
	s.finalizeGrants(strict)
	s.finalizeRevokes(strict)
	return nil
}

func (s *Schema) finalizePolicies(strict bool) error {
	var remaining []*PendingPolicy
	for _, pp := range s.PendingPolicies {
		table, ok := s.Tables[Qualified(pp.Namespace, pp.Table)]
		if !ok {
			if strict {
				return errs.Parse("unknown target table %s for policy %s", Qualified(pp.Namespace, pp.Table), pp.Policy.Name)
			}
			remaining = append(remaining, pp)
			continue
		}
		table.Policies = append(table.Policies, pp.Policy)
		sort.Slice(table.Policies, func(i, j int) bool { return table.Policies[i].Name < table.Policies[j].Name })
	}
	s.PendingPolicies = remaining
	return nil
}

func (s *Schema) finalizeOwners(strict bool) {
	var remaining []*PendingOwner
	for _, po := range s.PendingOwners {
		if obj := s.lookupGrantable(po.Class, po.Key); obj != nil {
			obj.SetOwner(po.Owner)
		} else if strict {
			// Strict mode surfaces unresolved owners as a validation
			// concern the caller can inspect via UnresolvedPendingCount,
			// rather than aborting: an OWNER TO statement for an object
			// that never materializes is unusual but not fatal to the
			// rest of the schema.
			remaining = append(remaining, po)
		} else {
			remaining = append(remaining, po)
		}
	}
	s.PendingOwners = remaining
}

func (s *Schema) finalizeGrants(strict bool) {
	var remaining []*PendingGrant
	for _, pg := range s.PendingGrants {
		obj := s.lookupGrantable(pg.Class, pg.Key)
		if obj == nil {
			remaining = append(remaining, pg)
			continue
		}
		mergeGrant(obj, pg.Grant)
	}
	s.PendingGrants = remaining
}

// mergeGrant merges g into obj's grant list by grantee: the same
// grantee's privilege sets union; duplicate grantee+privilege+
// with-grant-option is idempotent (spec §4.2 step 3).
func mergeGrant(obj grantable, g *Grant) {
	grants := obj.GetGrants()
	for _, existing := range grants {
		if existing.Grantee == g.Grantee {
			existing.AddPrivileges(g.Privileges...)
			if g.WithGrantOption {
				existing.WithGrantOption = true
			}
			return
		}
	}
	clone := &Grant{Grantee: g.Grantee, Privileges: append([]string(nil), g.Privileges...), WithGrantOption: g.WithGrantOption}
	obj.SetGrants(append(grants, clone))
}

func (s *Schema) finalizeRevokes(strict bool) {
	var remaining []*PendingRevoke
	for _, pr := range s.PendingRevokes {
		obj := s.lookupGrantable(pr.Class, pr.Key)
		if obj == nil {
			remaining = append(remaining, pr)
			continue
		}
		applyRevoke(obj, pr)
	}
	s.PendingRevokes = remaining
}

// applyRevoke subtracts pr's privileges from matching grants, dropping
// grants that become empty; when GrantOptionFor is set it instead just
// clears the with-grant-option flag and keeps the privileges (spec §4.2
// step 4).
func applyRevoke(obj grantable, pr *PendingRevoke) {
	grants := obj.GetGrants()
	kept := grants[:0:0]
	for _, g := range grants {
		if g.Grantee != pr.Grantee {
			kept = append(kept, g)
			continue
		}
		if pr.GrantOptionFor {
			g.WithGrantOption = false
			kept = append(kept, g)
			continue
		}
		if g.RemovePrivileges(pr.Privileges...) {
			continue // dropped
		}
		kept = append(kept, g)
	}
	obj.SetGrants(kept)
}

// UnresolvedPendingCount reports how many pending items remain
// unattached, for callers deciding whether a lenient parse succeeded
// cleanly enough to merge further files.
func (s *Schema) UnresolvedPendingCount() int {
	return len(s.PendingPolicies) + len(s.PendingOwners) + len(s.PendingGrants) + len(s.PendingRevokes)
}
