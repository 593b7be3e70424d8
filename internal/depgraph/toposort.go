package depgraph

import (
	"fmt"
	"sort"
)

// CycleError reports a topological sort that could not complete
// because the remaining items form a cycle. Items lists every item
// that was still unprocessed when the cycle was detected, so the
// caller can report all of them rather than guessing at just one edge.
type CycleError struct {
	Items []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected among: %v", e.Items)
}

// TopologicalSort orders items so that every item appears after the
// items its key's dependency set names (spec §4.8: Kahn's algorithm,
// used by the cross-file loader to order files by referenced objects
// and by the planner to order CreateTable/DropTable ops by foreign
// key reference). key extracts an item's own identity; deps extracts
// the set of identities it depends on. Ties among items with no
// remaining dependency are broken lexicographically by key, so the
// result is deterministic.
func TopologicalSort[T any](items []T, key func(T) string, deps func(T) []string) ([]T, error) {
	byKey := make(map[string]T, len(items))
	indegree := make(map[string]int, len(items))
	dependents := make(map[string][]string, len(items))

	for _, item := range items {
		k := key(item)
		byKey[k] = item
		if _, ok := indegree[k]; !ok {
			indegree[k] = 0
		}
	}
	for _, item := range items {
		k := key(item)
		for _, dep := range deps(item) {
			if _, ok := byKey[dep]; !ok {
				continue // dependency outside this item set; not our concern to order
			}
			indegree[k]++
			dependents[dep] = append(dependents[dep], k)
		}
	}

	var ready []string
	for k, deg := range indegree {
		if deg == 0 {
			ready = append(ready, k)
		}
	}
	sort.Strings(ready)

	result := make([]T, 0, len(items))
	for len(ready) > 0 {
		sort.Strings(ready)
		k := ready[0]
		ready = ready[1:]
		result = append(result, byKey[k])
		for _, dependent := range dependents[k] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(result) != len(items) {
		var remaining []string
		for k, deg := range indegree {
			if deg > 0 {
				remaining = append(remaining, k)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Items: remaining}
	}
	return result, nil
}
