package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FiltersBuiltins(t *testing.T) {
	refs := Extract(`SELECT count(*), lower(name), app_slugify(name) FROM users`, "public")
	assert.False(t, refs.Functions["public.count"])
	assert.False(t, refs.Functions["public.lower"])
	assert.True(t, refs.Functions["public.app_slugify"])
	assert.True(t, refs.Relations["public.users"])
}

func TestExtract_QualifiedNames(t *testing.T) {
	refs := Extract(`SELECT billing.compute_total(o.id) FROM billing.orders o`, "public")
	assert.True(t, refs.Functions["billing.compute_total"])
	assert.True(t, refs.Relations["billing.orders"])
}

func TestExtract_FunctionBodyExpression(t *testing.T) {
	refs := Extract(`tenant_id = current_tenant_id() AND status = 'active'`, "app")
	assert.True(t, refs.Functions["app.current_tenant_id"])
}

func TestExtract_ParseFailureReturnsEmpty(t *testing.T) {
	refs := Extract(`not valid &&& sql (((`, "public")
	require.NotNil(t, refs)
	assert.Empty(t, refs.Functions)
	assert.Empty(t, refs.Relations)
}

func TestTopologicalSort_OrdersByDependency(t *testing.T) {
	type item struct {
		name string
		deps []string
	}
	items := []item{
		{name: "orders", deps: []string{"users"}},
		{name: "users", deps: nil},
		{name: "line_items", deps: []string{"orders", "products"}},
		{name: "products", deps: nil},
	}
	sorted, err := TopologicalSort(items, func(i item) string { return i.name }, func(i item) []string { return i.deps })
	require.NoError(t, err)

	pos := make(map[string]int, len(sorted))
	for i, it := range sorted {
		pos[it.name] = i
	}
	assert.Less(t, pos["users"], pos["orders"])
	assert.Less(t, pos["orders"], pos["line_items"])
	assert.Less(t, pos["products"], pos["line_items"])
}

func TestTopologicalSort_DeterministicTieBreak(t *testing.T) {
	type item struct{ name string }
	items := []item{{name: "zebra"}, {name: "apple"}, {name: "mango"}}
	sorted, err := TopologicalSort(items, func(i item) string { return i.name }, func(i item) []string { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, []string{sorted[0].name, sorted[1].name, sorted[2].name})
}

func TestTopologicalSort_DetectsCycle(t *testing.T) {
	type item struct {
		name string
		deps []string
	}
	items := []item{
		{name: "a", deps: []string{"b"}},
		{name: "b", deps: []string{"a"}},
	}
	_, err := TopologicalSort(items, func(i item) string { return i.name }, func(i item) []string { return i.deps })
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Items)
}
