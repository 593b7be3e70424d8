package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func schemaWithTable(t *testing.T, name string) *ir.Schema {
	t.Helper()
	s := ir.New()
	s.Tables[ir.Qualified("public", name)] = &ir.Table{Namespace: "public", Name: name}
	return s
}

func TestComputeDrift_NoDriftWhenFingerprintsMatch(t *testing.T) {
	target := schemaWithTable(t, "users")
	current := schemaWithTable(t, "users")

	d, err := ComputeDrift(target, current, diff.Options{})
	require.NoError(t, err)
	assert.False(t, d.HasDrift)
	assert.Empty(t, d.Ops)
	assert.True(t, d.Expected.Equal(d.Actual))
}

func TestComputeDrift_DriftProducesOps(t *testing.T) {
	target := schemaWithTable(t, "users")
	current := ir.New()

	d, err := ComputeDrift(target, current, diff.Options{})
	require.NoError(t, err)
	assert.True(t, d.HasDrift)
	assert.NotEmpty(t, d.Ops)
	assert.False(t, d.Expected.Equal(d.Actual))
}

func TestNewBaseline_DriftFromBaselineMatchesComputeDrift(t *testing.T) {
	from := schemaWithTable(t, "users")
	baseline, err := NewBaseline(from, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, baseline.SourceCount)

	same := schemaWithTable(t, "users")
	drifted, _, err := DriftFromBaseline(baseline, same)
	require.NoError(t, err)
	assert.False(t, drifted)

	changed := ir.New()
	drifted, actual, err := DriftFromBaseline(baseline, changed)
	require.NoError(t, err)
	assert.True(t, drifted)
	assert.False(t, baseline.Fingerprint.Equal(actual))
}

func TestEstimate_SkipsNonHazardousOps(t *testing.T) {
	ops := []diff.MigrationOp{diff.CreateSchema{Namespace: &ir.Namespace{Name: "app"}}}
	estimates := Estimate(ops, nil, DefaultSizeThresholds())
	assert.Empty(t, estimates)
}

func TestEstimate_ClassifiesBySizeThresholds(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropTable{Namespace: "public", Name: "events"}}
	rowCounts := map[string]int64{"public.events": 5_000_000}

	estimates := Estimate(ops, rowCounts, DefaultSizeThresholds())
	require.Len(t, estimates, 1)
	assert.Equal(t, SizeLarge, estimates[0].SizeClass)
	assert.Contains(t, estimates[0].Note, "minutes")
}

func TestEstimate_MissingRowCountDefaultsToSmall(t *testing.T) {
	ops := []diff.MigrationOp{diff.DropTable{Namespace: "public", Name: "events"}}
	estimates := Estimate(ops, nil, DefaultSizeThresholds())
	require.Len(t, estimates, 1)
	assert.Equal(t, SizeSmall, estimates[0].SizeClass)
}
