package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanCmd_RequiresSource(t *testing.T) {
	PlanCmd.SetArgs([]string{"--db", "x", "--user", "y"})
	assert.Error(t, PlanCmd.Execute())
}

func TestPlanCmd_RequiresDB(t *testing.T) {
	PlanCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql", "--user", "y"})
	assert.Error(t, PlanCmd.Execute())
}
