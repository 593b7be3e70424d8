package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCmd_RequiresSource(t *testing.T) {
	EstimateCmd.SetArgs([]string{"--db", "x", "--user", "y"})
	assert.Error(t, EstimateCmd.Execute())
}

func TestEstimateCmd_RequiresDB(t *testing.T) {
	EstimateCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql", "--user", "y"})
	assert.Error(t, EstimateCmd.Execute())
}
