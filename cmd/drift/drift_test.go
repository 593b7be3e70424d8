package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriftCmd_RequiresSource(t *testing.T) {
	DriftCmd.SetArgs([]string{"--db", "x", "--user", "y"})
	assert.Error(t, DriftCmd.Execute())
}

func TestDriftCmd_RequiresDB(t *testing.T) {
	DriftCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql", "--user", "y"})
	assert.Error(t, DriftCmd.Execute())
}
