package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCmd_RequiresSource(t *testing.T) {
	ApplyCmd.SetArgs([]string{"--db", "x", "--user", "y"})
	assert.Error(t, ApplyCmd.Execute())
}

func TestApplyCmd_RequiresDB(t *testing.T) {
	ApplyCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql", "--user", "y"})
	assert.Error(t, ApplyCmd.Execute())
}
