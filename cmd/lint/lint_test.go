package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLintCmd_RequiresSource(t *testing.T) {
	LintCmd.SetArgs([]string{"--db", "x", "--user", "y"})
	assert.Error(t, LintCmd.Execute())
}

func TestLintCmd_RequiresDB(t *testing.T) {
	LintCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql", "--user", "y"})
	assert.Error(t, LintCmd.Execute())
}
