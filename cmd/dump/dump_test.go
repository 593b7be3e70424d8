package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpCmd_RequiresDB(t *testing.T) {
	DumpCmd.SetArgs([]string{"--user", "y"})
	assert.Error(t, DumpCmd.Execute())
}

func TestDumpCmd_RequiresUser(t *testing.T) {
	DumpCmd.SetArgs([]string{"--db", "x"})
	assert.Error(t, DumpCmd.Execute())
}
