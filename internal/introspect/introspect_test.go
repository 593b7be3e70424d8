package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestStripCheckPrefix(t *testing.T) {
	assert.Equal(t, "total >= 0", stripCheckPrefix("CHECK (total >= 0)"))
	assert.Equal(t, "not wrapped", stripCheckPrefix("not wrapped"))
}

func TestParseIndexColumnDef(t *testing.T) {
	assert.Equal(t, ir.IndexColumn{Expression: "created_at", Direction: "DESC"}, parseIndexColumnDef("created_at DESC"))
	assert.Equal(t, ir.IndexColumn{Expression: "lower(email)"}, parseIndexColumnDef("lower(email)"))
}

func TestParseFunctionArguments(t *testing.T) {
	args := parseFunctionArguments("a integer, OUT b text, c boolean DEFAULT true")
	if assert.Len(t, args, 3) {
		assert.Equal(t, "a", args[0].Name)
		assert.Equal(t, "integer", args[0].DataType)
		assert.Equal(t, ir.ArgIn, args[0].Mode)

		assert.Equal(t, "b", args[1].Name)
		assert.Equal(t, ir.ArgOut, args[1].Mode)

		assert.Equal(t, "c", args[2].Name)
		if assert.NotNil(t, args[2].Default) {
			assert.Equal(t, "true", *args[2].Default)
		}
	}
}

func TestTriggerTimingAndEvents(t *testing.T) {
	mask := int16(tgBefore | tgUpdate | tgInsert)
	assert.Equal(t, ir.TriggerTimingBefore, triggerTiming(mask))
	assert.ElementsMatch(t, []ir.TriggerEvent{ir.TriggerEventInsert, ir.TriggerEventUpdate}, triggerEvents(mask))
}

func TestFKAction(t *testing.T) {
	assert.Equal(t, "CASCADE", fkAction("c"))
	assert.Equal(t, "NO ACTION", fkAction("a"))
}
