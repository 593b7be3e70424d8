package diff

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		out, _ := io.ReadAll(r)
		done <- string(out)
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}

func TestDiffCmd_RequiresFromAndTo(t *testing.T) {
	DiffCmd.SetArgs([]string{})
	err := DiffCmd.Execute()
	assert.Error(t, err)
}

func TestDiffCmd_PrintsOperationsBetweenSources(t *testing.T) {
	DiffCmd.SetArgs([]string{
		"--from", "sql:../../testdata/schema/tables.sql",
		"--to", "sql:../../testdata/schema/tables.sql",
		"--to", "sql:../../testdata/schema/views.sql",
	})

	output := captureStdout(t, func() {
		if err := DiffCmd.Execute(); err != nil {
			t.Fatalf("diff command failed: %v", err)
		}
	})

	assert.Contains(t, output, "operation(s)")
	assert.Contains(t, output, "--- DDL ---")
}
