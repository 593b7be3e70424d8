package baseline

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

func TestBaselineCmd_RequiresSource(t *testing.T) {
	BaselineCmd.SetArgs([]string{})
	assert.Error(t, BaselineCmd.Execute())
}

func TestBaselineCmd_RecordsFingerprintForSQLSources(t *testing.T) {
	BaselineCmd.SetArgs([]string{"--source", "sql:../../testdata/schema/tables.sql"})

	output := captureStdout(t, func() {
		if err := BaselineCmd.Execute(); err != nil {
			t.Fatalf("baseline command failed: %v", err)
		}
	})

	assert.Contains(t, output, "fingerprint:")
	assert.Contains(t, output, "source_count: 1")
}
