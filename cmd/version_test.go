package cmd

import (
	"testing"

	"github.com/schemadrift/schemadrift/internal/version"
)

func TestVersionCommandRuns(t *testing.T) {
	VersionCmd.SetArgs(nil)
	if err := VersionCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
}

func TestVersionString(t *testing.T) {
	if version.Version() == "" {
		t.Error("expected a non-empty version string")
	}
}
