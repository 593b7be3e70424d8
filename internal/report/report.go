// Package report implements the three read-only reports spec §2 names
// as external collaborators and SPEC_FULL.md supplements from the
// original implementation's src/baseline and src/estimate modules:
// drift (is the live database out of sync with the source tree?),
// baseline (trust a schema's current fingerprint without re-diffing),
// and estimate (how long will this plan's lock hazards block traffic?).
package report

import (
	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Drift is the result of comparing a target schema (usually parsed
// from source files) against a live database's current state.
type Drift struct {
	HasDrift bool
	Expected *ir.Fingerprint
	Actual   *ir.Fingerprint
	Ops      []diff.MigrationOp
}

// ComputeDrift reports whether current has drifted from target: its
// fingerprint no longer matches, and if so what operations would
// bring it back in line. Fingerprints are compared first since that's
// the "cheap equality check" spec §6 calls out; Diff only runs when
// they disagree.
func ComputeDrift(target, current *ir.Schema, opts diff.Options) (*Drift, error) {
	expected, err := ir.ComputeFingerprint(target)
	if err != nil {
		return nil, err
	}
	actual, err := ir.ComputeFingerprint(current)
	if err != nil {
		return nil, err
	}

	d := &Drift{Expected: expected, Actual: actual}
	if expected.Equal(actual) {
		return d, nil
	}
	d.HasDrift = true

	ops, err := diff.Diff(current, target, opts)
	if err != nil {
		return nil, err
	}
	d.Ops = ops
	return d, nil
}
