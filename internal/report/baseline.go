package report

import "github.com/schemadrift/schemadrift/internal/ir"

// Baseline is a trust anchor: a schema's fingerprint recorded at a
// moment the caller asserts it is correct, so a later drift check can
// compare the live database against this recorded hash instead of
// re-parsing and re-diffing the full source tree every time (grounded
// on the original implementation's src/baseline module).
type Baseline struct {
	Fingerprint *ir.Fingerprint
	SourceCount int // number of source specs the baselined schema was resolved from (a glob spec counts once)
}

// NewBaseline records from's fingerprint as a baseline. sourceCount is
// informational (surfaced in `schemadrift baseline` output) and plays
// no role in the comparison itself.
func NewBaseline(from *ir.Schema, sourceCount int) (*Baseline, error) {
	fp, err := ir.ComputeFingerprint(from)
	if err != nil {
		return nil, err
	}
	return &Baseline{Fingerprint: fp, SourceCount: sourceCount}, nil
}

// DriftFromBaseline compares a live schema's fingerprint against a
// previously recorded Baseline, without needing the original source
// files or a full Diff — the "drift without re-diffing the full
// source tree" shortcut the baseline report exists for. Callers that
// need the actual operations on a mismatch should fall back to
// ComputeDrift with the real target schema.
func DriftFromBaseline(baseline *Baseline, current *ir.Schema) (bool, *ir.Fingerprint, error) {
	actual, err := ir.ComputeFingerprint(current)
	if err != nil {
		return false, nil, err
	}
	return !baseline.Fingerprint.Equal(actual), actual, nil
}
