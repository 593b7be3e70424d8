package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func TestCompareFingerprints_MatchIsNil(t *testing.T) {
	fp := &ir.Fingerprint{Hash: "abc123"}
	assert.NoError(t, compareFingerprints(fp, &ir.Fingerprint{Hash: "abc123"}))
}

func TestCompareFingerprints_MismatchIsValidationError(t *testing.T) {
	err := compareFingerprints(&ir.Fingerprint{Hash: "abc123"}, &ir.Fingerprint{Hash: "def456"})
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.Contains(t, err.Error(), "drift detected")
	}
}
