package pgschema

import "github.com/schemadrift/schemadrift/internal/errs"

// Error is the core's error type (spec §7): every error this package
// returns is either this type or wraps it.
type Error = errs.Error

// Kind classifies an Error into one of the five buckets spec §7 names.
type Kind = errs.Kind

const (
	KindParse      = errs.KindParse
	KindDatabase   = errs.KindDatabase
	KindValidation = errs.KindValidation
	KindLint       = errs.KindLint
	KindPlanning   = errs.KindPlanning
)

// AsError extracts an *Error from err's chain, the same way
// errors.As(err, &target) would.
func AsError(err error, target **Error) bool {
	return errs.As(err, target)
}
