// Package errs defines the error-kind taxonomy shared by every core
// component (spec §7): Parse, Database, Validation, Lint, and Planning
// errors, each carrying a message and wrapping the underlying cause.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the five buckets the core
// surfaces to its caller. Callers use errors.Is against the sentinel
// Kind values (ErrParse, ErrDatabase, ...) to branch on category.
type Kind int

const (
	KindParse Kind = iota
	KindDatabase
	KindValidation
	KindLint
	KindPlanning
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindDatabase:
		return "database"
	case KindValidation:
		return "validation"
	case KindLint:
		return "lint"
	case KindPlanning:
		return "planning"
	default:
		return "unknown"
	}
}

// Sentinel values for errors.Is comparisons. Error carries one of
// these as its Kind and unwraps to it, so `errors.Is(err, ErrParse)`
// works regardless of how deeply the error was wrapped.
var (
	ErrParse      = &sentinel{KindParse}
	ErrDatabase   = &sentinel{KindDatabase}
	ErrValidation = &sentinel{KindValidation}
	ErrLint       = &sentinel{KindLint}
	ErrPlanning   = &sentinel{KindPlanning}
)

type sentinel struct{ kind Kind }

func (s *sentinel) Error() string { return s.kind.String() }

// Error is the core's single error type. File and Line are populated
// for parse errors when the originating statement's position is known
// (spec §7: "Parse errors include file path and (when available)
// statement line").
type Error struct {
	Kind    Kind
	Message string
	File    string
	Line    int
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.File != "" {
		if e.Line > 0 {
			msg = fmt.Sprintf("%s (%s:%d)", msg, e.File, e.Line)
		} else {
			msg = fmt.Sprintf("%s (%s)", msg, e.File)
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	switch e.Kind {
	case KindParse:
		return ErrParse
	case KindDatabase:
		return ErrDatabase
	case KindValidation:
		return ErrValidation
	case KindLint:
		return ErrLint
	case KindPlanning:
		return ErrPlanning
	default:
		return nil
	}
}

// Is lets errors.Is(err, errs.ErrParse) succeed even when Cause is
// set (Unwrap only returns one of Cause or the sentinel).
func (e *Error) Is(target error) bool {
	s, ok := target.(*sentinel)
	if !ok {
		return false
	}
	return s.kind == e.Kind
}

func newErr(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Parse builds a Parse-kind error (malformed DDL, violated trigger
// constraint, unresolved cross-file reference, ambiguous duplicate).
func Parse(format string, args ...any) *Error { return newErr(KindParse, format, args...) }

// ParseAt builds a Parse-kind error annotated with file/line.
func ParseAt(file string, line int, format string, args ...any) *Error {
	e := newErr(KindParse, format, args...)
	e.File = file
	e.Line = line
	return e
}

// Database wraps a failure surfaced by the external introspection/apply layer.
func Database(cause error, format string, args ...any) *Error {
	e := newErr(KindDatabase, format, args...)
	e.Cause = cause
	return e
}

// Validation builds a Validation-kind error (invariant violated after parsing).
func Validation(format string, args ...any) *Error { return newErr(KindValidation, format, args...) }

// Lint builds a Lint-kind error (lint engine error severity; halts apply).
func Lint(format string, args ...any) *Error { return newErr(KindLint, format, args...) }

// Planning builds a Planning-kind error (unsortable cycle in the create set).
func Planning(format string, args ...any) *Error { return newErr(KindPlanning, format, args...) }

// SanitizeConnString elides the password component of a PostgreSQL
// connection string/URL before it is embedded in an error message
// (spec §7: "connection strings are sanitized in every error path").
func SanitizeConnString(dsn string) string {
	return sanitize(dsn)
}

// As is a thin re-export so callers don't need a second import just
// to type-assert an *Error out of an error chain.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}
