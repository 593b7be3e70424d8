// Package validate guards an apply against drift between the moment
// a plan was computed and the moment it executes. Spec §3: "the core
// guarantees that the ordered op list it produces is valid to execute
// ... on a schema identical to the `from` argument; it makes no
// guarantee if the live schema drifts between introspection and
// apply" — this package is the one collaborator responsible for
// catching that drift before DDL runs.
package validate

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ignore"
	"github.com/schemadrift/schemadrift/internal/introspect"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Guard re-introspects pool, applies the same ignore filtering the
// original plan used, and compares the result's fingerprint against
// the one a plan was computed against. It returns a Validation-kind
// error naming both fingerprints if they differ, nil otherwise.
func Guard(ctx context.Context, pool *pgxpool.Pool, expected *ir.Fingerprint, ignoreCfg *ignore.Config) error {
	current, err := introspect.IntrospectPool(ctx, pool, nil)
	if err != nil {
		return errs.Database(err, "re-introspecting target database for drift check")
	}
	ignore.Filter(current, ignoreCfg)

	actual, err := ir.ComputeFingerprint(current)
	if err != nil {
		return errs.Validation("computing current schema fingerprint: %v", err)
	}

	return compareFingerprints(expected, actual)
}

// compareFingerprints is the pure half of Guard's drift check, split
// out so it can be tested without a live database.
func compareFingerprints(expected, actual *ir.Fingerprint) error {
	if expected.Equal(actual) {
		return nil
	}
	return errs.Validation(
		"schema drift detected: plan was computed against fingerprint %s, database is now at %s; regenerate the plan against the current schema",
		expected, actual,
	)
}
