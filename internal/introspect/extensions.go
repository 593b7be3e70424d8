package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

// buildExtensions is namespace-scoped to match the other build steps'
// signature, but extensions are database-wide objects; it only
// records those installed into ns, and relies on Introspect's
// namespace loop (which may call this more than once for overlapping
// installs) writing idempotently keyed by extension name.
func (b *builder) buildExtensions(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT e.extname, e.extversion, n.nspname
		FROM pg_extension e
		JOIN pg_namespace n ON n.oid = e.extnamespace
		WHERE n.nspname = $1
	`, ns)
	if err != nil {
		return scanErr(err, "extensions")
	}
	defer rows.Close()

	for rows.Next() {
		var name, version, installSchema string
		if err := rows.Scan(&name, &version, &installSchema); err != nil {
			return scanErr(err, "extension row")
		}
		b.schema.Extensions[name] = &ir.Extension{Name: name, Version: version, InstallSchema: installSchema}
	}
	return scanErr(rows.Err(), "extensions")
}
