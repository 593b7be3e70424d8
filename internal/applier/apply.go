// Package applier executes a planned, linted migration op sequence
// against a live database. Spec §3/§5: the apply collaborator wraps
// generated DDL in a single transaction and executes statements
// sequentially, rolling back on any statement error; it is the only
// component in this rework that performs live-database writes (the
// core itself is synchronous and has no I/O).
package applier

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/sqlgen"
	"github.com/schemadrift/schemadrift/internal/util"
)

// Options configures a single Apply call.
type Options struct {
	// LockTimeout sets `SET LOCAL lock_timeout` for the transaction, in
	// any value Postgres accepts for the GUC (e.g. "30s", "5m"). Empty
	// leaves the server default in place.
	LockTimeout string
	// Schema sets `SET LOCAL search_path` to this schema (plus public)
	// for the duration of the transaction, so unqualified references in
	// generated DDL resolve the way the source files intended.
	Schema string
	// OnStatement, if set, is called before each statement executes,
	// with its 0-based index in the full statement list.
	OnStatement func(index int, sql string)
}

// Result reports what Apply executed.
type Result struct {
	StatementsExecuted int
}

// Apply renders ops to DDL and executes every statement sequentially
// inside one transaction. Any statement failure rolls back the whole
// transaction and returns a Database-kind error identifying the
// failing statement's position.
func Apply(ctx context.Context, pool *pgxpool.Pool, ops []diff.MigrationOp, opts Options) (*Result, error) {
	if len(ops) == 0 {
		return &Result{}, nil
	}

	statements, owners, err := renderStatements(ops)
	if err != nil {
		return nil, errs.Planning("rendering migration ops: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, errs.Database(err, "beginning apply transaction")
	}
	defer tx.Rollback(ctx)

	if opts.LockTimeout != "" {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %s", quoteLiteral(opts.LockTimeout))); err != nil {
			return nil, errs.Database(err, "setting lock_timeout")
		}
	}
	if opts.Schema != "" && opts.Schema != "public" {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", util.QuoteIdentifier(opts.Schema))); err != nil {
			return nil, errs.Database(err, "setting search_path to %q", opts.Schema)
		}
	}

	for i, stmt := range statements {
		if opts.OnStatement != nil {
			opts.OnStatement(i, stmt)
		}
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, errs.Database(err, "executing statement %d of %d (%s)", i+1, len(statements), ops[owners[i]].Describe())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Database(err, "committing apply transaction")
	}
	return &Result{StatementsExecuted: len(statements)}, nil
}

// renderStatements renders every op. sqlgen.Render already returns one
// complete, independently executable statement per slice element (a
// CreateTable's own pretty-printed, multi-line body is one element;
// its inline indexes/RLS/policies are additional elements), so no
// further splitting is needed here. owners[i] is the index into ops
// that produced statements[i], for error attribution.
func renderStatements(ops []diff.MigrationOp) (statements []string, owners []int, err error) {
	for i, op := range ops {
		rendered, err := sqlgen.Render(op)
		if err != nil {
			return nil, nil, fmt.Errorf("op %d (%s): %w", i, op.Describe(), err)
		}
		for _, stmt := range rendered {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			statements = append(statements, stmt)
			owners = append(owners, i)
		}
	}
	return statements, owners, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
