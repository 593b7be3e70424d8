// Package introspect builds an ir.Schema by querying a live
// PostgreSQL database's catalogs (spec §5: introspection is one of
// the two producers of a Schema value, alongside internal/parser).
// Every query is scoped to one namespace at a time; Introspect loops
// over the requested namespaces and merges their objects into a
// single Schema.
package introspect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// Introspect connects to connString and builds a Schema covering each
// of namespaces (defaulting to just "public" when none are given).
func Introspect(ctx context.Context, connString string, namespaces []string) (*ir.Schema, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errs.Database(err, "connecting to database")
	}
	defer pool.Close()
	return IntrospectPool(ctx, pool, namespaces)
}

// IntrospectPool is the pool-accepting variant of Introspect, for
// callers (like the apply collaborator) that already hold a pool
// shared with the DDL-execution phase.
func IntrospectPool(ctx context.Context, pool *pgxpool.Pool, namespaces []string) (*ir.Schema, error) {
	if len(namespaces) == 0 {
		namespaces = []string{ir.DefaultNamespace}
	}

	schema := ir.New()
	schema.Metadata.Source = "introspect"
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&schema.Metadata.DatabaseVersion); err != nil {
		return nil, errs.Database(err, "reading server version")
	}

	b := &builder{pool: pool, schema: schema}
	for _, ns := range namespaces {
		if err := b.buildNamespace(ctx, ns); err != nil {
			return nil, err
		}
	}
	if err := schema.Finalize(true); err != nil {
		return nil, err
	}
	return schema, nil
}

type builder struct {
	pool   *pgxpool.Pool
	schema *ir.Schema
}

func (b *builder) buildNamespace(ctx context.Context, ns string) error {
	var exists bool
	if err := b.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pg_namespace WHERE nspname = $1)`, ns).Scan(&exists); err != nil {
		return errs.Database(err, "checking namespace %q exists", ns)
	}
	if !exists {
		return errs.Database(nil, "namespace %q does not exist", ns)
	}

	namespace := b.schema.GetOrCreateNamespace(ns)
	if owner, err := b.namespaceOwner(ctx, ns); err == nil {
		namespace.Owner = owner
	}

	steps := []func(context.Context, string) error{
		b.buildEnumsAndDomains,
		b.buildSequences,
		b.buildTables,
		b.buildColumns,
		b.buildConstraints,
		b.buildIndexes,
		b.buildViews,
		b.buildFunctions,
		b.buildTriggers,
		b.buildPolicies,
		b.buildExtensions,
	}
	for _, step := range steps {
		if err := step(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) namespaceOwner(ctx context.Context, ns string) (string, error) {
	var owner string
	err := b.pool.QueryRow(ctx, `
		SELECT pg_get_userbyid(nspowner) FROM pg_namespace WHERE nspname = $1
	`, ns).Scan(&owner)
	return owner, err
}

func scanErr(err error, what string) error {
	if err == nil || err == pgx.ErrNoRows {
		return nil
	}
	return errs.Database(err, "scanning %s", what)
}

func qualify(ns, name string) string { return fmt.Sprintf("%s.%s", ns, name) }
