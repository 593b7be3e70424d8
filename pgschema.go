// Package pgschema is a programmatic API for declarative PostgreSQL
// schema management (spec §1): diff a target schema against a live
// database, lint the result for destructive and lock-hazardous
// changes, and apply it inside a single transaction.
package pgschema

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schemadrift/schemadrift/internal/applier"
	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ignore"
	"github.com/schemadrift/schemadrift/internal/introspect"
	"github.com/schemadrift/schemadrift/internal/lint"
	"github.com/schemadrift/schemadrift/internal/plan"
	"github.com/schemadrift/schemadrift/internal/report"
	"github.com/schemadrift/schemadrift/internal/sqlgen"
	"github.com/schemadrift/schemadrift/internal/validate"
	"github.com/schemadrift/schemadrift/ir"
)

// loadIgnoreConfig loads path (falling back to the default
// .pgschemaignore name when empty) and returns nil if no ignore file
// is present, so filtering stays opt-in.
func loadIgnoreConfig(path string) (*ignore.Config, error) {
	if path == "" {
		return ignore.Load()
	}
	return ignore.LoadFromPath(path)
}

// DatabaseConfig holds connection details for the PostgreSQL database
// a Client targets.
type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	Schema   string // target namespace; defaults to "public"
}

// DumpOptions configures Client.Dump.
type DumpOptions struct {
	// Namespaces limits the dump to these schemas; empty means just
	// DatabaseConfig.Schema.
	Namespaces []string
}

// PlanOptions configures Client.Plan.
type PlanOptions struct {
	Sources []string // spec §6 source-spec grammar: "sql:..." / "db:..."
	Diff    DiffOptions
	Lint    LintOptions
	// IgnoreFile, if set, names a .pgschemaignore TOML file (internal/
	// ignore) whose patterns exclude matching tables/views/functions/
	// types/sequences from both sides of the diff. Empty looks for
	// ignore.IgnoreFileName in the working directory; no file at that
	// path means no filtering.
	IgnoreFile string
}

// PlanResult is the outcome of Client.Plan: the ordered operations,
// their rendered DDL, and every lint finding against them.
type PlanResult struct {
	Ops  []MigrationOp
	DDL  string
	Lint []LintResult
}

// ApplyOptions configures Client.Apply.
type ApplyOptions struct {
	Sources     []string
	Diff        DiffOptions
	Lint        LintOptions
	DryRun      bool   // plan and lint but don't execute
	LockTimeout string // e.g. "30s"; empty means no SET LOCAL lock_timeout
	// IgnoreFile, if set, names a .pgschemaignore TOML file (see
	// PlanOptions.IgnoreFile) applied to both the current and target
	// schemas before diffing.
	IgnoreFile string
}

// ApplyResult is the outcome of Client.Apply.
type ApplyResult struct {
	Executed           bool
	Ops                []MigrationOp
	DDL                string
	Lint               []LintResult
	StatementsExecuted int
}

// DiffSourcesOptions configures Client.DiffSources: a from/to
// comparison of two source specs, with no live database involved
// (spec §6: `diff(from_spec, to_spec, options)`).
type DiffSourcesOptions struct {
	From []string
	To   []string
	Diff DiffOptions
	// IgnoreFile, if set, names a .pgschemaignore TOML file (see
	// PlanOptions.IgnoreFile) applied to both source schemas before
	// diffing.
	IgnoreFile string
}

// DiffResult is the outcome of a source-to-source diff.
type DiffResult struct {
	Ops []MigrationOp
	DDL string
}

// Client is the main entry point for programmatic schema operations
// against one database.
type Client struct {
	db DatabaseConfig
}

// NewClient creates a Client targeting dbConfig. Schema defaults to
// "public" when empty.
func NewClient(dbConfig DatabaseConfig) *Client {
	if dbConfig.Schema == "" {
		dbConfig.Schema = "public"
	}
	return &Client{db: dbConfig}
}

func (c *Client) namespaces() []string {
	if c.db.Schema == "" {
		return nil
	}
	return []string{c.db.Schema}
}

func (c *Client) connString() string {
	parts := []string{
		fmt.Sprintf("host=%s", c.db.Host),
		fmt.Sprintf("port=%d", c.db.Port),
		fmt.Sprintf("dbname=%s", c.db.Database),
		fmt.Sprintf("user=%s", c.db.User),
	}
	if c.db.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", c.db.Password))
	}
	parts = append(parts, "application_name=schemadrift")
	return strings.Join(parts, " ")
}

func (c *Client) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, c.connString())
	if err != nil {
		return nil, errs.Database(err, "connecting to %s", errs.SanitizeConnString(c.connString()))
	}
	return pool, nil
}

// DumpSchema renders schema's full CREATE-statement DDL (spec §6:
// `dump_schema(schema)`), by diffing it against an empty schema and
// ordering the resulting all-creates plan the same way any other plan
// is ordered.
func DumpSchema(schema *ir.Schema) (string, error) {
	ops, err := diff.Diff(ir.New(), schema, diff.Options{ManageOwnership: true, ManageGrants: true})
	if err != nil {
		return "", err
	}
	ordered, err := plan.Order(ops)
	if err != nil {
		return "", errs.Planning("ordering dump operations: %v", err)
	}
	return sqlgen.RenderAll(ordered)
}

// Dump introspects the live database and renders it as DDL text (spec
// §6: `dump(db_url)`).
func (c *Client) Dump(ctx context.Context, opts DumpOptions) (string, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer pool.Close()

	namespaces := opts.Namespaces
	if len(namespaces) == 0 {
		namespaces = c.namespaces()
	}
	schema, err := introspect.IntrospectPool(ctx, pool, namespaces)
	if err != nil {
		return "", err
	}
	return DumpSchema(schema)
}

// Plan computes the ordered operations that bring the live database in
// line with opts.Sources, without executing them (spec §6: `plan(
// sources, db_url, options)`).
func (c *Client) Plan(ctx context.Context, opts PlanOptions) (*PlanResult, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return c.planAgainst(ctx, pool, opts)
}

func (c *Client) planAgainst(ctx context.Context, pool *pgxpool.Pool, opts PlanOptions) (*PlanResult, error) {
	target, err := resolveSources(ctx, opts.Sources)
	if err != nil {
		return nil, err
	}
	current, err := introspect.IntrospectPool(ctx, pool, c.namespaces())
	if err != nil {
		return nil, err
	}
	ignoreCfg, err := loadIgnoreConfig(opts.IgnoreFile)
	if err != nil {
		return nil, errs.Validation("loading ignore file: %v", err)
	}
	ignore.Filter(current, ignoreCfg)
	ignore.Filter(target, ignoreCfg)

	ops, err := diff.Diff(current, target, opts.Diff)
	if err != nil {
		return nil, err
	}
	ordered, err := plan.Order(ops)
	if err != nil {
		return nil, errs.Planning("ordering migration: %v", err)
	}

	results := lint.Check(ordered, opts.Lint)
	results = append(results, lint.CheckUnsupported(target.Unsupported)...)

	ddl, err := sqlgen.RenderAll(ordered)
	if err != nil {
		return nil, err
	}

	return &PlanResult{Ops: ordered, DDL: ddl, Lint: results}, nil
}

// Apply plans against the live database and, unless lint blocks it or
// DryRun is set, executes the plan inside a single transaction (spec
// §6: `apply(sources, db_url, options)`). A fingerprint guard
// re-validates that the database hasn't drifted since the plan was
// computed, immediately before execution.
func (c *Client) Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	target, err := resolveSources(ctx, opts.Sources)
	if err != nil {
		return nil, err
	}
	current, err := introspect.IntrospectPool(ctx, pool, c.namespaces())
	if err != nil {
		return nil, err
	}
	ignoreCfg, err := loadIgnoreConfig(opts.IgnoreFile)
	if err != nil {
		return nil, errs.Validation("loading ignore file: %v", err)
	}
	ignore.Filter(current, ignoreCfg)
	ignore.Filter(target, ignoreCfg)

	expected, err := ir.ComputeFingerprint(current)
	if err != nil {
		return nil, errs.Validation("computing current schema fingerprint: %v", err)
	}

	ops, err := diff.Diff(current, target, opts.Diff)
	if err != nil {
		return nil, err
	}
	ordered, err := plan.Order(ops)
	if err != nil {
		return nil, errs.Planning("ordering migration: %v", err)
	}

	results := lint.Check(ordered, opts.Lint)
	results = append(results, lint.CheckUnsupported(target.Unsupported)...)
	ddl, err := sqlgen.RenderAll(ordered)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Ops: ordered, DDL: ddl, Lint: results}
	if lint.HasError(results) {
		return result, errs.Lint("one or more lint rules blocked this apply")
	}
	if opts.DryRun {
		return result, nil
	}

	if err := validate.Guard(ctx, pool, expected, ignoreCfg); err != nil {
		return result, err
	}

	applied, err := applier.Apply(ctx, pool, ordered, applier.Options{
		LockTimeout: opts.LockTimeout,
		Schema:      c.db.Schema,
	})
	if err != nil {
		return result, err
	}
	result.Executed = true
	result.StatementsExecuted = applied.StatementsExecuted
	return result, nil
}

// DiffSources diffs two source specs directly, with no live database
// involved (spec §6: `diff(from_spec, to_spec, options)`).
func (c *Client) DiffSources(ctx context.Context, opts DiffSourcesOptions) (*DiffResult, error) {
	from, err := resolveSources(ctx, opts.From)
	if err != nil {
		return nil, err
	}
	to, err := resolveSources(ctx, opts.To)
	if err != nil {
		return nil, err
	}
	ignoreCfg, err := loadIgnoreConfig(opts.IgnoreFile)
	if err != nil {
		return nil, errs.Validation("loading ignore file: %v", err)
	}
	ignore.Filter(from, ignoreCfg)
	ignore.Filter(to, ignoreCfg)

	ops, err := diff.Diff(from, to, opts.Diff)
	if err != nil {
		return nil, err
	}
	ordered, err := plan.Order(ops)
	if err != nil {
		return nil, errs.Planning("ordering diff: %v", err)
	}
	ddl, err := sqlgen.RenderAll(ordered)
	if err != nil {
		return nil, err
	}
	return &DiffResult{Ops: ordered, DDL: ddl}, nil
}

// Drift reports whether the live database has drifted from sources
// (spec §6: `drift(sources, db_url)`).
func (c *Client) Drift(ctx context.Context, sources []string) (*Drift, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	target, err := resolveSources(ctx, sources)
	if err != nil {
		return nil, err
	}
	current, err := introspect.IntrospectPool(ctx, pool, c.namespaces())
	if err != nil {
		return nil, err
	}
	return report.ComputeDrift(target, current, diff.Options{})
}

// Lint plans sources against the live database and returns only the
// lint findings (spec §6: `lint(sources, db_url, lint_options)`).
func (c *Client) Lint(ctx context.Context, sources []string, opts LintOptions) ([]LintResult, error) {
	result, err := c.Plan(ctx, PlanOptions{Sources: sources, Lint: opts})
	if err != nil {
		return nil, err
	}
	return result.Lint, nil
}

// Baseline records a trust-anchor fingerprint for sources, for later
// cheap drift checks via Client.DriftFromBaseline.
func (c *Client) Baseline(ctx context.Context, sources []string) (*Baseline, error) {
	target, err := resolveSources(ctx, sources)
	if err != nil {
		return nil, err
	}
	return report.NewBaseline(target, len(sources))
}

// DriftFromBaseline compares the live database against a previously
// recorded Baseline without re-parsing or re-diffing source files.
func (c *Client) DriftFromBaseline(ctx context.Context, baseline *Baseline) (bool, *Fingerprint, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return false, nil, err
	}
	defer pool.Close()

	current, err := introspect.IntrospectPool(ctx, pool, c.namespaces())
	if err != nil {
		return false, nil, err
	}
	return report.DriftFromBaseline(baseline, current)
}

// Estimate plans sources against the live database and produces a
// lock-duration estimate for every hazardous operation, using
// rowCounts (usually from a recent ANALYZE, keyed by "namespace.table")
// to classify table size.
func (c *Client) Estimate(ctx context.Context, sources []string, rowCounts map[string]int64) ([]OpEstimate, error) {
	result, err := c.Plan(ctx, PlanOptions{Sources: sources})
	if err != nil {
		return nil, err
	}
	return report.Estimate(result.Ops, rowCounts, report.DefaultSizeThresholds()), nil
}

// ApproxRowCounts reads Postgres's planner statistics (pg_class.
// reltuples) for every table in the target schema, for use as
// Estimate's rowCounts argument. These are estimates refreshed by
// ANALYZE/autovacuum, not exact counts — sufficient for the estimate
// report's small/medium/large bucketing.
func (c *Client) ApproxRowCounts(ctx context.Context) (map[string]int64, error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, `
		SELECT n.nspname, c.relname, GREATEST(c.reltuples, 0)::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind IN ('r', 'p') AND n.nspname = ANY($1)
	`, c.namespaces())
	if err != nil {
		return nil, errs.Database(err, "reading table row-count estimates")
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var namespace, table string
		var estimate int64
		if err := rows.Scan(&namespace, &table, &estimate); err != nil {
			return nil, errs.Database(err, "scanning row-count estimate")
		}
		counts[ir.Qualified(namespace, table)] = estimate
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Database(err, "reading table row-count estimates")
	}
	return counts, nil
}
