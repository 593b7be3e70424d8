package pgschema

import "context"

// DumpToString is a convenience function to dump a live database's
// schema as a single SQL string.
func DumpToString(ctx context.Context, dbConfig DatabaseConfig) (string, error) {
	return NewClient(dbConfig).Dump(ctx, DumpOptions{})
}

// PlanSources is a convenience function to plan sources against a live
// database without constructing a Client directly.
func PlanSources(ctx context.Context, dbConfig DatabaseConfig, sources []string) (*PlanResult, error) {
	return NewClient(dbConfig).Plan(ctx, PlanOptions{Sources: sources})
}

// ApplySources is a convenience function to plan and apply sources
// against a live database in one call. allowDestructive maps to
// LintOptions.AllowDestructive; a blocking lint error still aborts
// before any statement executes.
func ApplySources(ctx context.Context, dbConfig DatabaseConfig, sources []string, allowDestructive bool) (*ApplyResult, error) {
	return NewClient(dbConfig).Apply(ctx, ApplyOptions{
		Sources: sources,
		Lint:    LintOptions{AllowDestructive: allowDestructive},
	})
}

// CheckDrift is a convenience function to check whether a live
// database has drifted from sources.
func CheckDrift(ctx context.Context, dbConfig DatabaseConfig, sources []string) (*Drift, error) {
	return NewClient(dbConfig).Drift(ctx, sources)
}
