package introspect

import (
	"context"

	"github.com/schemadrift/schemadrift/internal/ir"
)

func (b *builder) buildSequences(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT s.relname, pg_get_userbyid(s.relowner),
		       seq.seqstart, seq.seqincrement, seq.seqmin, seq.seqmax, seq.seqcache, seq.seqcycle,
		       format_type(seq.seqtypid, null)
		FROM pg_sequence seq
		JOIN pg_class s ON s.oid = seq.seqrelid
		JOIN pg_namespace n ON n.oid = s.relnamespace
		WHERE n.nspname = $1
	`, ns)
	if err != nil {
		return scanErr(err, "sequences")
	}
	defer rows.Close()

	for rows.Next() {
		var name, owner, dataType string
		var start, increment, min, max, cache int64
		var cycle bool
		if err := rows.Scan(&name, &owner, &start, &increment, &min, &max, &cache, &cycle, &dataType); err != nil {
			return scanErr(err, "sequence row")
		}
		b.schema.Sequences[qualify(ns, name)] = &ir.Sequence{
			Namespace: ns, Name: name, Owner: owner, Width: sequenceWidth(dataType),
			Start: start, Increment: increment, Min: min, Max: max, Cache: cache, Cycle: cycle,
		}
	}
	if err := rows.Err(); err != nil {
		return scanErr(err, "sequences")
	}
	return b.buildSequenceOwnership(ctx, ns)
}

func (b *builder) buildSequenceOwnership(ctx context.Context, ns string) error {
	rows, err := b.pool.Query(ctx, `
		SELECT s.relname, t.relname, a.attname
		FROM pg_depend d
		JOIN pg_class s ON s.oid = d.objid AND s.relkind = 'S'
		JOIN pg_class t ON t.oid = d.refobjid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = d.refobjsubid
		JOIN pg_namespace n ON n.oid = s.relnamespace
		WHERE n.nspname = $1 AND d.deptype = 'a'
	`, ns)
	if err != nil {
		return scanErr(err, "sequence ownership")
	}
	defer rows.Close()

	for rows.Next() {
		var seqName, tableName, colName string
		if err := rows.Scan(&seqName, &tableName, &colName); err != nil {
			return scanErr(err, "sequence ownership row")
		}
		if seq, ok := b.schema.Sequences[qualify(ns, seqName)]; ok {
			seq.OwnedByTable = tableName
			seq.OwnedByColumn = colName
		}
	}
	return scanErr(rows.Err(), "sequence ownership")
}

func sequenceWidth(dataType string) int {
	switch dataType {
	case "smallint":
		return 16
	case "integer":
		return 32
	default:
		return 64
	}
}
