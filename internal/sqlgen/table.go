package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

// renderCreateTable returns the CREATE TABLE statement as its own
// element, followed by one element per inline index, RLS toggle, and
// policy the table carries — each a complete, independently
// executable statement.
func renderCreateTable(o diff.CreateTable) []string {
	t := o.Table
	var lines []string
	for _, c := range t.Columns {
		lines = append(lines, "    "+columnDefinition(c))
	}
	if t.PrimaryKey != nil {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)", q(t.PrimaryKey.Name), quoteIdentList(t.PrimaryKey.Columns)))
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, "    "+foreignKeyDefinition(fk))
	}
	for _, c := range t.Checks {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s CHECK (%s)", q(c.Name), c.Expression))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n%s\n)", qq(t.Namespace, t.Name), strings.Join(lines, ",\n"))

	if t.PartitionKey != nil {
		b.WriteString(fmt.Sprintf(" PARTITION BY %s (%s)", t.PartitionKey.Strategy, strings.Join(t.PartitionKey.Columns, ", ")))
	}
	b.WriteString(";")

	stmts := []string{b.String()}
	for _, idx := range t.Indexes {
		stmts = append(stmts, indexStatement(t.Namespace, t.Name, idx))
	}
	if t.RLSEnabled {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY;", qq(t.Namespace, t.Name)))
	}
	for _, p := range t.Policies {
		stmts = append(stmts, policyStatement(t.Namespace, t.Name, p))
	}
	return stmts
}

func columnDefinition(c *ir.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", q(c.Name), c.DataType)
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", *c.Default)
	}
	return b.String()
}

func foreignKeyDefinition(fk *ir.ForeignKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		q(fk.Name), quoteIdentList(fk.Columns), qq(fk.ReferencedSchema, fk.ReferencedTable), quoteIdentList(fk.ReferencedColumns))
	if fk.OnDelete != "" && fk.OnDelete != "NO ACTION" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.OnDelete)
	}
	if fk.OnUpdate != "" && fk.OnUpdate != "NO ACTION" {
		fmt.Fprintf(&b, " ON UPDATE %s", fk.OnUpdate)
	}
	if fk.Deferrable {
		b.WriteString(" DEFERRABLE")
		if fk.InitiallyDeferred {
			b.WriteString(" INITIALLY DEFERRED")
		}
	}
	return b.String()
}

func quoteIdentList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = q(n)
	}
	return strings.Join(quoted, ", ")
}

func renderAddColumn(o diff.AddColumn) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", qq(o.Namespace, o.Table), columnDefinition(o.Column))
}

func renderAlterColumn(o diff.AlterColumn) []string {
	name := qq(o.Namespace, o.Table)
	col := q(o.Column)
	var stmts []string
	if o.Changes.DataType != nil {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s USING %s::%s;", name, col, *o.Changes.DataType, col, *o.Changes.DataType))
	}
	if o.Changes.Nullable != nil {
		if *o.Changes.Nullable {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL;", name, col))
		} else {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL;", name, col))
		}
	}
	if o.Changes.Default != nil {
		if *o.Changes.Default == nil {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;", name, col))
		} else {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;", name, col, **o.Changes.Default))
		}
	}
	return stmts
}

func renderAddPrimaryKey(o diff.AddPrimaryKey) string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s);",
		qq(o.Namespace, o.Table), q(o.PrimaryKey.Name), quoteIdentList(o.PrimaryKey.Columns))
}

func renderAddForeignKey(o diff.AddForeignKey) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s;", qq(o.Namespace, o.Table), foreignKeyDefinition(o.ForeignKey))
}

func indexStatement(namespace, table string, idx *ir.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&b, "INDEX %s ON %s", q(idx.Name), qq(namespace, table))
	if idx.Method != "" {
		fmt.Fprintf(&b, " USING %s", idx.Method)
	}
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		col := c.Expression
		if c.Operator != "" {
			col += " " + c.Operator
		}
		if c.Direction != "" {
			col += " " + c.Direction
		}
		cols[i] = col
	}
	fmt.Fprintf(&b, " (%s)", strings.Join(cols, ", "))
	if idx.Predicate != "" {
		fmt.Fprintf(&b, " WHERE %s", idx.Predicate)
	}
	b.WriteString(";")
	return b.String()
}

func renderAddIndex(o diff.AddIndex) string {
	return indexStatement(o.Namespace, o.Table, o.Index)
}

func renderCreatePartition(o diff.CreatePartition) []string {
	p := o.Partition
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s PARTITION OF %s", qq(p.ChildNamespace, p.ChildTable), qq(p.ParentNamespace, p.ParentTable))
	b.WriteString(" " + partitionBoundClause(p.Bound))
	b.WriteString(";")

	stmts := []string{b.String()}
	for _, idx := range p.Indexes {
		stmts = append(stmts, indexStatement(p.ChildNamespace, p.ChildTable, idx))
	}
	return stmts
}

func partitionBoundClause(b ir.PartitionBound) string {
	switch b.Kind {
	case ir.BoundKindRange:
		return fmt.Sprintf("FOR VALUES FROM (%s) TO (%s)", strings.Join(b.From, ", "), strings.Join(b.To, ", "))
	case ir.BoundKindList:
		return fmt.Sprintf("FOR VALUES IN (%s)", strings.Join(b.Values, ", "))
	case ir.BoundKindHash:
		return fmt.Sprintf("FOR VALUES WITH (MODULUS %d, REMAINDER %d)", b.Modulus, b.Remainder)
	default:
		return "DEFAULT"
	}
}
