package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/schemadrift/internal/diff"
)

func renderCreateSchema(o diff.CreateSchema) string {
	return fmt.Sprintf("CREATE SCHEMA %s;", q(o.Namespace.Name))
}

func renderCreateExtension(o diff.CreateExtension) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE EXTENSION %s", q(o.Extension.Name))
	if o.Extension.InstallSchema != "" {
		fmt.Fprintf(&b, " SCHEMA %s", q(o.Extension.InstallSchema))
	}
	if o.Extension.Version != "" {
		fmt.Fprintf(&b, " VERSION %s", quoteLiteral(o.Extension.Version))
	}
	b.WriteString(";")
	return b.String()
}

func renderCreateEnum(o diff.CreateEnum) string {
	values := make([]string, len(o.Enum.Values))
	for i, v := range o.Enum.Values {
		values[i] = quoteLiteral(v)
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", qq(o.Enum.Namespace, o.Enum.Name), strings.Join(values, ", "))
}

func renderAddEnumValue(o diff.AddEnumValue) string {
	stmt := fmt.Sprintf("ALTER TYPE %s ADD VALUE %s", qq(o.Namespace, o.Name), quoteLiteral(o.Value))
	switch o.Position {
	case diff.EnumPositionBefore:
		stmt += fmt.Sprintf(" BEFORE %s", quoteLiteral(o.Anchor))
	case diff.EnumPositionAfter:
		stmt += fmt.Sprintf(" AFTER %s", quoteLiteral(o.Anchor))
	}
	return stmt + ";"
}

func renderCreateDomain(o diff.CreateDomain) string {
	d := o.Domain
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE DOMAIN %s AS %s", qq(d.Namespace, d.Name), d.BaseType)
	if d.Collation != "" {
		fmt.Fprintf(&b, " COLLATE %s", q(d.Collation))
	}
	if d.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", *d.Default)
	}
	if d.NotNull {
		b.WriteString(" NOT NULL")
	}
	for _, c := range d.Checks {
		fmt.Fprintf(&b, " CONSTRAINT %s CHECK (%s)", q(c.Name), c.Expression)
	}
	b.WriteString(";")
	return b.String()
}

func renderAlterDomain(o diff.AlterDomain) []string {
	var stmts []string
	name := qq(o.Namespace, o.Name)
	if o.Default != nil {
		if *o.Default == nil {
			stmts = append(stmts, fmt.Sprintf("ALTER DOMAIN %s DROP DEFAULT;", name))
		} else {
			stmts = append(stmts, fmt.Sprintf("ALTER DOMAIN %s SET DEFAULT %s;", name, **o.Default))
		}
	}
	if o.NotNull != nil {
		if *o.NotNull {
			stmts = append(stmts, fmt.Sprintf("ALTER DOMAIN %s SET NOT NULL;", name))
		} else {
			stmts = append(stmts, fmt.Sprintf("ALTER DOMAIN %s DROP NOT NULL;", name))
		}
	}
	return stmts
}

func renderCreateSequence(o diff.CreateSequence) string {
	s := o.Sequence
	return fmt.Sprintf(
		"CREATE SEQUENCE %s START WITH %d INCREMENT BY %d MINVALUE %d MAXVALUE %d CACHE %d%s;",
		qq(s.Namespace, s.Name), s.Start, s.Increment, s.Min, s.Max, s.Cache, cycleClause(s.Cycle),
	)
}

func renderAlterSequence(o diff.AlterSequence) string {
	name := qq(o.Namespace, o.Name)
	var parts []string
	if o.Changes.Increment != nil {
		parts = append(parts, fmt.Sprintf("INCREMENT BY %d", *o.Changes.Increment))
	}
	if o.Changes.Min != nil {
		parts = append(parts, fmt.Sprintf("MINVALUE %d", *o.Changes.Min))
	}
	if o.Changes.Max != nil {
		parts = append(parts, fmt.Sprintf("MAXVALUE %d", *o.Changes.Max))
	}
	if o.Changes.Cache != nil {
		parts = append(parts, fmt.Sprintf("CACHE %d", *o.Changes.Cache))
	}
	if o.Changes.Cycle != nil {
		parts = append(parts, strings.TrimSpace(cycleClause(*o.Changes.Cycle)))
	}
	return fmt.Sprintf("ALTER SEQUENCE %s %s;", name, strings.Join(parts, " "))
}

func cycleClause(cycle bool) string {
	if cycle {
		return " CYCLE"
	}
	return " NO CYCLE"
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
