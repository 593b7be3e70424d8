package parser

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/schemadrift/schemadrift/internal/errs"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func (p *Parser) parseAlterTable(stmt *pg_query.AlterTableStmt) error {
	if stmt.Objtype != pg_query.ObjectType_OBJECT_TABLE {
		return nil // indexes, sequences, etc. have their own ALTER paths or are ignored
	}
	namespace, tableName := extractRangeVar(stmt.Relation)
	table, ok := p.schema.Tables[ir.Qualified(namespace, tableName)]
	if !ok {
		return errs.Parse("ALTER TABLE on undefined table %s", ir.Qualified(namespace, tableName))
	}
	for _, cmdNode := range stmt.Cmds {
		cmd := cmdNode.GetAlterTableCmd()
		if cmd == nil {
			continue
		}
		if err := p.processAlterTableCommand(cmd, table, namespace, tableName); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) processAlterTableCommand(cmd *pg_query.AlterTableCmd, table *ir.Table, namespace, tableName string) error {
	switch cmd.Subtype {
	case pg_query.AlterTableType_AT_AddColumn:
		return p.handleAddColumn(cmd, table, namespace, tableName)
	case pg_query.AlterTableType_AT_DropColumn:
		handleDropColumn(cmd, table)
	case pg_query.AlterTableType_AT_ColumnDefault:
		handleColumnDefault(cmd, table)
	case pg_query.AlterTableType_AT_AlterColumnType:
		handleAlterColumnType(cmd, table)
	case pg_query.AlterTableType_AT_SetNotNull:
		setColumnNullable(cmd.Name, table, false)
	case pg_query.AlterTableType_AT_DropNotNull:
		setColumnNullable(cmd.Name, table, true)
	case pg_query.AlterTableType_AT_AddConstraint:
		p.applyTableConstraint(table, cmd.Def.GetConstraint(), namespace, tableName)
	case pg_query.AlterTableType_AT_DropConstraint:
		handleDropConstraint(cmd, table)
	case pg_query.AlterTableType_AT_EnableRowSecurity:
		table.RLSEnabled = true
	case pg_query.AlterTableType_AT_DisableRowSecurity:
		table.RLSEnabled = false
	case pg_query.AlterTableType_AT_AttachPartition:
		p.handleAttachPartition(cmd, table, namespace, tableName)
	case pg_query.AlterTableType_AT_ChangeOwner:
		if owner := extractRoleName(cmd.Newowner); owner != "" {
			table.Owner = owner
		}
	default:
		// ALTER INDEX reassignments, storage parameters, and other
		// commands with no IR representation are intentionally ignored.
	}
	return nil
}

func (p *Parser) handleAddColumn(cmd *pg_query.AlterTableCmd, table *ir.Table, namespace, tableName string) error {
	colDef := cmd.Def.GetColumnDef()
	if colDef == nil {
		return errs.Parse("ADD COLUMN missing column definition on %s", ir.Qualified(namespace, tableName))
	}
	position := 0
	for _, c := range table.Columns {
		if c.Position > position {
			position = c.Position
		}
	}
	column, inline := p.parseColumnDef(colDef, position+1, namespace, tableName)
	table.Columns = append(table.Columns, column)
	applyInlineConstraints(table, inline)
	return nil
}

func handleDropColumn(cmd *pg_query.AlterTableCmd, table *ir.Table) {
	kept := table.Columns[:0:0]
	for _, c := range table.Columns {
		if c.Name != cmd.Name {
			kept = append(kept, c)
		}
	}
	table.Columns = kept
}

func handleColumnDefault(cmd *pg_query.AlterTableCmd, table *ir.Table) {
	col := table.ColumnByName(cmd.Name)
	if col == nil {
		return
	}
	if cmd.Def == nil {
		col.Default = nil
		return
	}
	val := extractDefaultValue(cmd.Def)
	col.Default = &val
}

func handleAlterColumnType(cmd *pg_query.AlterTableCmd, table *ir.Table) {
	col := table.ColumnByName(cmd.Name)
	if col == nil {
		return
	}
	if colDef := cmd.Def.GetColumnDef(); colDef != nil && colDef.TypeName != nil {
		col.DataType = parseTypeName(colDef.TypeName)
	}
}

func setColumnNullable(name string, table *ir.Table, nullable bool) {
	if col := table.ColumnByName(name); col != nil {
		col.Nullable = nullable
	}
}

func handleDropConstraint(cmd *pg_query.AlterTableCmd, table *ir.Table) {
	name := cmd.Name
	if table.PrimaryKey != nil && table.PrimaryKey.Name == name {
		table.PrimaryKey = nil
	}
	keptFK := table.ForeignKeys[:0:0]
	for _, fk := range table.ForeignKeys {
		if fk.Name != name {
			keptFK = append(keptFK, fk)
		}
	}
	table.ForeignKeys = keptFK

	keptChecks := table.Checks[:0:0]
	for _, c := range table.Checks {
		if c.Name != name {
			keptChecks = append(keptChecks, c)
		}
	}
	table.Checks = keptChecks

	keptIdx := table.Indexes[:0:0]
	for _, idx := range table.Indexes {
		if idx.Name != name {
			keptIdx = append(keptIdx, idx)
		}
	}
	table.Indexes = keptIdx
}

func (p *Parser) handleAttachPartition(cmd *pg_query.AlterTableCmd, parent *ir.Table, namespace, tableName string) {
	spec := cmd.Def.GetPartitionCmd()
	if spec == nil || spec.Name == nil {
		return
	}
	childNS, childTable := extractRangeVar(spec.Name)
	descriptor, ok := p.schema.Partitions[ir.Qualified(childNS, childTable)]
	if !ok {
		descriptor = &ir.PartitionDescriptor{ChildNamespace: childNS, ChildTable: childTable}
		p.schema.Partitions[ir.Qualified(childNS, childTable)] = descriptor
	}
	descriptor.ParentNamespace = namespace
	descriptor.ParentTable = tableName
	if spec.Bound != nil {
		descriptor.Bound = parsePartitionBound(spec.Bound)
	}
}
