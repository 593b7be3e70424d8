package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadrift/schemadrift/internal/diff"
	"github.com/schemadrift/schemadrift/internal/ir"
)

func kindsOf(ops []diff.MigrationOp) []diff.OpKind {
	out := make([]diff.OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind()
	}
	return out
}

func TestOrder_FixedBucketSequence(t *testing.T) {
	ops := []diff.MigrationOp{
		diff.GrantPrivileges{Namespace: "public", Name: "users", Grant: &ir.Grant{Grantee: "app"}},
		diff.DropTable{Namespace: "public", Name: "old_audit", Table: &ir.Table{Namespace: "public", Name: "old_audit"}},
		diff.CreateSchema{Namespace: &ir.Namespace{Name: "public"}},
		diff.AddColumn{Namespace: "public", Table: "users", Column: &ir.Column{Name: "email"}},
		diff.DropColumn{Namespace: "public", Table: "users", Column: "legacy_flag"},
	}

	ordered, err := Order(ops)
	require.NoError(t, err)

	assert.Equal(t, []diff.OpKind{
		diff.KindCreateSchema,
		diff.KindAddColumn,
		diff.KindGrantPrivileges,
		diff.KindDropColumn,
		diff.KindDropTable,
	}, kindsOf(ordered))
}

func TestOrder_CreateTableTopologicalSort(t *testing.T) {
	users := &ir.Table{Namespace: "public", Name: "users"}
	posts := &ir.Table{Namespace: "public", Name: "posts", ForeignKeys: []*ir.ForeignKey{
		{Name: "posts_user_id_fkey", Columns: []string{"user_id"}, ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"}},
	}}
	comments := &ir.Table{Namespace: "public", Name: "comments", ForeignKeys: []*ir.ForeignKey{
		{Name: "comments_post_id_fkey", Columns: []string{"post_id"}, ReferencedSchema: "public", ReferencedTable: "posts", ReferencedColumns: []string{"id"}},
	}}

	ops := []diff.MigrationOp{
		diff.CreateTable{Table: comments},
		diff.CreateTable{Table: posts},
		diff.CreateTable{Table: users},
	}

	ordered, err := Order(ops)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	var names []string
	for _, op := range ordered {
		names = append(names, op.(diff.CreateTable).Table.Name)
	}
	assert.Equal(t, []string{"users", "posts", "comments"}, names)
}

func TestOrder_DropTableReverseTopologicalSort(t *testing.T) {
	users := &ir.Table{Namespace: "public", Name: "users"}
	posts := &ir.Table{Namespace: "public", Name: "posts", ForeignKeys: []*ir.ForeignKey{
		{Name: "posts_user_id_fkey", Columns: []string{"user_id"}, ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"}},
	}}
	comments := &ir.Table{Namespace: "public", Name: "comments", ForeignKeys: []*ir.ForeignKey{
		{Name: "comments_post_id_fkey", Columns: []string{"post_id"}, ReferencedSchema: "public", ReferencedTable: "posts", ReferencedColumns: []string{"id"}},
	}}

	ops := []diff.MigrationOp{
		diff.DropTable{Namespace: "public", Name: "users", Table: users},
		diff.DropTable{Namespace: "public", Name: "posts", Table: posts},
		diff.DropTable{Namespace: "public", Name: "comments", Table: comments},
	}

	ordered, err := Order(ops)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	var names []string
	for _, op := range ordered {
		names = append(names, op.(diff.DropTable).Name)
	}
	assert.Equal(t, []string{"comments", "posts", "users"}, names)
}

// TestOrder_ForeignKeyCascadeBracketsAlterColumns exercises spec scenario 3:
// users.id TEXT -> UUID, posts.user_id TEXT -> UUID referencing it. The
// drop of the foreign key must precede both AlterColumn ops and the
// recreated foreign key must follow both.
func TestOrder_ForeignKeyCascadeBracketsAlterColumns(t *testing.T) {
	fk := &ir.ForeignKey{
		Name: "posts_user_id_fkey", Columns: []string{"user_id"},
		ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"},
	}
	uuid := "uuid"

	ops := []diff.MigrationOp{
		diff.AlterColumn{Namespace: "public", Table: "users", Column: "id", Changes: diff.ColumnChanges{DataType: &uuid}},
		diff.AlterColumn{Namespace: "public", Table: "posts", Column: "user_id", Changes: diff.ColumnChanges{DataType: &uuid}},
		diff.DropForeignKey{Namespace: "public", Table: "posts", Name: fk.Name, ForeignKey: fk},
		diff.AddForeignKey{Namespace: "public", Table: "posts", ForeignKey: fk},
	}

	ordered, err := Order(ops)
	require.NoError(t, err)
	require.Len(t, ordered, 4)

	kinds := kindsOf(ordered)
	assert.Equal(t, []diff.OpKind{
		diff.KindDropForeignKey,
		diff.KindAlterColumn,
		diff.KindAlterColumn,
		diff.KindAddForeignKey,
	}, kinds)
}

func TestOrder_NonCascadeForeignKeyKeepsBucketPosition(t *testing.T) {
	fk := &ir.ForeignKey{Name: "posts_user_id_fkey", Columns: []string{"user_id"}, ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"}}
	fk2 := &ir.ForeignKey{Name: "posts_user_id_fkey", Columns: []string{"user_id"}, ReferencedSchema: "public", ReferencedTable: "users", ReferencedColumns: []string{"id"}, OnDelete: "CASCADE"}

	ops := []diff.MigrationOp{
		diff.DropForeignKey{Namespace: "public", Table: "posts", Name: fk.Name, ForeignKey: fk},
		diff.AddForeignKey{Namespace: "public", Table: "posts", ForeignKey: fk2},
	}

	ordered, err := Order(ops)
	require.NoError(t, err)

	// No column type change is present, so the fixed bucket order holds:
	// the whole Creates phase (AddForeignKey) before the whole Drops
	// phase (DropForeignKey).
	assert.Equal(t, []diff.OpKind{diff.KindAddForeignKey, diff.KindDropForeignKey}, kindsOf(ordered))
}
