package query_test

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chagar/arel-query/ast"
	"github.com/chagar/arel-query/connector"
	"github.com/chagar/arel-query/query"
	"github.com/chagar/arel-query/types"
)

func inline(t *testing.T, conn *connector.Connector, node squirrel.Sqlizer) string {
	t.Helper()
	sql, err := conn.Inline(node)
	require.NoError(t, err)
	return sql
}

func TestFilterFactory(t *testing.T) {
	conn := pg()
	f := query.New(conn, usersTable).Filter()

	tests := []struct {
		name   string
		filter query.Filter
		want   string
	}{
		{"eq", f.Eq("status", "active"), `"status" = 'active'`},
		{"not eq", f.NotEq("status", "banned"), `"status" <> 'banned'`},
		{"lt", f.Lt("age", 18), `"age" < 18`},
		{"lte", f.Lte("age", 18), `"age" <= 18`},
		{"gt", f.Gt("age", 18), `"age" > 18`},
		{"gte", f.Gte("age", 18), `"age" >= 18`},
		{"in", f.In("status", []string{"a", "b"}), `"status" IN ('a','b')`},
		{"in scalar", f.In("status", "a"), `"status" IN ('a')`},
		{"not in", f.NotIn("id", []int{1, 2}), `"id" NOT IN (1,2)`},
		{"null", f.Null("deleted_at"), `"deleted_at" IS NULL`},
		{"not null", f.NotNull("deleted_at"), `"deleted_at" IS NOT NULL`},
		{"qualified column", f.Eq("users.id", 1), `"users"."id" = 1`},
		{"between", f.Between("age", 18, 65), `("age" >= 18 AND "age" <= 65)`},
		{"like", f.Like("name", "bob"), `"name" ILIKE '%bob%'`},
		{"raw", f.Raw("LOWER(email) = ?", "a@b.c"), `LOWER(email) = 'a@b.c'`},
		{"not", f.Not(f.Gt("age", 18)), `NOT ("age" > 18)`},
		{
			"or",
			f.Or(f.Eq("status", "a"), query.Filter{}, f.Eq("status", "b")),
			`("status" = 'a' OR "status" = 'b')`,
		},
		{
			"and",
			f.And(f.Gt("age", 18), f.NotNull("email")),
			`("age" > 18 AND "email" IS NOT NULL)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inline(t, conn, tt.filter))
		})
	}
}

func TestFilterLikeVendors(t *testing.T) {
	tests := []struct {
		vendor types.Vendor
		want   string
	}{
		{types.PostgreSQL, `"name" ILIKE '%bob%'`},
		{types.MySQL, "`name` LIKE '%bob%'"},
		{types.SQLite, `"name" LIKE '%bob%'`},
		{types.Oracle, `UPPER(name) LIKE '%BOB%'`},
	}

	for _, tt := range tests {
		t.Run(tt.vendor, func(t *testing.T) {
			conn := connector.MustNew(tt.vendor)
			f := query.New(conn, usersTable).Filter()
			assert.Equal(t, tt.want, inline(t, conn, f.Like("name", "bob")))
		})
	}
}

func TestZeroFilter(t *testing.T) {
	sql, args, err := query.Filter{}.ToSql()
	require.NoError(t, err)
	assert.Empty(t, sql)
	assert.Nil(t, args)

	f := users().Filter()
	assert.Equal(t, query.Filter{}, f.Not(query.Filter{}))
}

func TestFiltersInWhere(t *testing.T) {
	q := users()
	f := q.Filter()

	got := q.Where(f.Or(f.Eq("role", "admin"), f.Gt("karma", 100))).Where(f.Null("deleted_at"))
	assert.Equal(t,
		`SELECT * FROM "users" WHERE ("role" = 'admin' OR "karma" > 100) AND "deleted_at" IS NULL`,
		got.MustSQL())
}

func TestZeroJoinFilter(t *testing.T) {
	q := users()
	jf := q.JoinFilter()

	sql, args, err := query.JoinFilter{}.ToSql()
	require.NoError(t, err)
	assert.Empty(t, sql)
	assert.Nil(t, args)

	on := jf.And(query.JoinFilter{}, jf.EqColumn("posts.user_id", "users.id"), query.JoinFilter{})
	assert.Equal(t, `("posts"."user_id" = "users"."id")`, inline(t, pg(), on))

	joined := q.Joins(ast.InnerJoin(types.Table("posts"), jf.Or(query.JoinFilter{})))
	var rendered string
	require.NotPanics(t, func() { rendered, err = joined.ToSQL() })
	require.NoError(t, err)
	assert.Equal(t, selectUsers+` INNER JOIN "posts" ON (1=0)`, rendered)

	_, err = q.Joins(ast.InnerJoin(types.Table("posts"), query.JoinFilter{})).ToSQL()
	assert.ErrorIs(t, err, ast.ErrMissingJoinCondition)
}

func TestJoinFilterFactory(t *testing.T) {
	conn := pg()
	jf := query.New(conn, usersTable).JoinFilter()

	tests := []struct {
		name   string
		filter query.JoinFilter
		want   string
	}{
		{"eq", jf.EqColumn("posts.user_id", "users.id"), `"posts"."user_id" = "users"."id"`},
		{"not eq", jf.NotEqColumn("a.x", "b.x"), `"a"."x" != "b"."x"`},
		{"lt", jf.LtColumn("a.x", "b.x"), `"a"."x" < "b"."x"`},
		{"lte", jf.LteColumn("a.x", "b.x"), `"a"."x" <= "b"."x"`},
		{"gt", jf.GtColumn("a.x", "b.x"), `"a"."x" > "b"."x"`},
		{"gte", jf.GteColumn("a.x", "b.x"), `"a"."x" >= "b"."x"`},
		{
			"and",
			jf.And(jf.EqColumn("p.user_id", "u.id"), jf.Raw("p.kind = ?", "article")),
			`("p"."user_id" = "u"."id" AND p.kind = 'article')`,
		},
		{
			"or",
			jf.Or(jf.EqColumn("p.author_id", "u.id"), jf.EqColumn("p.editor_id", "u.id")),
			`("p"."author_id" = "u"."id" OR "p"."editor_id" = "u"."id")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inline(t, conn, tt.filter))
		})
	}
}
