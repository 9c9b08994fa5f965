//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRef(t *testing.T) {
	t.Run("Table without alias", func(t *testing.T) {
		table := Table("users")
		assert.Equal(t, "users", table.Name())
		assert.Equal(t, "", table.Alias())
		assert.False(t, table.HasAlias())
		assert.Equal(t, "users", table.Reference())
	})

	t.Run("As returns an aliased copy", func(t *testing.T) {
		table := Table("customers")
		aliased := table.As("c")
		assert.Equal(t, "customers", aliased.Name())
		assert.Equal(t, "c", aliased.Alias())
		assert.True(t, aliased.HasAlias())
		assert.Equal(t, "c", aliased.Reference())
		assert.False(t, table.HasAlias())
	})

	t.Run("Empty alias panics", func(t *testing.T) {
		assert.PanicsWithValue(t, ErrEmptyTableAlias.Error(), func() {
			Table("users").As("")
		})
	})
}

func TestVendors(t *testing.T) {
	assert.Equal(t, []Vendor{PostgreSQL, MySQL, SQLite, Oracle}, Vendors())
	assert.True(t, IsSupportedVendor("oracle"))
	assert.False(t, IsSupportedVendor("mssql"))
	assert.False(t, IsSupportedVendor(""))
}

func TestExpr(t *testing.T) {
	t.Run("Without alias", func(t *testing.T) {
		e := Expr("COUNT(*)")
		assert.Equal(t, "COUNT(*)", e.String())
	})

	t.Run("With alias", func(t *testing.T) {
		e := Expr("COUNT(*)", "total")
		assert.Equal(t, "COUNT(*) AS total", e.String())

		sql, args, err := e.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "COUNT(*) AS total", sql)
		assert.Empty(t, args)
	})

	t.Run("Empty SQL panics", func(t *testing.T) {
		assert.PanicsWithValue(t, ErrEmptyExpressionSQL.Error(), func() { Expr("   ") })
	})

	t.Run("Too many aliases panics", func(t *testing.T) {
		assert.Panics(t, func() { Expr("COUNT(*)", "a", "b") })
	})

	t.Run("Dangerous alias panics", func(t *testing.T) {
		for _, alias := range []string{"a;b", "a'b", `a"b`, "a--", "/*a", "a*/"} {
			assert.Panics(t, func() { Expr("COUNT(*)", alias) }, alias)
		}
	})
}

func TestRange(t *testing.T) {
	r := Between(1, 10)
	assert.Equal(t, 1, r.Begin)
	assert.Equal(t, 10, r.End)
	assert.False(t, r.ExcludeEnd)

	u := Until("a", "m")
	assert.True(t, u.ExcludeEnd)
}

type validatingSubquery struct{ err error }

func (v validatingSubquery) ToSql() (string, []any, error) { return "SELECT 1", nil, nil }
func (v validatingSubquery) ValidateForSubquery() error    { return v.err }

func TestValidateSubquery(t *testing.T) {
	t.Run("Nil subquery", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSubquery(nil), ErrNilSubquery)
	})

	t.Run("Valid sqlizer", func(t *testing.T) {
		assert.NoError(t, ValidateSubquery(squirrel.Select("id").From("users")))
	})

	t.Run("Render error", func(t *testing.T) {
		err := ValidateSubquery(squirrel.Select().From("users"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSubquery))
	})

	t.Run("Empty SQL", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSubquery(squirrel.Expr("")), ErrEmptySubquerySQL)
	})

	t.Run("Validator hook", func(t *testing.T) {
		assert.NoError(t, ValidateSubquery(validatingSubquery{}))
		err := ValidateSubquery(validatingSubquery{err: errors.New("boom")})
		assert.ErrorIs(t, err, ErrInvalidSubquery)
	})

	t.Run("NewSubquery", func(t *testing.T) {
		src := squirrel.Select("id").From("users")
		s := NewSubquery(src, "u")
		assert.Equal(t, "u", s.Alias())
		assert.Equal(t, src, s.Source())
		assert.Panics(t, func() { NewSubquery(src, " ") })
	})
}
