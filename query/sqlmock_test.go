package query_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chagar/arel-query/query"
)

func TestRenderedQueryWithSqlmock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	q := query.New(pg(), usersTable).
		Select("id", "name").
		Where(map[string]any{"active": true}).
		Where("name LIKE ?", "J%").
		Order("id").
		Limit(1)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	require.Empty(t, args)
	assert.Equal(t,
		`SELECT id, name FROM "users" WHERE "users"."active" = TRUE AND (name LIKE 'J%') ORDER BY id LIMIT 1`,
		sql)

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "John")
	mock.ExpectQuery(regexp.QuoteMeta(sql)).WillReturnRows(rows)

	resultRows, err := db.QueryContext(context.Background(), sql, args...)
	require.NoError(t, err)
	defer resultRows.Close()

	require.True(t, resultRows.Next())
	var id int
	var name string
	require.NoError(t, resultRows.Scan(&id, &name))
	assert.Equal(t, 1, id)
	assert.Equal(t, "John", name)
	require.NoError(t, resultRows.Err())

	require.NoError(t, mock.ExpectationsWereMet())
}
