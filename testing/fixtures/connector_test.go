package fixtures_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chagar/arel-query/query"
	tc "github.com/chagar/arel-query/testing"
	"github.com/chagar/arel-query/testing/fixtures"
	"github.com/chagar/arel-query/types"
)

func TestNewConnectorForDelegates(t *testing.T) {
	conn := fixtures.NewConnectorFor(types.MySQL)

	q := query.New(conn, tc.TestTableUsers).Where(map[string]any{"id": 1}).Limit("2")
	sql, err := q.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`id` = 1 LIMIT 2", sql)

	conn.AssertCalled(t, "BuildFromMap", tc.TestTableUsers, map[string]any{"id": 1})
	conn.AssertCalled(t, "SanitizeLimit", "2")
	conn.AssertNumberOfCalls(t, "Sanitize", 0)
}

func TestNewFailingConnector(t *testing.T) {
	boom := errors.New("sanitizer down")
	conn := fixtures.NewFailingConnector(types.PostgreSQL, boom)

	_, err := query.New(conn, tc.TestTablePosts).Where("id = ?", 1).ToSQL()
	assert.ErrorIs(t, err, boom)

	_, err = query.New(conn, tc.TestTablePosts).Limit(1).ToSQL()
	assert.ErrorIs(t, err, boom)

	sql, err := query.New(conn, tc.TestTablePosts).Select("id").ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT id FROM "posts"`, sql)
}

func TestExpectQuery(t *testing.T) {
	db, m, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	q := query.New(fixtures.NewConnectorFor(types.PostgreSQL), tc.TestTablePosts).
		Select("id", "title").
		Where("title LIKE ?", "Go%")

	exp, err := fixtures.ExpectQuery(m, q)
	require.NoError(t, err)
	exp.WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(7, "Go tips"))

	sql := q.MustSQL()
	rows, err := db.QueryContext(context.Background(), sql)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var (
		id    int
		title string
	)
	require.NoError(t, rows.Scan(&id, &title))
	assert.Equal(t, 7, id)
	assert.Equal(t, "Go tips", title)
	require.NoError(t, m.ExpectationsWereMet())

	_, err = fixtures.ExpectQuery(m, query.New(fixtures.NewConnectorFor(types.PostgreSQL), ""))
	assert.ErrorIs(t, err, types.ErrEmptyTableName)
}
