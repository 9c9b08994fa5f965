// Package query builds SELECT statements through chained, immutable calls.
//
// Every builder method returns a new *Query; the receiver is never changed.
// Fragments accumulate in a value store keyed by clause kind and are
// assembled into an ast.Statement the first time the query renders.
//
//	q := query.New(conn, "users").
//		Where(map[string]any{"name": "Bob"}).
//		Limit(5)
//	sql, err := q.ToSQL() // SELECT * FROM "users" WHERE "users"."name" = 'Bob' LIMIT 5
package query

import (
	"sync"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/ast"
	"github.com/chagar/arel-query/logger"
	"github.com/chagar/arel-query/types"
)

// Connector is what a Query needs from the database side: identifier
// quoting, value sanitizing and condition-map expansion for one vendor.
// *connector.Connector implements it.
type Connector interface {
	ast.Engine
	Sanitize(template string, values ...any) (string, error)
	SanitizeLimit(limit any) (*uint64, error)
	BuildFromMap(table string, conds map[string]any) ([]string, error)
	Logger() logger.Logger
}

// Query is an immutable SELECT builder bound to one table.
type Query struct {
	conn  Connector
	table *types.TableRef
	store valueStore
	err   error

	once     sync.Once
	sql      string
	stmt     *ast.Statement
	buildErr error
}

// New creates a query selecting from table.
func New(conn Connector, table string) *Query {
	return NewFromRef(conn, types.Table(table))
}

// NewFromRef creates a query selecting from a table reference, which may carry an alias.
func NewFromRef(conn Connector, table *types.TableRef) *Query {
	return &Query{conn: conn, table: table, store: newValueStore()}
}

func (q *Query) clone() *Query {
	return &Query{
		conn:  q.conn,
		table: q.table,
		store: q.store.clone(),
		err:   q.err,
	}
}

func (q *Query) withError(err error) *Query {
	c := q.clone()
	if c.err == nil {
		c.err = err
	}
	return c
}

func (q *Query) withSingle(kind ClauseKind, value any) *Query {
	c := q.clone()
	c.store.setSingle(kind, value)
	return c
}

func (q *Query) withMulti(kind ClauseKind, values []any) *Query {
	c := q.clone()
	c.store.appendMulti(kind, values...)
	return c
}

// Table returns the query's table reference.
func (q *Query) Table() *types.TableRef { return q.table }

// Connector returns the connector the query renders with.
func (q *Query) Connector() Connector { return q.conn }

// Err returns the first error recorded while accumulating fragments, such as
// a template whose bind values do not match. ToSQL returns it too.
func (q *Query) Err() error { return q.err }

// Select appends projections: strings, []string, types.RawExpression or
// squirrel.Sqlizer subqueries.
func (q *Query) Select(fields ...any) *Query {
	return q.withMulti(KindSelect, fields)
}

// Group appends GROUP BY expressions. Blank strings are ignored.
func (q *Query) Group(fields ...any) *Query {
	return q.withMulti(KindGroup, fields)
}

// Order appends ORDER BY expressions. Blank strings are ignored.
func (q *Query) Order(fields ...any) *Query {
	return q.withMulti(KindOrder, fields)
}

// Joins appends join clauses: raw SQL strings or ast.JoinSource nodes.
// Other values fail with *UnsupportedJoinTypeError when the query renders.
func (q *Query) Joins(joins ...any) *Query {
	return q.withMulti(KindJoins, joins)
}

// Limit sets the row cap. nil removes the cap; the value must otherwise be a
// non-negative integer or integer string, checked when the query renders.
func (q *Query) Limit(limit any) *Query {
	return q.withSingle(KindLimit, limit)
}

// Offset sets the number of rows to skip. Strings are read up to their first
// non-digit ("12abc" is 12, "abc" is 0); negative values render as 0.
func (q *Query) Offset(offset any) *Query {
	return q.withSingle(KindOffset, offset)
}

// From overrides the FROM source with a SQL string, a *types.TableRef or a
// *types.Subquery (see As).
func (q *Query) From(source any) *Query {
	return q.withSingle(KindFrom, source)
}

// Where adds conditions AND-ed into the WHERE clause.
//
// Accepted shapes:
//
//	q.Where("active = TRUE")                          // literal
//	q.Where("name = ? AND age > ?", "Bob", 21)        // template
//	q.Where("name = :name", map[string]any{"name": "Bob"})
//	q.Where([]any{"name = ?", "Bob"})                 // template and values in one slice
//	q.Where(map[string]any{"name": "Bob"})            // condition map
//	q.Where(q.Filter().Gt("age", 21))                 // pre-built condition
//	q.Where(query.Raw("age > ?", 21))                 // explicit Predicate
func (q *Query) Where(opts any, rest ...any) *Query {
	return q.addPredicate(KindWhere, opts, rest)
}

// Having adds conditions AND-ed into the HAVING clause. It takes the same
// shapes as Where.
func (q *Query) Having(opts any, rest ...any) *Query {
	return q.addPredicate(KindHaving, opts, rest)
}

func (q *Query) addPredicate(kind ClauseKind, opts any, rest []any) *Query {
	p, ok, err := toPredicate(opts, rest)
	if err != nil {
		return q.withError(err)
	}
	if !ok {
		return q.clone()
	}

	fragments, err := normalize(q.conn, q.table.Reference(), p)
	if err != nil {
		return q.withError(err)
	}

	values := make([]any, len(fragments))
	for i, f := range fragments {
		values[i] = f
	}
	return q.withMulti(kind, values)
}

// Lock sets the row lock. With no argument or true it renders FOR UPDATE;
// false removes it; a string is used as the lock clause.
func (q *Query) Lock(lock ...any) *Query {
	if len(lock) == 0 {
		return q.withSingle(KindLock, true)
	}
	return q.withSingle(KindLock, lock[0])
}

// Distinct sets SELECT DISTINCT. With no argument or true it is enabled;
// false disables it; a column name or []string renders DISTINCT ON (PostgreSQL).
func (q *Query) Distinct(value ...any) *Query {
	if len(value) == 0 {
		return q.withSingle(KindDistinct, true)
	}
	return q.withSingle(KindDistinct, value[0])
}

// Uniq is an alias of Distinct.
func (q *Query) Uniq(value ...any) *Query {
	return q.Distinct(value...)
}

// As wraps the query as a derived table for another query's From.
func (q *Query) As(alias string) *types.Subquery {
	return types.NewSubquery(q, alias)
}

// Filter returns a factory for pre-built WHERE conditions.
func (q *Query) Filter() *FilterFactory {
	return &FilterFactory{conn: q.conn}
}

// JoinFilter returns a factory for column-to-column join conditions.
func (q *Query) JoinFilter() *JoinFilterFactory {
	return &JoinFilterFactory{conn: q.conn}
}

// Values returns a copy of the fragments accumulated for a multi-valued
// clause. Where and having hold Fragment values.
func (q *Query) Values(kind ClauseKind) []any {
	return append([]any(nil), q.store.list(kind)...)
}

// Value returns the value of a single-valued clause and whether it was set.
func (q *Query) Value(kind ClauseKind) (any, bool) {
	v, ok := q.store.single[kind]
	return v, ok
}

// ToSQL renders the query. The result is computed once per instance.
func (q *Query) ToSQL() (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.once.Do(q.render)
	return q.sql, q.buildErr
}

// MustSQL is ToSQL that panics on error.
func (q *Query) MustSQL() string {
	sql, err := q.ToSQL()
	if err != nil {
		panic(err)
	}
	return sql
}

// ToSql implements squirrel.Sqlizer so a query can be used as a subquery or
// passed to database/sql helpers. It never returns arguments.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (q *Query) ToSql() (sql string, args []any, err error) {
	sql, err = q.ToSQL()
	return sql, nil, err
}

// ValidateForSubquery reports whether the query can render.
func (q *Query) ValidateForSubquery() error {
	_, err := q.ToSQL()
	return err
}

// Statement returns a copy of the assembled statement tree.
func (q *Query) Statement() (*ast.Statement, error) {
	if _, err := q.ToSQL(); err != nil {
		return nil, err
	}
	return q.stmt.Clone(), nil
}

func (q *Query) render() {
	stmt, err := q.build()
	if err == nil {
		q.sql, err = stmt.ToSQL()
	}
	if err != nil {
		q.buildErr = err
		q.conn.Logger().Debug().Err(err).Str("table", q.table.Name()).Msg("Failed to render query")
		return
	}

	q.stmt = stmt
	q.conn.Logger().Debug().Str("table", q.table.Name()).Int("length", len(q.sql)).Msg("Rendered query")
}

var _ squirrel.Sqlizer = (*Query)(nil)
