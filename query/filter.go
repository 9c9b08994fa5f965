package query

import (
	"reflect"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/types"
)

// Filter is a composable WHERE condition built by FilterFactory. Column names
// are quoted for the query's vendor; values are inlined when the query renders.
type Filter struct {
	sqlizer squirrel.Sqlizer
}

// ToSql generates the SQL fragment and arguments for this filter.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (f Filter) ToSql() (sql string, args []any, err error) {
	if f.sqlizer == nil {
		return "", nil, nil
	}
	return f.sqlizer.ToSql()
}

// FilterFactory creates filters with vendor-specific quoting.
// Obtain one through Query.Filter().
type FilterFactory struct {
	conn Connector
}

// Eq creates an equality filter (column = value).
func (ff *FilterFactory) Eq(column string, value any) Filter {
	return Filter{sqlizer: squirrel.Eq{ff.quote(column): value}}
}

// NotEq creates a not-equal filter (column <> value).
func (ff *FilterFactory) NotEq(column string, value any) Filter {
	return Filter{sqlizer: squirrel.NotEq{ff.quote(column): value}}
}

// Lt creates a less-than filter (column < value).
func (ff *FilterFactory) Lt(column string, value any) Filter {
	return Filter{sqlizer: squirrel.Lt{ff.quote(column): value}}
}

// Lte creates a less-than-or-equal filter (column <= value).
func (ff *FilterFactory) Lte(column string, value any) Filter {
	return Filter{sqlizer: squirrel.LtOrEq{ff.quote(column): value}}
}

// Gt creates a greater-than filter (column > value).
func (ff *FilterFactory) Gt(column string, value any) Filter {
	return Filter{sqlizer: squirrel.Gt{ff.quote(column): value}}
}

// Gte creates a greater-than-or-equal filter (column >= value).
func (ff *FilterFactory) Gte(column string, value any) Filter {
	return Filter{sqlizer: squirrel.GtOrEq{ff.quote(column): value}}
}

// normalizeToSlice wraps scalars so squirrel renders IN instead of "=".
func normalizeToSlice(value any) any {
	if value == nil {
		return []any{}
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return value
	default:
		return []any{value}
	}
}

// In creates an IN filter. Scalars are wrapped in a one-element list.
//
//	f.In("status", []string{"active", "pending"})
//	f.In("status", "active")
func (ff *FilterFactory) In(column string, values any) Filter {
	return Filter{sqlizer: squirrel.Eq{ff.quote(column): normalizeToSlice(values)}}
}

// NotIn creates a NOT IN filter. Scalars are wrapped in a one-element list.
func (ff *FilterFactory) NotIn(column string, values any) Filter {
	return Filter{sqlizer: squirrel.NotEq{ff.quote(column): normalizeToSlice(values)}}
}

// Like creates a case-insensitive LIKE filter matching pattern anywhere in the column:
//   - PostgreSQL: ILIKE
//   - Oracle: UPPER() on both sides
//   - MySQL and SQLite: LIKE, which is case-insensitive under their default collations
func (ff *FilterFactory) Like(column, pattern string) Filter {
	quoted := ff.quote(column)
	value := "%" + pattern + "%"

	switch ff.conn.Vendor() {
	case types.PostgreSQL:
		return Filter{sqlizer: squirrel.ILike{quoted: value}}
	case types.Oracle:
		return Filter{sqlizer: squirrel.Like{"UPPER(" + quoted + ")": strings.ToUpper(value)}}
	default:
		return Filter{sqlizer: squirrel.Like{quoted: value}}
	}
}

// Null creates an IS NULL filter.
func (ff *FilterFactory) Null(column string) Filter {
	return Filter{sqlizer: squirrel.Eq{ff.quote(column): nil}}
}

// NotNull creates an IS NOT NULL filter.
func (ff *FilterFactory) NotNull(column string) Filter {
	return Filter{sqlizer: squirrel.NotEq{ff.quote(column): nil}}
}

// Between creates an inclusive range filter (column >= lower AND column <= upper).
func (ff *FilterFactory) Between(column string, lowerBound, upperBound any) Filter {
	quoted := ff.quote(column)
	return Filter{sqlizer: squirrel.And{
		squirrel.GtOrEq{quoted: lowerBound},
		squirrel.LtOrEq{quoted: upperBound},
	}}
}

// And combines filters with AND. Zero-value filters are skipped.
func (ff *FilterFactory) And(filters ...Filter) Filter {
	conj := make(squirrel.And, 0, len(filters))
	for _, f := range filters {
		if f.sqlizer != nil {
			conj = append(conj, f.sqlizer)
		}
	}
	return Filter{sqlizer: conj}
}

// Or combines filters with OR. Zero-value filters are skipped.
func (ff *FilterFactory) Or(filters ...Filter) Filter {
	disj := make(squirrel.Or, 0, len(filters))
	for _, f := range filters {
		if f.sqlizer != nil {
			disj = append(disj, f.sqlizer)
		}
	}
	return Filter{sqlizer: disj}
}

// Not negates a filter.
func (ff *FilterFactory) Not(filter Filter) Filter {
	if filter.sqlizer == nil {
		return filter
	}
	sql, args, err := filter.sqlizer.ToSql()
	if err != nil {
		return filter
	}
	return Filter{sqlizer: squirrel.Expr("NOT ("+sql+")", args...)}
}

// Raw creates a filter from a SQL template with "?" placeholders.
//
// WARNING: the condition text is not quoted or checked. Bind values are
// quoted; never concatenate user input into condition.
func (ff *FilterFactory) Raw(condition string, args ...any) Filter {
	return Filter{sqlizer: squirrel.Expr(condition, args...)}
}

func (ff *FilterFactory) quote(column string) string {
	return ff.conn.QuoteColumnName(column)
}
