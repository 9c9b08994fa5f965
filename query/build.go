package query

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/ast"
	"github.com/chagar/arel-query/types"
)

// build assembles the statement tree from the value store.
func (q *Query) build() (*ast.Statement, error) {
	stmt := ast.NewStatement(q.conn, q.table)
	s := q.store

	if s.has(KindJoins) {
		joins, err := buildJoins(stmt, s.list(KindJoins))
		if err != nil {
			return nil, err
		}
		stmt.AddJoinSources(joins...)
	}

	if s.has(KindWhere) {
		conds, err := q.conditions(s.list(KindWhere), true)
		if err != nil {
			return nil, err
		}
		for _, c := range conds {
			stmt.Where(c)
		}
	}

	if s.has(KindHaving) {
		conds, err := q.conditions(s.list(KindHaving), false)
		if err != nil {
			return nil, err
		}
		for _, c := range conds {
			stmt.Having(c)
		}
	}

	if s.has(KindLimit) {
		limit, err := q.conn.SanitizeLimit(s.get(KindLimit))
		if err != nil {
			return nil, err
		}
		stmt.Take(limit)
	}

	if s.has(KindOffset) {
		offset, err := coerceOffset(s.get(KindOffset))
		if err != nil {
			return nil, err
		}
		stmt.Skip(offset)
	}

	if s.has(KindGroup) {
		groups, err := q.expressions(s.list(KindGroup), true)
		if err != nil {
			return nil, err
		}
		stmt.Group(groups...)
	}

	if s.has(KindOrder) {
		orders, err := q.expressions(s.list(KindOrder), true)
		if err != nil {
			return nil, err
		}
		stmt.Order(orders...)
	}

	projections, err := q.expressions(s.list(KindSelect), false)
	if err != nil {
		return nil, err
	}
	stmt.Project(projections...)

	if s.has(KindDistinct) {
		if err := applyDistinct(stmt, s.get(KindDistinct)); err != nil {
			return nil, err
		}
	}

	if s.has(KindFrom) {
		if err := applyFrom(stmt, s.get(KindFrom)); err != nil {
			return nil, err
		}
	}

	if s.has(KindLock) {
		if err := applyLock(stmt, s.get(KindLock)); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// conditions renders where/having fragments, drops empty ones and dedups by
// text in first-seen order. Literal SQL is parenthesized in both clauses.
// WHERE drops only ""; HAVING also drops blank text.
func (q *Query) conditions(values []any, where bool) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		f, ok := v.(Fragment)
		if !ok {
			return nil, fmt.Errorf("%w: %T", types.ErrInvalidPredicate, v)
		}
		sql, err := f.render(q.conn)
		if err != nil {
			return nil, err
		}

		if where && sql == "" || !where && strings.TrimSpace(sql) == "" {
			continue
		}
		if _, dup := seen[sql]; dup {
			continue
		}
		seen[sql] = struct{}{}

		if f.grouped {
			sql = "(" + sql + ")"
		}
		out = append(out, sql)
	}
	return out, nil
}

// expressions renders select/group/order fragments and dedups them by text.
func (q *Query) expressions(values []any, dropBlank bool) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	add := func(sql string) {
		if dropBlank && strings.TrimSpace(sql) == "" {
			return
		}
		if _, dup := seen[sql]; dup {
			return
		}
		seen[sql] = struct{}{}
		out = append(out, sql)
	}

	for _, v := range values {
		switch e := v.(type) {
		case string:
			add(e)
		case []string:
			for _, s := range e {
				add(s)
			}
		case types.RawExpression:
			add(e.String())
		case squirrel.Sqlizer:
			sql, err := q.conn.Inline(e)
			if err != nil {
				return nil, err
			}
			add("(" + sql + ")")
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedExpression, v)
		}
	}
	return out, nil
}

// coerceOffset reads an offset the lenient way: numbers truncate, strings
// parse their leading integer ("12abc" is 12, "abc" is 0), nil is 0, and
// negative results clamp to 0.
func coerceOffset(v any) (uint64, error) {
	if v == nil {
		return 0, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, nil
		}
		return coerceOffset(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampOffset(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(rv.Float())
		if math.IsNaN(f) || f <= 0 {
			return 0, nil
		}
		if f >= math.MaxUint64 {
			return math.MaxUint64, nil
		}
		return uint64(f), nil
	case reflect.String:
		return clampOffset(leadingInt(rv.String())), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidOffsetValue, v, v)
	}
}

func clampOffset(n int64) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// leadingInt parses an optional sign and the digits that follow, after
// leading whitespace. Out-of-range values saturate.
func leadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return n
}

func applyDistinct(stmt *ast.Statement, v any) error {
	switch d := v.(type) {
	case nil:
		stmt.Distinct(false)
	case bool:
		stmt.Distinct(d)
	case string:
		if strings.TrimSpace(d) == "" {
			stmt.Distinct(true)
			return nil
		}
		stmt.DistinctOn(d)
	case []string:
		if len(d) == 0 {
			stmt.Distinct(true)
			return nil
		}
		stmt.DistinctOn(d...)
	default:
		return fmt.Errorf("%w: distinct %T", ErrUnsupportedExpression, v)
	}
	return nil
}

func applyFrom(stmt *ast.Statement, v any) error {
	switch src := v.(type) {
	case string:
		if strings.TrimSpace(src) == "" {
			return nil
		}
		stmt.From(src)
	case *types.TableRef:
		stmt.FromTable(src)
	case *types.Subquery:
		stmt.FromSubquery(src)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedSource, v)
	}
	return nil
}

func applyLock(stmt *ast.Statement, v any) error {
	switch l := v.(type) {
	case nil:
		stmt.Lock("")
	case bool:
		if l {
			stmt.Lock("FOR UPDATE")
		} else {
			stmt.Lock("")
		}
	case string:
		stmt.Lock(strings.TrimSpace(l))
	default:
		return fmt.Errorf("%w: lock %T", ErrUnsupportedExpression, v)
	}
	return nil
}
