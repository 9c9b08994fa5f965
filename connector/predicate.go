package connector

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/types"
)

// BuildFromMap expands a condition map into one SQL fragment per key, in
// sorted key order. Columns are qualified with table unless the key already
// names a table ("orders.status"); a nested map qualifies its keys with the
// outer key as table name.
//
// Values map to predicates as follows:
//
//	nil                 col IS NULL
//	scalar              col = value
//	slice               col IN (...), with "OR col IS NULL" when it holds nil
//	empty slice         (1=0)
//	types.Range         col BETWEEN a AND b, or col >= a AND col < b
//	squirrel.Sqlizer    col IN (subquery)
func (c *Connector) BuildFromMap(table string, conds map[string]any) ([]string, error) {
	keys := make([]string, 0, len(conds))
	for k := range conds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fragments := make([]string, 0, len(keys))
	for _, key := range keys {
		value := conds[key]

		if nested, ok := value.(map[string]any); ok {
			inner, err := c.BuildFromMap(key, nested)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, inner...)
			continue
		}

		tbl, col := table, key
		if i := strings.LastIndex(key, "."); i >= 0 {
			tbl, col = key[:i], key[i+1:]
		}
		if strings.TrimSpace(col) == "" {
			return nil, fmt.Errorf("%w: empty column in condition key %q", types.ErrInvalidPredicate, key)
		}

		column := c.QuoteColumnName(col)
		if tbl != "" {
			column = c.QuoteTableName(tbl) + "." + column
		}

		pred, err := c.columnPredicate(column, value)
		if err != nil {
			return nil, err
		}
		sql, err := c.Inline(pred)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, sql)
	}

	return fragments, nil
}

func (c *Connector) columnPredicate(column string, value any) (squirrel.Sqlizer, error) {
	switch v := value.(type) {
	case nil:
		return squirrel.Eq{column: nil}, nil
	case []byte:
		return squirrel.Expr(column+" = ?", v), nil
	case types.Range:
		return rangePredicate(column, v), nil
	case types.RawExpression:
		return squirrel.Expr(column + " = " + v.SQL), nil
	case squirrel.Sqlizer:
		if err := types.ValidateSubquery(v); err != nil {
			return nil, err
		}
		sql, err := c.Inline(v)
		if err != nil {
			return nil, err
		}
		return squirrel.Expr(column + " IN (" + sql + ")"), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return listPredicate(column, rv), nil
	}
	return squirrel.Eq{column: value}, nil
}

// listPredicate splits nil out of a list so it renders as IS NULL instead of IN (NULL).
func listPredicate(column string, rv reflect.Value) squirrel.Sqlizer {
	values := make([]any, 0, rv.Len())
	hasNil := false
	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		if isNil(elem) {
			hasNil = true
			continue
		}
		values = append(values, elem)
	}

	switch {
	case !hasNil:
		return squirrel.Eq{column: values}
	case len(values) == 0:
		return squirrel.Eq{column: nil}
	default:
		return squirrel.Or{squirrel.Eq{column: values}, squirrel.Eq{column: nil}}
	}
}

func rangePredicate(column string, r types.Range) squirrel.Sqlizer {
	begin, end := !isNil(r.Begin), !isNil(r.End)
	switch {
	case begin && end && !r.ExcludeEnd:
		return squirrel.Expr(column+" BETWEEN ? AND ?", r.Begin, r.End)
	case begin && end:
		return squirrel.And{squirrel.GtOrEq{column: r.Begin}, squirrel.Lt{column: r.End}}
	case begin:
		return squirrel.GtOrEq{column: r.Begin}
	case end && r.ExcludeEnd:
		return squirrel.Lt{column: r.End}
	case end:
		return squirrel.LtOrEq{column: r.End}
	default:
		return squirrel.Expr("1=1")
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
