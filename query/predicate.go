package query

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/types"
)

type predicateKind int

const (
	predicateRaw predicateKind = iota
	predicateConditions
	predicateOpaque
)

// Predicate is one WHERE or HAVING input: a SQL string (optionally a template
// with bind values), a condition map, or an opaque pre-built condition.
// Build one with Raw, Conditions or Opaque.
type Predicate struct {
	kind  predicateKind
	sql   string
	args  []any
	conds map[string]any
	node  any
}

// Raw is a literal condition, or a template when args are given.
// Templates use "?" or, with a single map[string]any argument, ":name" binds.
func Raw(sql string, args ...any) Predicate {
	return Predicate{kind: predicateRaw, sql: sql, args: args}
}

// Conditions is a column/value map expanded by the connector's predicate builder.
func Conditions(conds map[string]any) Predicate {
	return Predicate{kind: predicateConditions, conds: conds}
}

// Opaque passes a pre-built condition through, typically a squirrel.Sqlizer
// such as a Filter. It is inlined when the query renders.
func Opaque(node any) Predicate {
	return Predicate{kind: predicateOpaque, node: node}
}

// Fragment is one normalized condition held by the where and having clauses.
type Fragment struct {
	sql     string
	grouped bool
	node    any
}

// SQL returns the fragment text. It is empty for opaque fragments, which
// render when the query is built.
func (f Fragment) SQL() string { return f.sql }

// Node returns the opaque condition, or nil.
func (f Fragment) Node() any { return f.node }

// toPredicate classifies a Where/Having argument list.
func toPredicate(opts any, rest []any) (Predicate, bool, error) {
	switch v := opts.(type) {
	case nil:
		if len(rest) > 0 {
			return Predicate{}, false, fmt.Errorf("%w: bind values without a condition", types.ErrInvalidPredicate)
		}
		return Predicate{}, false, nil
	case Predicate:
		if len(rest) > 0 {
			return Predicate{}, false, fmt.Errorf("%w: extra arguments after a Predicate", types.ErrInvalidPredicate)
		}
		return v, true, nil
	case string:
		return Raw(v, rest...), true, nil
	case []string:
		if len(v) == 0 {
			return Predicate{}, false, nil
		}
		args := make([]any, 0, len(v)-1+len(rest))
		for _, s := range v[1:] {
			args = append(args, s)
		}
		return Raw(v[0], append(args, rest...)...), true, nil
	case []any:
		if len(v) == 0 {
			return Predicate{}, false, nil
		}
		template, ok := v[0].(string)
		if !ok {
			return Predicate{}, false, fmt.Errorf("%w: template must be a string, got %T", types.ErrInvalidPredicate, v[0])
		}
		args := append(append([]any(nil), v[1:]...), rest...)
		return Raw(template, args...), true, nil
	case map[string]any:
		if len(rest) > 0 {
			return Predicate{}, false, fmt.Errorf("%w: a condition map takes no bind values", types.ErrInvalidPredicate)
		}
		return Conditions(v), true, nil
	default:
		if len(rest) > 0 {
			return Predicate{}, false, fmt.Errorf("%w: %T takes no bind values", types.ErrInvalidPredicate, opts)
		}
		return Opaque(opts), true, nil
	}
}

// normalize turns a predicate into fragments. Literal and templated SQL is
// grouped so that it keeps its own precedence when AND-ed in WHERE.
func normalize(conn Connector, table string, p Predicate) ([]Fragment, error) {
	switch p.kind {
	case predicateRaw:
		if len(p.args) == 0 {
			return []Fragment{{sql: p.sql, grouped: true}}, nil
		}
		sql, err := conn.Sanitize(p.sql, p.args...)
		if err != nil {
			return nil, err
		}
		return []Fragment{{sql: sql, grouped: true}}, nil
	case predicateConditions:
		conds, err := conn.BuildFromMap(table, p.conds)
		if err != nil {
			return nil, err
		}
		fragments := make([]Fragment, len(conds))
		for i, c := range conds {
			fragments[i] = Fragment{sql: c}
		}
		return fragments, nil
	default:
		return []Fragment{{node: p.node}}, nil
	}
}

// render returns the fragment's SQL, inlining opaque nodes through conn.
func (f Fragment) render(conn Connector) (string, error) {
	if f.node == nil {
		return f.sql, nil
	}

	node, ok := f.node.(squirrel.Sqlizer)
	if !ok {
		return "", fmt.Errorf("%w: unsupported condition type %T", types.ErrInvalidPredicate, f.node)
	}
	return conn.Inline(node)
}
