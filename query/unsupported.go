package query

import (
	"fmt"
	"strings"
)

// unsupportedMethods lists the methods a query deliberately does not offer,
// keyed by normalized name, with the builder method to use instead.
var unsupportedMethods = map[string]UnsupportedOperationError{
	"includes":     {Method: "includes", Alternative: "joins"},
	"eagerload":    {Method: "eagerLoad", Alternative: "joins"},
	"preload":      {Method: "preload", Alternative: "joins"},
	"bind":         {Method: "bind"},
	"references":   {Method: "references", Alternative: "joins"},
	"extending":    {Method: "extending"},
	"unscope":      {Method: "unscope"},
	"readonly":     {Method: "readonly"},
	"reorder":      {Method: "reorder"},
	"reverseorder": {Method: "reverseOrder"},
	"createwith":   {Method: "createWith"},
}

// normalizeMethod folds "eagerLoad", "eager_load" and "EagerLoad" together.
func normalizeMethod(method string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(method), "_", ""))
}

func (q *Query) unsupported(key string) (*Query, error) {
	e := unsupportedMethods[key]
	q.conn.Logger().Warn().
		Str("method", e.Method).
		Str("alternative", e.Alternative).
		Msg("Unsupported query method called")
	return nil, &e
}

// Includes is not supported; use Joins.
func (q *Query) Includes(_ ...any) (*Query, error) { return q.unsupported("includes") }

// EagerLoad is not supported; use Joins.
func (q *Query) EagerLoad(_ ...any) (*Query, error) { return q.unsupported("eagerload") }

// Preload is not supported; use Joins.
func (q *Query) Preload(_ ...any) (*Query, error) { return q.unsupported("preload") }

// Bind is not supported. Pass bind values to Where or Having instead.
func (q *Query) Bind(_ ...any) (*Query, error) { return q.unsupported("bind") }

// References is not supported; use Joins.
func (q *Query) References(_ ...any) (*Query, error) { return q.unsupported("references") }

// Extending is not supported.
func (q *Query) Extending(_ ...any) (*Query, error) { return q.unsupported("extending") }

// Unscope is not supported. Build a new query instead.
func (q *Query) Unscope(_ ...any) (*Query, error) { return q.unsupported("unscope") }

// Readonly is not supported.
func (q *Query) Readonly(_ ...any) (*Query, error) { return q.unsupported("readonly") }

// Reorder is not supported.
func (q *Query) Reorder(_ ...any) (*Query, error) { return q.unsupported("reorder") }

// ReverseOrder is not supported.
func (q *Query) ReverseOrder(_ ...any) (*Query, error) { return q.unsupported("reverseorder") }

// CreateWith is not supported.
func (q *Query) CreateWith(_ ...any) (*Query, error) { return q.unsupported("createwith") }

// Dispatch calls a builder method by name, for callers that receive method
// names as data. Names are matched ignoring case and underscores. Unsupported
// methods fail with *UnsupportedOperationError; names outside the builder
// surface fail with ErrUnknownMethod.
func (q *Query) Dispatch(method string, args ...any) (*Query, error) {
	key := normalizeMethod(method)
	if _, ok := unsupportedMethods[key]; ok {
		return q.unsupported(key)
	}

	switch key {
	case "select":
		return q.Select(args...), nil
	case "group":
		return q.Group(args...), nil
	case "order":
		return q.Order(args...), nil
	case "joins":
		return q.Joins(args...), nil
	case "limit", "offset", "from":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s takes exactly one argument, got %d", ErrInvalidArguments, method, len(args))
		}
		switch key {
		case "limit":
			return q.Limit(args[0]), nil
		case "offset":
			return q.Offset(args[0]), nil
		default:
			return q.From(args[0]), nil
		}
	case "where", "having":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one argument", ErrInvalidArguments, method)
		}
		if key == "where" {
			return q.Where(args[0], args[1:]...), nil
		}
		return q.Having(args[0], args[1:]...), nil
	case "lock", "distinct", "uniq":
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %s takes at most one argument, got %d", ErrInvalidArguments, method, len(args))
		}
		if key == "lock" {
			return q.Lock(args...), nil
		}
		return q.Distinct(args...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}
