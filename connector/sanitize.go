package connector

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/internal/sqllex"
	"github.com/chagar/arel-query/types"
)

// BindError describes a template whose placeholders could not be bound.
// It wraps types.ErrBindCountMismatch or types.ErrMissingBind.
type BindError struct {
	Err      error
	Template string
	Name     string // missing named bind
	Expected int    // positional placeholders in the template
	Got      int    // values supplied
}

func (e *BindError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v :%s in: %s", e.Err, e.Name, e.Template)
	}
	return fmt.Sprintf("%v (%d for %d) in: %s", e.Err, e.Got, e.Expected, e.Template)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Sanitize interpolates values into template and returns plain SQL.
//
// A single map[string]any value binds ":name" placeholders; otherwise each
// "?" consumes one value in order. Slices expand to a comma separated list so
// "id IN (?)" works with []int{1, 2}. Placeholders inside quoted strings and
// identifiers are ignored. A template without placeholders and without values
// is returned unchanged.
func (c *Connector) Sanitize(template string, values ...any) (string, error) {
	tokens := sqllex.Tokenize(template)

	var (
		sql string
		err error
	)
	if named, ok := namedBinds(values); ok && sqllex.HasNamed(tokens) {
		sql, err = c.bindNamed(template, tokens, named)
	} else {
		sql, err = c.bindPositional(template, tokens, values)
	}

	if err != nil {
		c.log.Debug().Err(err).Str("template", template).Int("binds", len(values)).Msg("Failed to sanitize SQL template")
		return "", err
	}
	return sql, nil
}

func namedBinds(values []any) (map[string]any, bool) {
	if len(values) != 1 {
		return nil, false
	}
	m, ok := values[0].(map[string]any)
	return m, ok
}

func (c *Connector) bindPositional(template string, tokens []sqllex.Token, values []any) (string, error) {
	expected := sqllex.CountPositional(tokens)
	if expected != len(values) {
		return "", &BindError{Err: types.ErrBindCountMismatch, Template: template, Expected: expected, Got: len(values)}
	}
	if expected == 0 {
		return template, nil
	}

	var b strings.Builder
	next := 0
	for _, tok := range tokens {
		if tok.Kind != sqllex.Positional {
			b.WriteString(tok.Text)
			continue
		}
		quoted, err := c.Quote(values[next])
		if err != nil {
			return "", err
		}
		b.WriteString(quoted)
		next++
	}
	return b.String(), nil
}

func (c *Connector) bindNamed(template string, tokens []sqllex.Token, binds map[string]any) (string, error) {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Kind != sqllex.Named {
			b.WriteString(tok.Text)
			continue
		}
		value, ok := binds[tok.Name]
		if !ok {
			return "", &BindError{Err: types.ErrMissingBind, Template: template, Name: tok.Name}
		}
		quoted, err := c.Quote(value)
		if err != nil {
			return "", err
		}
		b.WriteString(quoted)
	}
	return b.String(), nil
}

// Inline renders a squirrel node with its arguments quoted into the SQL text.
func (c *Connector) Inline(node squirrel.Sqlizer) (string, error) {
	sql, args, err := node.ToSql()
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return sql, nil
	}
	return c.Sanitize(sql, args...)
}

// SanitizeLimit validates a row cap. nil means no limit. Integers, floats
// (truncated, so 10.5 is 10) and integer strings ("10") are accepted when
// non-negative; anything else wraps types.ErrInvalidLimitValue.
func (c *Connector) SanitizeLimit(limit any) (*uint64, error) {
	if limit == nil {
		return nil, nil
	}

	n, ok := limitValue(limit)
	if !ok {
		err := fmt.Errorf("%w: %v (%T)", types.ErrInvalidLimitValue, limit, limit)
		c.log.Debug().Err(err).Msg("Rejected limit")
		return nil, err
	}
	return &n, nil
}

func limitValue(limit any) (uint64, bool) {
	rv := reflect.ValueOf(limit)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return limitValue(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return 0, false
		}
		return uint64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(rv.Float())
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	case reflect.String:
		n, err := strconv.ParseUint(strings.TrimSpace(rv.String()), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
