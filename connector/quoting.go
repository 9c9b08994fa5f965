package connector

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chagar/arel-query/internal/sqllex"
	"github.com/chagar/arel-query/types"
)

// QuoteTableName quotes a possibly schema-qualified table name.
func (c *Connector) QuoteTableName(name string) string {
	return c.cachedQuote("t:", name)
}

// QuoteColumnName quotes a possibly table-qualified column name. "*" is left as is.
func (c *Connector) QuoteColumnName(name string) string {
	if name == "*" {
		return name
	}
	return c.cachedQuote("c:", name)
}

func (c *Connector) cachedQuote(prefix, name string) string {
	key := prefix + name
	if quoted, ok := c.names.Get(key); ok {
		return quoted
	}
	quoted := c.quoteIdentifier(name)
	c.names.Add(key, quoted)
	return quoted
}

func (c *Connector) quoteIdentifier(identifier string) string {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return trimmed
	}
	if c.vendor == types.Oracle {
		return oracleQuoteIdentifier(trimmed)
	}

	parts := strings.Split(trimmed, ".")
	for i, part := range parts {
		if part == "*" || isQuoted(part) {
			continue
		}
		switch c.vendor {
		case types.PostgreSQL:
			parts[i] = pgx.Identifier{part}.Sanitize()
		case types.MySQL:
			parts[i] = "`" + strings.ReplaceAll(part, "`", "``") + "`"
		default:
			parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
		}
	}
	return strings.Join(parts, ".")
}

func isQuoted(part string) bool {
	if len(part) < 2 {
		return false
	}
	first, last := part[0], part[len(part)-1]
	return (first == '"' && last == '"') || (first == '`' && last == '`')
}

func oracleNeedsQuoting(identifier string) bool {
	first := identifier[0]
	if first >= '0' && first <= '9' {
		return true
	}

	for _, r := range identifier {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '$' || r == '#' {
			continue
		}
		return true
	}

	return false
}

// oracleQuoteIdentifier quotes only the parts Oracle would otherwise reject:
// reserved words (upper-cased) and names with characters outside [A-Za-z0-9_$#].
func oracleQuoteIdentifier(identifier string) string {
	if strings.Contains(identifier, ".") {
		parts := strings.Split(identifier, ".")
		for i, part := range parts {
			parts[i] = oracleQuoteIdentifier(part)
		}
		return strings.Join(parts, ".")
	}

	if identifier == "" || identifier == "*" || isQuoted(identifier) {
		return identifier
	}

	if sqllex.IsOracleReservedWord(identifier) {
		return `"` + strings.ToUpper(identifier) + `"`
	}

	if oracleNeedsQuoting(identifier) {
		return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
	}

	return identifier
}

// Quote renders value as a SQL literal for this vendor.
//
// Supported values: nil, booleans, integers, finite floats, strings, []byte,
// time.Time, uuid.UUID, driver.Valuer, squirrel.Sqlizer (rendered as a
// parenthesized subquery), types.RawExpression (verbatim), pointers to any of
// these and slices of them (comma separated, NULL when empty).
// Anything else returns types.ErrUnquotableValue.
func (c *Connector) Quote(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case bool:
		return c.quoteBool(v), nil
	case string:
		return c.quoteString(v), nil
	case []byte:
		return c.quoteBytes(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return quoteFloat(v)
	case float32:
		return quoteFloat(float64(v))
	case time.Time:
		return c.quoteTime(v), nil
	case uuid.UUID:
		return c.quoteString(v.String()), nil
	case types.RawExpression:
		return v.SQL, nil
	case driver.Valuer:
		return c.quoteValuer(v)
	case squirrel.Sqlizer:
		sql, err := c.Inline(v)
		if err != nil {
			return "", err
		}
		return "(" + sql + ")", nil
	}

	return c.quoteReflect(reflect.ValueOf(value))
}

func (c *Connector) quoteValuer(v driver.Valuer) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "NULL", nil
	}
	inner, err := v.Value()
	if err != nil {
		return "", fmt.Errorf("%w: %T: %v", types.ErrUnquotableValue, v, err)
	}
	if _, again := inner.(driver.Valuer); again {
		return "", fmt.Errorf("%w: %T returned another valuer", types.ErrUnquotableValue, v)
	}
	return c.Quote(inner)
}

func (c *Connector) quoteReflect(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "NULL", nil
		}
		return c.Quote(rv.Elem().Interface())
	case reflect.Bool:
		return c.quoteBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return quoteFloat(rv.Float())
	case reflect.String:
		return c.quoteString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() || rv.Len() == 0 {
			return "NULL", nil
		}
		parts := make([]string, rv.Len())
		for i := range rv.Len() {
			quoted, err := c.Quote(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = quoted
		}
		return strings.Join(parts, ", "), nil
	}

	if !rv.IsValid() {
		return "NULL", nil
	}
	return "", fmt.Errorf("%w: %s", types.ErrUnquotableValue, rv.Type())
}

func (c *Connector) quoteBool(b bool) string {
	switch c.vendor {
	case types.SQLite, types.Oracle:
		if b {
			return "1"
		}
		return "0"
	default:
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
}

func (c *Connector) quoteString(s string) string {
	if c.vendor == types.MySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (c *Connector) quoteBytes(b []byte) string {
	encoded := hex.EncodeToString(b)
	switch c.vendor {
	case types.PostgreSQL:
		return `'\x` + encoded + "'"
	case types.Oracle:
		return "HEXTORAW('" + encoded + "')"
	default:
		return "X'" + encoded + "'"
	}
}

func (c *Connector) quoteTime(t time.Time) string {
	t = t.In(c.location)
	formatted := t.Format("2006-01-02 15:04:05")
	if usec := t.Nanosecond() / int(time.Microsecond); usec != 0 {
		formatted += fmt.Sprintf(".%06d", usec)
	}
	if c.vendor == types.Oracle {
		return "TIMESTAMP '" + formatted + "'"
	}
	return "'" + formatted + "'"
}

func quoteFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", types.ErrUnquotableValue, f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
