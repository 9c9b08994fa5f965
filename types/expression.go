//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"fmt"
	"strings"
)

// RawExpression represents a raw SQL expression that can be used in SELECT, GROUP BY, and ORDER BY clauses.
// It allows using SQL functions, aggregations, calculations, and other expressions that go beyond simple column names.
//
// SECURITY WARNING: Raw SQL expressions are NOT escaped or sanitized.
// Never interpolate user input directly into expressions - this creates SQL injection vulnerabilities.
// Only use static SQL or carefully validated values in expressions.
//
// Safe usage:
//
//	q.Select(types.Expr("COUNT(*)", "total"))           // Aggregation with alias
//	q.Select(types.Expr("UPPER(name)"))                  // Function without alias
//	q.Order(types.Expr("price * quantity DESC"))         // Calculation
type RawExpression struct {
	SQL   string // The raw SQL expression
	Alias string // Optional alias (AS clause)
}

// Expr creates a raw SQL expression with optional alias for use in SELECT, GROUP BY, and ORDER BY clauses.
//
// Validation (fail-fast with panic):
//   - SQL cannot be empty
//   - Maximum 1 alias parameter allowed
//   - Alias cannot contain dangerous characters: ; ' " -- (SQL injection patterns)
func Expr(sql string, alias ...string) RawExpression {
	if strings.TrimSpace(sql) == "" {
		panic(ErrEmptyExpressionSQL.Error()) //nolint:S8148 // NOSONAR: Fail-fast on invalid SQL expression construction
	}

	if len(alias) > 1 {
		panic(fmt.Sprintf("%v, got %d", ErrTooManyAliases, len(alias))) //nolint:S8148 // NOSONAR: Fail-fast on invalid SQL expression construction
	}

	var aliasStr string
	if len(alias) == 1 {
		aliasStr = alias[0]

		dangerousChars := []string{";", "'", "\"", "--", "/*", "*/"}
		for _, char := range dangerousChars {
			if strings.Contains(aliasStr, char) {
				panic(fmt.Sprintf("%v '%s': %s", ErrDangerousAlias, char, aliasStr)) //nolint:S8148 // NOSONAR: Fail-fast on invalid SQL expression construction
			}
		}
	}

	return RawExpression{
		SQL:   sql,
		Alias: aliasStr,
	}
}

// String renders the expression with its alias, e.g. "COUNT(*) AS total".
func (e RawExpression) String() string {
	if e.Alias == "" {
		return e.SQL
	}
	return e.SQL + " AS " + e.Alias
}

// ToSql implements squirrel.Sqlizer so expressions can be used wherever a node is expected.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (e RawExpression) ToSql() (sql string, args []any, err error) {
	return e.String(), nil, nil
}
