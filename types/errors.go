//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import "errors"

// Sentinel errors shared by the ast, connector and query packages.
// These can be used with errors.Is() for programmatic error checking.
var (
	// ErrEmptyTableName is returned when a statement is rendered for a table without a name.
	ErrEmptyTableName = errors.New("table name cannot be empty")

	// ErrEmptyTableAlias is returned when TableRef.As() is called with an empty alias.
	ErrEmptyTableAlias = errors.New("table alias cannot be empty")

	// ErrEmptyExpressionSQL is returned when Expr() is called with empty SQL.
	ErrEmptyExpressionSQL = errors.New("expression SQL cannot be empty")

	// ErrTooManyAliases is returned when Expr() is called with more than 1 alias.
	ErrTooManyAliases = errors.New("expression accepts maximum 1 alias")

	// ErrDangerousAlias is returned when an alias contains SQL injection patterns.
	ErrDangerousAlias = errors.New("alias contains dangerous characters")

	// ErrNilSubquery is returned when ValidateSubquery() is called with nil subquery.
	ErrNilSubquery = errors.New("subquery cannot be nil")

	// ErrInvalidSubquery is returned when subquery validation fails.
	ErrInvalidSubquery = errors.New("invalid subquery")

	// ErrEmptySubquerySQL is returned when subquery produces empty SQL.
	ErrEmptySubquerySQL = errors.New("subquery produced empty SQL")

	// ErrInvalidLimitValue is returned when a limit is not nil and not a non-negative integer.
	ErrInvalidLimitValue = errors.New("invalid limit value")

	// ErrBindCountMismatch is returned when a template's placeholders and values disagree.
	ErrBindCountMismatch = errors.New("wrong number of bind variables")

	// ErrMissingBind is returned when a named bind has no value in the supplied map.
	ErrMissingBind = errors.New("missing value for named bind variable")

	// ErrUnquotableValue is returned when a value has no SQL literal representation.
	ErrUnquotableValue = errors.New("value cannot be quoted as a SQL literal")

	// ErrInvalidPredicate is returned when a predicate input cannot be normalized.
	ErrInvalidPredicate = errors.New("invalid predicate")

	// ErrUnsupportedVendor is returned for vendors outside Vendors().
	ErrUnsupportedVendor = errors.New("unsupported database vendor")
)
