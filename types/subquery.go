//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// subqueryValidator allows builders to expose lightweight validation
// without forcing eager SQL generation.
type subqueryValidator interface {
	ValidateForSubquery() error
}

// Subquery is an aliased derived table, e.g. "(SELECT ...) recent".
// Build one with query.Query.As and pass it to From.
type Subquery struct {
	source squirrel.Sqlizer
	alias  string
}

// NewSubquery wraps source as a derived table named alias.
// Panics if alias is empty (fail fast).
func NewSubquery(source squirrel.Sqlizer, alias string) *Subquery {
	if strings.TrimSpace(alias) == "" {
		panic(ErrEmptyTableAlias.Error())
	}
	return &Subquery{source: source, alias: alias}
}

// Source returns the statement producing the derived table.
func (s *Subquery) Source() squirrel.Sqlizer {
	return s.source
}

// Alias returns the derived table name.
func (s *Subquery) Alias() string {
	return s.alias
}

// ValidateSubquery checks if a subquery is valid for use in FROM or condition values.
// Returns an error if subquery is nil or produces invalid SQL.
//
// Returns:
//   - ErrNilSubquery if subquery is nil
//   - ErrInvalidSubquery if subquery validation fails
//   - ErrEmptySubquerySQL if subquery produces empty SQL
func ValidateSubquery(subquery squirrel.Sqlizer) error {
	if subquery == nil {
		return ErrNilSubquery
	}

	if validator, ok := subquery.(subqueryValidator); ok {
		if err := validator.ValidateForSubquery(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSubquery, err)
		}
		return nil
	}

	sql, _, err := subquery.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubquery, err)
	}
	if sql == "" {
		return ErrEmptySubquerySQL
	}

	return nil
}
