// Package ast assembles a SELECT statement tree on top of squirrel and renders
// it for one database vendor. Every fragment handed to a Statement is already
// plain SQL; values are inlined by the Engine before they get here, so a
// rendered statement never carries bind arguments.
package ast

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// Engine is the vendor-specific collaborator a Statement renders with.
type Engine interface {
	Vendor() string
	QuoteTableName(name string) string
	QuoteColumnName(name string) string
	Inline(node squirrel.Sqlizer) (string, error)
}

// Star is the default projection.
const Star = "*"

var (
	// ErrDistinctOnUnsupported is returned when DISTINCT ON is rendered for a vendor other than PostgreSQL.
	ErrDistinctOnUnsupported = errors.New("DISTINCT ON is only supported by PostgreSQL")

	// ErrMissingJoinCondition is returned when a non-cross join has no ON condition.
	ErrMissingJoinCondition = errors.New("join requires an ON condition")

	// ErrUnboundArguments is returned when a rendered statement still carries bind arguments.
	ErrUnboundArguments = errors.New("statement rendered with unbound arguments")
)
