package query

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// JoinFilter is a join ON condition comparing columns to other columns.
// Pass it to ast.InnerJoin and friends.
type JoinFilter struct {
	sqlizer squirrel.Sqlizer
}

// ToSql generates the SQL fragment for this join condition.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (jf JoinFilter) ToSql() (sql string, args []any, err error) {
	if jf.sqlizer == nil {
		return "", nil, nil
	}
	return jf.sqlizer.ToSql()
}

// JoinFilterFactory creates join conditions with vendor-specific quoting.
// Obtain one through Query.JoinFilter().
type JoinFilterFactory struct {
	conn Connector
}

// columnComparison renders "left op right" with no placeholders.
type columnComparison struct {
	leftColumn  string
	operator    string
	rightColumn string
}

//nolint:revive // ToSql required by squirrel.Sqlizer
func (cc columnComparison) ToSql() (sql string, args []any, err error) {
	return fmt.Sprintf("%s %s %s", cc.leftColumn, cc.operator, cc.rightColumn), nil, nil
}

func (jff *JoinFilterFactory) compare(left, op, right string) JoinFilter {
	return JoinFilter{sqlizer: columnComparison{
		leftColumn:  jff.conn.QuoteColumnName(left),
		operator:    op,
		rightColumn: jff.conn.QuoteColumnName(right),
	}}
}

// EqColumn creates an equality join condition (leftColumn = rightColumn).
//
//	jf.EqColumn("posts.user_id", "users.id") // "posts"."user_id" = "users"."id"
func (jff *JoinFilterFactory) EqColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, "=", rightColumn)
}

// NotEqColumn creates an inequality join condition (leftColumn != rightColumn).
func (jff *JoinFilterFactory) NotEqColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, "!=", rightColumn)
}

// LtColumn creates a less-than join condition (leftColumn < rightColumn).
func (jff *JoinFilterFactory) LtColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, "<", rightColumn)
}

// LteColumn creates a less-than-or-equal join condition (leftColumn <= rightColumn).
func (jff *JoinFilterFactory) LteColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, "<=", rightColumn)
}

// GtColumn creates a greater-than join condition (leftColumn > rightColumn).
func (jff *JoinFilterFactory) GtColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, ">", rightColumn)
}

// GteColumn creates a greater-than-or-equal join condition (leftColumn >= rightColumn).
func (jff *JoinFilterFactory) GteColumn(leftColumn, rightColumn string) JoinFilter {
	return jff.compare(leftColumn, ">=", rightColumn)
}

// And combines join filters with AND. Zero-value filters are skipped.
func (jff *JoinFilterFactory) And(filters ...JoinFilter) JoinFilter {
	conj := make(squirrel.And, 0, len(filters))
	for _, f := range filters {
		if f.sqlizer != nil {
			conj = append(conj, f.sqlizer)
		}
	}
	return JoinFilter{sqlizer: conj}
}

// Or combines join filters with OR. Zero-value filters are skipped.
func (jff *JoinFilterFactory) Or(filters ...JoinFilter) JoinFilter {
	disj := make(squirrel.Or, 0, len(filters))
	for _, f := range filters {
		if f.sqlizer != nil {
			disj = append(disj, f.sqlizer)
		}
	}
	return JoinFilter{sqlizer: disj}
}

// Raw creates a join condition from a SQL template.
//
// WARNING: the condition text is not quoted or checked.
//
//	jf.Raw(`posts.user_id = users.id AND posts.kind = ?`, "article")
func (jff *JoinFilterFactory) Raw(condition string, args ...any) JoinFilter {
	return JoinFilter{sqlizer: squirrel.Expr(condition, args...)}
}
