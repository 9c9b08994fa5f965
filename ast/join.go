package ast

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/internal/sqllex"
	"github.com/chagar/arel-query/types"
)

// JoinType is the kind of a join clause.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
	// JoinCustom marks raw join text that does not start with a join keyword.
	JoinCustom
)

var joinKeywords = map[JoinType]string{
	JoinInner: "INNER JOIN",
	JoinLeft:  "LEFT OUTER JOIN",
	JoinRight: "RIGHT OUTER JOIN",
	JoinFull:  "FULL OUTER JOIN",
	JoinCross: "CROSS JOIN",
}

func (t JoinType) String() string {
	if kw, ok := joinKeywords[t]; ok {
		return kw
	}
	return "JOIN"
}

// JoinSource is a join clause node attached to a Statement.
type JoinSource interface {
	Type() JoinType
	Render(e Engine) (string, error)
}

// Join is a pre-built join against a table. It is immutable once created, so
// the same node can be shared between builders.
type Join struct {
	kind  JoinType
	table *types.TableRef
	on    squirrel.Sqlizer
}

// NewJoin creates a join of kind against table. on may be nil only for cross joins.
func NewJoin(kind JoinType, table *types.TableRef, on squirrel.Sqlizer) *Join {
	return &Join{kind: kind, table: table, on: on}
}

// InnerJoin creates an INNER JOIN node.
func InnerJoin(table *types.TableRef, on squirrel.Sqlizer) *Join {
	return NewJoin(JoinInner, table, on)
}

// LeftJoin creates a LEFT OUTER JOIN node.
func LeftJoin(table *types.TableRef, on squirrel.Sqlizer) *Join {
	return NewJoin(JoinLeft, table, on)
}

// RightJoin creates a RIGHT OUTER JOIN node.
func RightJoin(table *types.TableRef, on squirrel.Sqlizer) *Join {
	return NewJoin(JoinRight, table, on)
}

// FullJoin creates a FULL OUTER JOIN node.
func FullJoin(table *types.TableRef, on squirrel.Sqlizer) *Join {
	return NewJoin(JoinFull, table, on)
}

// CrossJoin creates a CROSS JOIN node.
func CrossJoin(table *types.TableRef) *Join {
	return NewJoin(JoinCross, table, nil)
}

func (j *Join) Type() JoinType { return j.kind }

func (j *Join) Table() *types.TableRef { return j.table }

func (j *Join) On() squirrel.Sqlizer { return j.on }

// Render returns e.g. `INNER JOIN "posts" "p" ON p.user_id = users.id`.
func (j *Join) Render(e Engine) (string, error) {
	if j.table == nil || strings.TrimSpace(j.table.Name()) == "" {
		return "", fmt.Errorf("%s: %w", j.kind, types.ErrEmptyTableName)
	}

	var b strings.Builder
	b.WriteString(j.kind.String())
	b.WriteByte(' ')
	b.WriteString(tableSQL(e, j.table))

	if j.kind == JoinCross {
		return b.String(), nil
	}
	if j.on == nil {
		return "", fmt.Errorf("%s %s: %w", j.kind, j.table.Name(), ErrMissingJoinCondition)
	}

	on, err := e.Inline(j.on)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(on) == "" {
		return "", fmt.Errorf("%s %s: %w", j.kind, j.table.Name(), ErrMissingJoinCondition)
	}
	b.WriteString(" ON ")
	b.WriteString(on)
	return b.String(), nil
}

// StringJoin is a join written as raw SQL. Its text is rendered verbatim.
type StringJoin struct {
	kind JoinType
	sql  string
}

// NewStringJoin wraps raw join text, classifying it by its leading keywords.
func NewStringJoin(sql string) *StringJoin {
	sql = strings.TrimSpace(sql)

	kind := JoinCustom
	switch sqllex.JoinKind(sql) {
	case "INNER":
		kind = JoinInner
	case "LEFT":
		kind = JoinLeft
	case "RIGHT":
		kind = JoinRight
	case "FULL":
		kind = JoinFull
	case "CROSS":
		kind = JoinCross
	}
	return &StringJoin{kind: kind, sql: sql}
}

func (j *StringJoin) Type() JoinType { return j.kind }

// SQL returns the trimmed join text.
func (j *StringJoin) SQL() string { return j.sql }

func (j *StringJoin) Render(Engine) (string, error) { return j.sql, nil }

func tableSQL(e Engine, table *types.TableRef) string {
	quoted := e.QuoteTableName(table.Name())
	if table.HasAlias() {
		return quoted + " " + e.QuoteTableName(table.Alias())
	}
	return quoted
}
