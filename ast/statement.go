package ast

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/chagar/arel-query/types"
)

// Statement is a SELECT statement tree. It is mutable while being assembled
// and rendered by ToSQL; use Clone before handing it to other code.
type Statement struct {
	engine Engine
	table  *types.TableRef

	fromSQL      string
	fromTable    *types.TableRef
	fromSubquery *types.Subquery

	projections []string
	distinct    bool
	distinctOn  []string
	joins       []JoinSource
	wheres      []string
	havings     []string
	groups      []string
	orders      []string
	limit       *uint64
	offset      *uint64
	lock        string
}

// NewStatement starts a statement selecting from table.
func NewStatement(engine Engine, table *types.TableRef) *Statement {
	return &Statement{engine: engine, table: table}
}

// Clone returns a deep copy of the statement.
func (s *Statement) Clone() *Statement {
	c := *s
	c.projections = append([]string(nil), s.projections...)
	c.distinctOn = append([]string(nil), s.distinctOn...)
	c.joins = append([]JoinSource(nil), s.joins...)
	c.wheres = append([]string(nil), s.wheres...)
	c.havings = append([]string(nil), s.havings...)
	c.groups = append([]string(nil), s.groups...)
	c.orders = append([]string(nil), s.orders...)
	if s.limit != nil {
		limit := *s.limit
		c.limit = &limit
	}
	if s.offset != nil {
		offset := *s.offset
		c.offset = &offset
	}
	return &c
}

// Engine returns the engine the statement renders with.
func (s *Statement) Engine() Engine { return s.engine }

// Table returns the statement's target table.
func (s *Statement) Table() *types.TableRef { return s.table }

// Project appends projection expressions.
func (s *Statement) Project(columns ...string) *Statement {
	s.projections = append(s.projections, columns...)
	return s
}

// Projections returns the projection list, Star when none was added.
func (s *Statement) Projections() []string {
	if len(s.projections) == 0 {
		return []string{Star}
	}
	return append([]string(nil), s.projections...)
}

// Distinct toggles SELECT DISTINCT and clears any DISTINCT ON list.
func (s *Statement) Distinct(on bool) *Statement {
	s.distinct = on
	s.distinctOn = nil
	return s
}

// DistinctOn sets a PostgreSQL DISTINCT ON column list.
func (s *Statement) DistinctOn(columns ...string) *Statement {
	s.distinct = false
	s.distinctOn = append([]string(nil), columns...)
	return s
}

// From replaces the FROM source with a SQL literal.
func (s *Statement) From(sql string) *Statement {
	s.resetFrom()
	s.fromSQL = sql
	return s
}

// FromTable replaces the FROM source with another table.
func (s *Statement) FromTable(table *types.TableRef) *Statement {
	s.resetFrom()
	s.fromTable = table
	return s
}

// FromSubquery replaces the FROM source with a derived table.
func (s *Statement) FromSubquery(sub *types.Subquery) *Statement {
	s.resetFrom()
	s.fromSubquery = sub
	return s
}

func (s *Statement) resetFrom() {
	s.fromSQL = ""
	s.fromTable = nil
	s.fromSubquery = nil
}

// AddJoinSources appends join nodes in order.
func (s *Statement) AddJoinSources(joins ...JoinSource) *Statement {
	s.joins = append(s.joins, joins...)
	return s
}

// ParseJoins turns raw join strings into StringJoin nodes. Blank strings are skipped.
func (s *Statement) ParseJoins(raw ...string) []*StringJoin {
	joins := make([]*StringJoin, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		joins = append(joins, NewStringJoin(r))
	}
	return joins
}

// Joins returns the attached join nodes.
func (s *Statement) Joins() []JoinSource {
	return append([]JoinSource(nil), s.joins...)
}

// Where appends an AND-ed filter condition.
func (s *Statement) Where(condition string) *Statement {
	s.wheres = append(s.wheres, condition)
	return s
}

// Having appends an AND-ed HAVING condition.
func (s *Statement) Having(condition string) *Statement {
	s.havings = append(s.havings, condition)
	return s
}

// Group appends GROUP BY expressions.
func (s *Statement) Group(exprs ...string) *Statement {
	s.groups = append(s.groups, exprs...)
	return s
}

// Order appends ORDER BY expressions.
func (s *Statement) Order(exprs ...string) *Statement {
	s.orders = append(s.orders, exprs...)
	return s
}

// Take sets the row cap; nil removes it.
func (s *Statement) Take(limit *uint64) *Statement {
	s.limit = limit
	return s
}

// Skip sets the number of rows to skip. OFFSET is rendered once Skip is
// called, even for zero.
func (s *Statement) Skip(offset uint64) *Statement {
	s.offset = &offset
	return s
}

// Lock sets the row-locking clause, e.g. "FOR UPDATE". Empty removes it.
func (s *Statement) Lock(clause string) *Statement {
	s.lock = clause
	return s
}

// ToSQL renders the statement.
func (s *Statement) ToSQL() (string, error) {
	if !s.hasSource() {
		return "", types.ErrEmptyTableName
	}

	sb := squirrel.Select(s.Projections()...)

	switch {
	case len(s.distinctOn) > 0:
		if s.engine.Vendor() != types.PostgreSQL {
			return "", fmt.Errorf("%w: vendor %s", ErrDistinctOnUnsupported, s.engine.Vendor())
		}
		sb = sb.Options("DISTINCT ON (" + strings.Join(s.distinctOn, ", ") + ")")
	case s.distinct:
		sb = sb.Distinct()
	}

	from, err := s.renderFrom()
	if err != nil {
		return "", err
	}
	sb = sb.From(from)

	for _, j := range s.joins {
		clause, err := j.Render(s.engine)
		if err != nil {
			return "", err
		}
		sb = sb.JoinClause(clause)
	}

	for _, w := range s.wheres {
		sb = sb.Where(w)
	}
	if len(s.groups) > 0 {
		sb = sb.GroupBy(s.groups...)
	}
	for _, h := range s.havings {
		sb = sb.Having(h)
	}
	if len(s.orders) > 0 {
		sb = sb.OrderBy(s.orders...)
	}

	sb = s.paginate(sb)

	if s.lock != "" && s.engine.Vendor() != types.SQLite {
		sb = sb.Suffix(s.lock)
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return "", err
	}
	if len(args) > 0 {
		return "", fmt.Errorf("%w: %d", ErrUnboundArguments, len(args))
	}
	return sql, nil
}

func (s *Statement) renderFrom() (string, error) {
	switch {
	case s.fromSubquery != nil:
		if err := types.ValidateSubquery(s.fromSubquery.Source()); err != nil {
			return "", err
		}
		sql, err := s.engine.Inline(s.fromSubquery.Source())
		if err != nil {
			return "", err
		}
		return "(" + sql + ") " + s.engine.QuoteTableName(s.fromSubquery.Alias()), nil
	case s.fromSQL != "":
		return s.fromSQL, nil
	case s.fromTable != nil:
		return tableSQL(s.engine, s.fromTable), nil
	default:
		return tableSQL(s.engine, s.table), nil
	}
}

func (s *Statement) hasSource() bool {
	switch {
	case s.fromSQL != "", s.fromSubquery != nil:
		return true
	case s.fromTable != nil:
		return strings.TrimSpace(s.fromTable.Name()) != ""
	default:
		return s.table != nil && strings.TrimSpace(s.table.Name()) != ""
	}
}

func (s *Statement) paginate(sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if s.engine.Vendor() == types.Oracle {
		if clause := oraclePaginationClause(s.limit, s.offset); clause != "" {
			sb = sb.Suffix(clause)
		}
		return sb
	}

	if s.limit != nil {
		sb = sb.Limit(*s.limit)
	}
	if s.offset != nil {
		sb = sb.Offset(*s.offset)
	}
	return sb
}

// oraclePaginationClause builds the Oracle 12c+ row limiting clause:
// "OFFSET n ROWS" and/or "FETCH NEXT m ROWS ONLY".
func oraclePaginationClause(limit, offset *uint64) string {
	parts := make([]string, 0, 2)
	if offset != nil {
		parts = append(parts, fmt.Sprintf("OFFSET %d ROWS", *offset))
	}
	if limit != nil {
		parts = append(parts, fmt.Sprintf("FETCH NEXT %d ROWS ONLY", *limit))
	}
	return strings.Join(parts, " ")
}
