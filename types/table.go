//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// TableRef represents a table reference with optional alias for SQL queries.
// Use the Table() function to create instances.
//
// Example:
//
//	Table("customers").As("c")  // Table with alias
//	Table("users")              // Table without alias
//
// An empty name is accepted here and reported when the statement is rendered,
// so that a builder can still be constructed and inspected.
type TableRef struct {
	name  string
	alias string
}

// Table creates a new table reference.
func Table(name string) *TableRef {
	return &TableRef{name: name}
}

// As returns a copy of the reference carrying alias.
// Panics if alias is empty (fail fast).
//
// Example:
//
//	Table("customers").As("c")
func (t *TableRef) As(alias string) *TableRef {
	if alias == "" {
		panic(ErrEmptyTableAlias.Error())
	}
	return &TableRef{name: t.name, alias: alias}
}

// Name returns the table name (unquoted).
func (t *TableRef) Name() string {
	return t.name
}

// Alias returns the table alias, or empty string if no alias.
func (t *TableRef) Alias() string {
	return t.alias
}

// HasAlias returns true if this table has an alias.
func (t *TableRef) HasAlias() bool {
	return t.alias != ""
}

// Reference returns the name other clauses use to qualify columns of this
// table: the alias when present, the table name otherwise.
func (t *TableRef) Reference() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}
