// Package types contains the value types shared by the ast, connector and query
// packages: database vendor identifiers, table references, raw expressions,
// ranges, subqueries and the sentinel errors used across the module.
// They live in their own package so that the query builder and its collaborators
// can depend on them without importing each other.
//
//nolint:revive // Package name "types" is intentionally generic to avoid circular imports
package types
