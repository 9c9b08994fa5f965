package fixtures

import (
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/mock"

	"github.com/chagar/arel-query/connector"
	"github.com/chagar/arel-query/logger"
	"github.com/chagar/arel-query/testing/mocks"
	"github.com/chagar/arel-query/types"
)

// NewConnectorFor creates a mock connector that delegates every call to a
// real connector for vendor. Tests can then assert which calls a query made.
// It panics for unsupported vendors.
func NewConnectorFor(vendor types.Vendor) *mocks.MockConnector {
	delegate := connector.MustNew(vendor)
	conn := &mocks.MockConnector{}

	conn.ExpectVendor(vendor).Maybe()
	conn.ExpectLogger().Maybe()
	conn.On("QuoteTableName", mock.Anything).Return(delegate.QuoteTableName).Maybe()
	conn.On("QuoteColumnName", mock.Anything).Return(delegate.QuoteColumnName).Maybe()
	conn.On("Inline", mock.Anything).Return(delegate.Inline).Maybe()
	conn.On("Sanitize", mock.Anything, mock.Anything).Return(delegate.Sanitize).Maybe()
	conn.On("SanitizeLimit", mock.Anything).Return(delegate.SanitizeLimit).Maybe()
	conn.On("BuildFromMap", mock.Anything, mock.Anything).Return(delegate.BuildFromMap).Maybe()

	return conn
}

// NewFailingConnector creates a mock connector whose sanitizer, inliner and
// predicate builder fail with err. Identifiers are quoted with double quotes.
// This is useful for testing how callers surface render errors.
func NewFailingConnector(vendor types.Vendor, err error) *mocks.MockConnector {
	quote := func(name string) string { return `"` + name + `"` }

	conn := &mocks.MockConnector{}
	conn.ExpectVendor(vendor).Maybe()
	conn.On("Logger").Return(logger.Nop()).Maybe()
	conn.On("QuoteTableName", mock.Anything).Return(quote).Maybe()
	conn.On("QuoteColumnName", mock.Anything).Return(quote).Maybe()
	conn.On("Inline", mock.Anything).Return("", err).Maybe()
	conn.On("Sanitize", mock.Anything, mock.Anything).Return("", err).Maybe()
	conn.On("SanitizeLimit", mock.Anything).Return(nil, err).Maybe()
	conn.On("BuildFromMap", mock.Anything, mock.Anything).Return(nil, err).Maybe()

	return conn
}

// ExpectQuery renders q and registers it on m as an exact query expectation
// with no bind arguments. The returned expectation can be given rows.
//
// Example:
//
//	db, m, _ := sqlmock.New()
//	exp, err := fixtures.ExpectQuery(m, q)
//	exp.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
func ExpectQuery(m sqlmock.Sqlmock, q squirrel.Sqlizer) (*sqlmock.ExpectedQuery, error) {
	sql, _, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return m.ExpectQuery("^" + regexp.QuoteMeta(sql) + "$"), nil
}
