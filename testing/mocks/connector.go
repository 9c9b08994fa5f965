package mocks

import (
	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/mock"

	"github.com/chagar/arel-query/logger"
)

// MockConnector provides a testify-based mock implementation of query.Connector.
// Each method accepts either a plain return value or a function computing it
// from the call's arguments, so a mock can delegate to a real connector.
//
// Example usage:
//
//	conn := &mocks.MockConnector{}
//	conn.ExpectVendor("postgresql")
//	conn.On("QuoteTableName", "users").Return(`"users"`)
//	conn.On("Logger").Return(logger.Nop())
//
//	sql, err := query.New(conn, "users").ToSQL()
type MockConnector struct {
	mock.Mock
}

// Vendor implements ast.Engine
func (m *MockConnector) Vendor() string {
	args := m.MethodCalled("Vendor")
	return args.String(0)
}

// QuoteTableName implements ast.Engine
func (m *MockConnector) QuoteTableName(name string) string {
	args := m.MethodCalled("QuoteTableName", name)
	if fn, ok := args.Get(0).(func(string) string); ok {
		return fn(name)
	}
	return args.String(0)
}

// QuoteColumnName implements ast.Engine
func (m *MockConnector) QuoteColumnName(name string) string {
	args := m.MethodCalled("QuoteColumnName", name)
	if fn, ok := args.Get(0).(func(string) string); ok {
		return fn(name)
	}
	return args.String(0)
}

// Inline implements ast.Engine
func (m *MockConnector) Inline(node squirrel.Sqlizer) (string, error) {
	args := m.MethodCalled("Inline", node)
	if fn, ok := args.Get(0).(func(squirrel.Sqlizer) (string, error)); ok {
		return fn(node)
	}
	return args.String(0), args.Error(1)
}

// Sanitize implements query.Connector
func (m *MockConnector) Sanitize(template string, values ...any) (string, error) {
	args := m.MethodCalled("Sanitize", template, values)
	if fn, ok := args.Get(0).(func(string, ...any) (string, error)); ok {
		return fn(template, values...)
	}
	return args.String(0), args.Error(1)
}

// SanitizeLimit implements query.Connector
func (m *MockConnector) SanitizeLimit(limit any) (*uint64, error) {
	args := m.MethodCalled("SanitizeLimit", limit)
	if fn, ok := args.Get(0).(func(any) (*uint64, error)); ok {
		return fn(limit)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uint64), args.Error(1)
}

// BuildFromMap implements query.Connector
func (m *MockConnector) BuildFromMap(table string, conds map[string]any) ([]string, error) {
	args := m.MethodCalled("BuildFromMap", table, conds)
	if fn, ok := args.Get(0).(func(string, map[string]any) ([]string, error)); ok {
		return fn(table, conds)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Logger implements query.Connector
func (m *MockConnector) Logger() logger.Logger {
	args := m.MethodCalled("Logger")
	if args.Get(0) == nil {
		return logger.Nop()
	}
	return args.Get(0).(logger.Logger)
}

// ExpectVendor sets up the vendor name the mock reports.
func (m *MockConnector) ExpectVendor(vendor string) *mock.Call {
	return m.On("Vendor").Return(vendor)
}

// ExpectLogger sets up Logger to return a no-op logger.
func (m *MockConnector) ExpectLogger() *mock.Call {
	return m.On("Logger").Return(logger.Nop())
}
