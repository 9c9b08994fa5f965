// Package testing provides test helpers for code built on arel-query.
//
// # Mocks
//
// The mocks subpackage provides a testify-based MockConnector implementing
// query.Connector, for tests that assert which quoting and sanitizing calls a
// query makes without depending on a vendor's rules.
//
// # Fixtures
//
// The fixtures subpackage provides pre-configured mocks:
//   - NewConnectorFor: a MockConnector delegating to a real vendor connector
//   - NewFailingConnector: a MockConnector whose sanitizer always fails
//   - ExpectQuery: a go-sqlmock expectation for a rendered query
//
// # Usage
//
//	import (
//		"github.com/chagar/arel-query/testing/mocks"
//		"github.com/chagar/arel-query/testing/fixtures"
//	)
package testing
