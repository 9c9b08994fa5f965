package query

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation matches every *UnsupportedOperationError.
	ErrUnsupportedOperation = errors.New("unsupported query method")

	// ErrUnsupportedJoinType matches every *UnsupportedJoinTypeError.
	ErrUnsupportedJoinType = errors.New("unsupported join type")

	// ErrUnknownMethod is returned by Dispatch for names outside the builder surface.
	ErrUnknownMethod = errors.New("unknown query method")

	// ErrInvalidArguments is returned by Dispatch when a method gets the wrong number of arguments.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidOffsetValue is returned when an offset is not a number or a string.
	ErrInvalidOffsetValue = errors.New("invalid offset value")

	// ErrUnsupportedSource is returned when From is given something other than a SQL string, a table or a subquery.
	ErrUnsupportedSource = errors.New("unsupported FROM source")

	// ErrUnsupportedExpression is returned when a select, group or order fragment has no SQL form.
	ErrUnsupportedExpression = errors.New("unsupported expression")
)

// UnsupportedOperationError is returned by builder methods the query
// deliberately does not offer.
type UnsupportedOperationError struct {
	Method      string
	Alternative string
}

func (e *UnsupportedOperationError) Error() string {
	msg := fmt.Sprintf("%s %s", ErrUnsupportedOperation, e.Method)
	if e.Alternative != "" {
		msg += fmt.Sprintf(", try %s instead", e.Alternative)
	}
	return msg
}

// Is matches ErrUnsupportedOperation.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// UnsupportedJoinTypeError is returned at render time for join fragments
// that are neither raw SQL strings nor ast join nodes.
type UnsupportedJoinTypeError struct {
	Type string
}

func (e *UnsupportedJoinTypeError) Error() string {
	return fmt.Sprintf("%s %s, try a join string or an ast join node instead", ErrUnsupportedJoinType, e.Type)
}

// Is matches ErrUnsupportedJoinType.
func (e *UnsupportedJoinTypeError) Is(target error) bool {
	return target == ErrUnsupportedJoinType
}
