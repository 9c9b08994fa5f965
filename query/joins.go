package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/chagar/arel-query/ast"
)

// buildJoins splits join fragments into pre-built nodes and raw strings,
// dedups each bucket and returns the nodes followed by the parsed strings.
// Nodes of non-comparable types cannot be matched by identity and are all kept.
func buildJoins(stmt *ast.Statement, fragments []any) ([]ast.JoinSource, error) {
	var (
		nodes    []ast.JoinSource
		seenNode = make(map[ast.JoinSource]struct{})
		raw      []string
		seenRaw  = make(map[string]struct{})
	)

	for _, fragment := range fragments {
		switch j := fragment.(type) {
		case string:
			trimmed := strings.TrimSpace(j)
			if _, dup := seenRaw[trimmed]; dup {
				continue
			}
			seenRaw[trimmed] = struct{}{}
			raw = append(raw, trimmed)
		case ast.JoinSource:
			if reflect.TypeOf(j).Comparable() {
				if _, dup := seenNode[j]; dup {
					continue
				}
				seenNode[j] = struct{}{}
			}
			nodes = append(nodes, j)
		default:
			return nil, &UnsupportedJoinTypeError{Type: fmt.Sprintf("%T", fragment)}
		}
	}

	joins := make([]ast.JoinSource, 0, len(nodes)+len(raw))
	joins = append(joins, nodes...)
	for _, sj := range stmt.ParseJoins(raw...) {
		joins = append(joins, sj)
	}
	return joins, nil
}
