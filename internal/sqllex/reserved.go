package sqllex

import "strings"

// OracleReservedWords contains the Oracle SQL reserved keywords that require double-quote quoting
// when used as identifiers (column names, table names, etc.).
//
// Source: Oracle Database SQL Language Reference
// https://docs.oracle.com/en/database/oracle/oracle-database/19/sqlrf/Oracle-SQL-Reserved-Words.html
var OracleReservedWords = map[string]struct{}{
	"ACCESS": {}, "ADD": {}, "ALL": {}, "ALTER": {}, "AND": {}, "ANY": {}, "AS": {}, "ASC": {},
	"BEGIN": {}, "BETWEEN": {}, "BY": {}, "CASE": {}, "CHECK": {}, "COLUMN": {}, "COMMENT": {},
	"CONNECT": {}, "CREATE": {}, "CURRENT": {}, "DELETE": {}, "DESC": {}, "DISTINCT": {},
	"DROP": {}, "ELSE": {}, "EXCLUDE": {}, "EXISTS": {}, "FOR": {}, "FROM": {}, "GRANT": {},
	"GROUP": {}, "HAVING": {}, "IN": {}, "INDEX": {}, "INSERT": {}, "INTERSECT": {}, "INTO": {},
	"IS": {}, "LEVEL": {}, "LIKE": {}, "LOCK": {}, "MINUS": {}, "MODE": {}, "NOCOMPRESS": {},
	"NOT": {}, "NULL": {}, "NUMBER": {}, "OF": {}, "ON": {}, "OPTION": {}, "OR": {}, "ORDER": {},
	"ROW": {}, "ROWNUM": {}, "SELECT": {}, "SET": {}, "SHARE": {}, "SIZE": {}, "START": {},
	"TABLE": {}, "THEN": {}, "TO": {}, "TRIGGER": {}, "UNION": {}, "UNIQUE": {}, "UPDATE": {},
	"VALUES": {}, "VIEW": {}, "WHEN": {}, "WHERE": {}, "WITH": {},
}

// IsOracleReservedWord checks if a word is an Oracle reserved keyword.
// The check is case-insensitive since Oracle identifiers are case-insensitive by default.
func IsOracleReservedWord(word string) bool {
	_, exists := OracleReservedWords[strings.ToUpper(word)]
	return exists
}

// joinKeywords are the leading words that open a join clause, longest first.
var joinKeywords = []struct {
	prefix string
	kind   string
}{
	{"NATURAL FULL OUTER JOIN", "FULL"},
	{"NATURAL LEFT OUTER JOIN", "LEFT"},
	{"NATURAL RIGHT OUTER JOIN", "RIGHT"},
	{"FULL OUTER JOIN", "FULL"},
	{"LEFT OUTER JOIN", "LEFT"},
	{"RIGHT OUTER JOIN", "RIGHT"},
	{"NATURAL JOIN", "INNER"},
	{"INNER JOIN", "INNER"},
	{"CROSS JOIN", "CROSS"},
	{"FULL JOIN", "FULL"},
	{"LEFT JOIN", "LEFT"},
	{"RIGHT JOIN", "RIGHT"},
	{"JOIN", "INNER"},
}

// JoinKind classifies a raw join clause by its leading keywords.
// It returns "INNER", "LEFT", "RIGHT", "FULL" or "CROSS", and "" when the text
// does not start with a join keyword. Matching ignores case and collapses runs
// of whitespace between keywords.
func JoinKind(clause string) string {
	normalized := strings.ToUpper(strings.Join(strings.Fields(clause), " "))
	for _, kw := range joinKeywords {
		if normalized == kw.prefix || strings.HasPrefix(normalized, kw.prefix+" ") {
			return kw.kind
		}
	}
	return ""
}
