package testing

// Table Names
// Common table names used in query tests.
const (
	TestTableUsers = "users"
	TestTablePosts = "posts"
)
