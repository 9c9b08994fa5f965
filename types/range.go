//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// Range is an inclusive (or end-exclusive) interval used as a condition value.
// In a condition map it expands to "col BETWEEN begin AND end", or to
// "col >= begin AND col < end" when ExcludeEnd is set.
//
// Example:
//
//	q.Where(map[string]any{"age": types.Between(18, 65)})
type Range struct {
	Begin      any
	End        any
	ExcludeEnd bool
}

// Between returns the inclusive range [begin, end].
func Between(begin, end any) Range {
	return Range{Begin: begin, End: end}
}

// Until returns the end-exclusive range [begin, end).
func Until(begin, end any) Range {
	return Range{Begin: begin, End: end, ExcludeEnd: true}
}
