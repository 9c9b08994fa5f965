package query

// ClauseKind identifies one category of accumulated query fragment.
type ClauseKind int

const (
	KindSelect ClauseKind = iota
	KindJoins
	KindWhere
	KindHaving
	KindGroup
	KindOrder
	KindLimit
	KindOffset
	KindDistinct
	KindFrom
	KindLock
)

var clauseNames = [...]string{
	KindSelect:   "select",
	KindJoins:    "joins",
	KindWhere:    "where",
	KindHaving:   "having",
	KindGroup:    "group",
	KindOrder:    "order",
	KindLimit:    "limit",
	KindOffset:   "offset",
	KindDistinct: "distinct",
	KindFrom:     "from",
	KindLock:     "lock",
}

func (k ClauseKind) String() string {
	if k < 0 || int(k) >= len(clauseNames) {
		return "unknown"
	}
	return clauseNames[k]
}

// IsSingle reports whether the clause holds one value that each set overwrites.
// All other clauses accumulate a sequence.
func (k ClauseKind) IsSingle() bool {
	switch k {
	case KindLimit, KindOffset, KindDistinct, KindFrom, KindLock:
		return true
	default:
		return false
	}
}
