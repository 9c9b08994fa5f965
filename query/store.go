package query

// valueStore records clause fragments without interpreting them.
type valueStore struct {
	single map[ClauseKind]any
	multi  map[ClauseKind][]any
}

func newValueStore() valueStore {
	return valueStore{
		single: make(map[ClauseKind]any),
		multi:  make(map[ClauseKind][]any),
	}
}

func (s valueStore) setSingle(kind ClauseKind, value any) {
	s.single[kind] = value
}

func (s valueStore) appendMulti(kind ClauseKind, values ...any) {
	s.multi[kind] = append(s.multi[kind], values...)
}

func (s valueStore) has(kind ClauseKind) bool {
	if kind.IsSingle() {
		_, ok := s.single[kind]
		return ok
	}
	_, ok := s.multi[kind]
	return ok
}

func (s valueStore) get(kind ClauseKind) any {
	return s.single[kind]
}

func (s valueStore) list(kind ClauseKind) []any {
	return s.multi[kind]
}

// clone copies every sequence so appends on either store stay invisible to the other.
func (s valueStore) clone() valueStore {
	c := valueStore{
		single: make(map[ClauseKind]any, len(s.single)),
		multi:  make(map[ClauseKind][]any, len(s.multi)),
	}
	for k, v := range s.single {
		c.single[k] = v
	}
	for k, v := range s.multi {
		c.multi[k] = append(make([]any, 0, len(v)), v...)
	}
	return c
}
