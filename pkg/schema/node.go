package schema

// Node is one vertex of the parsed document tree. The set of implementations
// is closed: Mapping, Sequence, and Scalar. Downstream passes type switch
// over the three shapes and treat any other value as a programming error.
type Node interface {
	node()
}

// MappingEntry is one key/value pair of a Mapping in document order.
type MappingEntry struct {
	Key   string
	Value Node
}

// Mapping is a string-keyed node whose entries preserve document order.
// Repeated keys survive parsing so later passes can diagnose them; lookups
// resolve to the first occurrence.
type Mapping struct {
	entries []MappingEntry
	index   map[string]int
}

// NewMapping builds a Mapping from entries, keeping their order.
func NewMapping(entries ...MappingEntry) *Mapping {
	m := &Mapping{
		entries: append([]MappingEntry(nil), entries...),
		index:   make(map[string]int, len(entries)),
	}
	for i, entry := range m.entries {
		if _, seen := m.index[entry.Key]; !seen {
			m.index[entry.Key] = i
		}
	}
	return m
}

func (m *Mapping) node() {}

// Get returns the value stored under key, resolving repeated keys to the
// first occurrence.
func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key appears in the mapping.
func (m *Mapping) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Entries returns a copy of the ordered key/value pairs, repeated keys
// included.
func (m *Mapping) Entries() []MappingEntry {
	return append([]MappingEntry(nil), m.entries...)
}

// Keys returns every key in document order, repeated keys included.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, entry := range m.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Len returns the number of entries, repeated keys included.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Sequence is an ordered list node.
type Sequence struct {
	items []Node
}

// NewSequence builds a Sequence from items, keeping their order.
func NewSequence(items ...Node) *Sequence {
	return &Sequence{items: append([]Node(nil), items...)}
}

func (s *Sequence) node() {}

// Items returns a copy of the ordered members.
func (s *Sequence) Items() []Node {
	return append([]Node(nil), s.items...)
}

// Len returns the number of members.
func (s *Sequence) Len() int {
	return len(s.items)
}

// Scalar is a leaf node holding a string, int64, float64, bool, or nil.
type Scalar struct {
	value any
}

// StringScalar wraps a string leaf value.
func StringScalar(v string) *Scalar {
	return &Scalar{value: v}
}

// IntScalar wraps an integer leaf value.
func IntScalar(v int64) *Scalar {
	return &Scalar{value: v}
}

// FloatScalar wraps a floating point leaf value.
func FloatScalar(v float64) *Scalar {
	return &Scalar{value: v}
}

// BoolScalar wraps a boolean leaf value.
func BoolScalar(v bool) *Scalar {
	return &Scalar{value: v}
}

// NullScalar returns the null leaf value.
func NullScalar() *Scalar {
	return &Scalar{}
}

func (s *Scalar) node() {}

// Value returns the underlying leaf value.
func (s *Scalar) Value() any {
	return s.value
}

// AsString returns the value when it holds a string.
func (s *Scalar) AsString() (string, bool) {
	v, ok := s.value.(string)
	return v, ok
}

// AsInt returns the value when it holds an integer.
func (s *Scalar) AsInt() (int64, bool) {
	v, ok := s.value.(int64)
	return v, ok
}

// AsFloat returns the value when it holds a float or an integer, widening
// integers so numeric callers handle both.
func (s *Scalar) AsFloat() (float64, bool) {
	switch v := s.value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsBool returns the value when it holds a boolean.
func (s *Scalar) AsBool() (bool, bool) {
	v, ok := s.value.(bool)
	return v, ok
}

// IsNull reports whether the scalar is the null value.
func (s *Scalar) IsNull() bool {
	return s.value == nil
}
