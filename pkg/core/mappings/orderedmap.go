package mappings

// orderedMap is an insertion-ordered map: Set on a new key appends it;
// Set on an existing key replaces its value and moves the key to the
// end. Iteration (via Each) therefore observes insertion order of the
// latest write per key, matching the "last write wins, builder order
// is insertion order of the last write" rule of the mappings builder.
type orderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{index: make(map[K]int)}
}

func (m *orderedMap[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.keys = append(m.keys[:i], m.keys[i+1:]...)
		m.vals = append(m.vals[:i], m.vals[i+1:]...)
		for j := i; j < len(m.keys); j++ {
			m.index[m.keys[j]] = j
		}
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

func (m *orderedMap[K, V]) Get(k K) (V, bool) {
	if i, ok := m.index[k]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

func (m *orderedMap[K, V]) Len() int { return len(m.keys) }

// Clone returns a deep-enough copy: an independent orderedMap sharing
// no backing slices with m, safe to mutate afterward.
func (m *orderedMap[K, V]) Clone() *orderedMap[K, V] {
	c := &orderedMap[K, V]{
		index: make(map[K]int, len(m.index)),
		keys:  make([]K, len(m.keys)),
		vals:  make([]V, len(m.vals)),
	}
	copy(c.keys, m.keys)
	copy(c.vals, m.vals)
	for k, i := range m.index {
		c.index[k] = i
	}
	return c
}

// Each calls fn for every (key, value) pair in insertion order.
func (m *orderedMap[K, V]) Each(fn func(k K, v V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// Filter rebuilds m in place, keeping only entries for which pred
// returns true, preserving relative order of the kept entries.
func (m *orderedMap[K, V]) Filter(pred func(k K, v V) bool) {
	newKeys := m.keys[:0:0]
	newVals := m.vals[:0:0]
	newIndex := make(map[K]int, len(m.index))
	for i, k := range m.keys {
		v := m.vals[i]
		if pred(k, v) {
			newIndex[k] = len(newKeys)
			newKeys = append(newKeys, k)
			newVals = append(newVals, v)
		}
	}
	m.keys = newKeys
	m.vals = newVals
	m.index = newIndex
}

func (m *orderedMap[K, V]) Clear() {
	m.index = make(map[K]int)
	m.keys = nil
	m.vals = nil
}
