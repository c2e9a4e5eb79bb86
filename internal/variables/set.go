package variables

import "iter"

// Set is a string mapping that remembers the order in which keys were first added.
// Setting a key that already exists replaces its value in place.
type Set struct {
	keys   []string
	values map[string]string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{values: make(map[string]string)}
}

// Set stores value under key.
func (s *Set) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Set) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Len reports the number of keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// All iterates over key/value pairs in insertion order.
func (s *Set) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of the Set.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for k, v := range s.All() {
		out[k] = v
	}
	return out
}

// Merge folds the given sets left to right into a new Set. Later sets win on key
// collisions; the position of a key is the position of its first appearance.
// Nil sets are skipped.
func Merge(sets ...*Set) *Set {
	merged := NewSet()
	for _, s := range sets {
		for k, v := range s.All() {
			merged.Set(k, v)
		}
	}
	return merged
}
