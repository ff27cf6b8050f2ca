// Package memo provides compute-if-absent tables shared by concurrent workers.
package memo

import "sync"

// Table memoizes values by key. Compute functions must be pure for a given
// key: two workers racing on the same key may both compute, and whichever
// value lands first is returned to both.
type Table[K comparable, V any] struct {
	entries sync.Map
}

// Get returns the cached value for key, computing and storing it when absent.
func (t *Table[K, V]) Get(key K, compute func() V) V {
	if cached, ok := t.entries.Load(key); ok {
		if v, castOK := cached.(V); castOK {
			return v
		}
	}

	value := compute()

	actual, _ := t.entries.LoadOrStore(key, value)
	if v, ok := actual.(V); ok {
		return v
	}

	return value
}

// Len returns the number of cached entries.
func (t *Table[K, V]) Len() int {
	n := 0

	t.entries.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
