package store

import (
	"sort"
)

// Table is an id-keyed collection of one entity type. Ids start at 1, grow
// monotonically and are never handed out twice, even after a delete or a
// rolled back create. A Table is only reachable through a Tx, so every call
// already runs under the owning Store's lock.
type Table[T any] struct {
	name   string
	nextID uint
	rows   map[uint]T
	setID  func(*T, uint)
	clone  func(T) T

	tx *Tx
}

func newTable[T any](name string, setID func(*T, uint), clone func(T) T) *Table[T] {
	return &Table[T]{
		name:   name,
		nextID: 1,
		rows:   make(map[uint]T),
		setID:  setID,
		clone:  clone,
	}
}

// Name returns the entity type name, used in logs and panics.
func (t *Table[T]) Name() string { return t.name }

// Len returns the number of stored rows.
func (t *Table[T]) Len() int { return len(t.rows) }

// Create assigns the next id to v, stores a copy and returns another copy
// carrying the id.
func (t *Table[T]) Create(v T) T {
	t.mustWrite()
	id := t.nextID
	t.nextID++
	t.setID(&v, id)
	t.rows[id] = t.clone(v)
	t.tx.journal(func() { delete(t.rows, id) })
	return t.clone(v)
}

// Get looks up a row by id.
func (t *Table[T]) Get(id uint) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

// List returns every row ordered by id ascending. Callers that need another
// order sort the result themselves.
func (t *Table[T]) List() []T {
	ids := t.sortedIDs()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

// Find returns the first row, in id order, matching pred.
func (t *Table[T]) Find(pred func(T) bool) (T, bool) {
	for _, id := range t.sortedIDs() {
		if v := t.rows[id]; pred(v) {
			return t.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every row matching pred in id order.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.sortedIDs() {
		if v := t.rows[id]; pred(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

// Update applies mutate to a copy of the row and stores the result. The id
// cannot be changed by mutate.
func (t *Table[T]) Update(id uint, mutate func(*T)) (T, bool) {
	t.mustWrite()
	prev, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	next := t.clone(prev)
	mutate(&next)
	t.setID(&next, id)
	t.rows[id] = next
	t.tx.journal(func() { t.rows[id] = prev })
	return t.clone(next), true
}

// Delete removes a row. It reports whether the row existed.
func (t *Table[T]) Delete(id uint) bool {
	t.mustWrite()
	prev, ok := t.rows[id]
	if !ok {
		return false
	}
	delete(t.rows, id)
	t.tx.journal(func() { t.rows[id] = prev })
	return true
}

func (t *Table[T]) sortedIDs() []uint {
	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Table[T]) mustWrite() {
	if t.tx == nil || !t.tx.writable {
		panic("store: write to " + t.name + " outside a transaction")
	}
}
