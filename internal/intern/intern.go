// Package intern maps candidate values to dense integer identifiers so that
// pairwise counts can be stored in integer-indexed structures instead of
// hashing candidate values repeatedly.
package intern

// Interner assigns each distinct candidate value a stable, zero-based id in
// first-seen order and keeps the reverse mapping for materializing results.
// Ids are never reordered or reused for the lifetime of the interner.
type Interner[T comparable] struct {
	ids    map[T]int
	values []T
}

// New returns an empty interner.
func New[T comparable]() *Interner[T] {
	return &Interner[T]{ids: make(map[T]int)}
}

// WithCapacity returns an empty interner sized for n expected candidates.
func WithCapacity[T comparable](n int) *Interner[T] {
	return &Interner[T]{
		ids:    make(map[T]int, n),
		values: make([]T, 0, n),
	}
}

// Intern returns the id for the candidate, assigning the next dense id if
// the candidate has not been seen before.
func (in *Interner[T]) Intern(candidate T) int {
	if id, ok := in.ids[candidate]; ok {
		return id
	}
	id := len(in.values)
	in.ids[candidate] = id
	in.values = append(in.values, candidate)
	return id
}

// Lookup returns the id for a candidate without interning it.
func (in *Interner[T]) Lookup(candidate T) (int, bool) {
	id, ok := in.ids[candidate]
	return id, ok
}

// Value returns the candidate with the given id. The id must have been
// returned by Intern.
func (in *Interner[T]) Value(id int) T {
	return in.values[id]
}

// Candidates returns all interned candidates in first-seen order.
func (in *Interner[T]) Candidates() []T {
	out := make([]T, len(in.values))
	copy(out, in.values)
	return out
}

// Len returns the number of interned candidates.
func (in *Interner[T]) Len() int { return len(in.values) }
