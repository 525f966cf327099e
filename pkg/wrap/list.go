// Package wrap provides a generic, slice-backed implementation of the
// wrapper contract for callers that do not need a distinct named type. The
// go source emitter produces named equivalents of this surface; List is the
// direct-use alternative.
package wrap

import (
	"iter"
	"slices"
)

// List is an ordered, growable sequence of E values. Its observable contents
// are always exactly the underlying slice's contents, in the same order. The
// zero value is an empty, ready-to-use list. List is a single-owner value
// type: callers sharing one across goroutines must synchronise externally.
type List[E any] []E

// New returns a list holding the given elements in order.
func New[E any](items ...E) List[E] {
	return List[E](items)
}

// From adopts an owned slice without copying.
func From[E any](raw []E) List[E] {
	return List[E](raw)
}

// Of returns a one-element list holding item.
func Of[E any](item E) List[E] {
	return List[E]{item}
}

// Promote converts a single variant-source value and wraps it in a
// one-element list.
func Promote[V, E any](convert func(V) E, value V) List[E] {
	return List[E]{convert(value)}
}

// Collect drains a finite sequence into a new list, preserving order.
func Collect[E any](seq iter.Seq[E]) List[E] {
	var out List[E]
	out.Extend(seq)
	return out
}

// Push appends item to the end of the list.
func (l *List[E]) Push(item E) {
	*l = append(*l, item)
}

// PushFrom converts a variant-source value and appends the result. Methods
// cannot introduce type parameters, hence the package-level form.
func PushFrom[E, V any](l *List[E], convert func(V) E, value V) {
	l.Push(convert(value))
}

// Extend appends every element of a finite sequence, in iteration order.
func (l *List[E]) Extend(seq iter.Seq[E]) {
	for item := range seq {
		*l = append(*l, item)
	}
}

// ExtendSlice appends all items, batching the capacity growth.
func (l *List[E]) ExtendSlice(items []E) {
	*l = append(*l, items...)
}

// ExtendFrom converts each value of a finite sequence and appends the
// results in iteration order.
func ExtendFrom[E, V any](l *List[E], convert func(V) E, seq iter.Seq[V]) {
	for value := range seq {
		l.Push(convert(value))
	}
}

// Values returns a lazy sequence over the elements in order. The sequence is
// restartable per call and does not mutate the list.
func (l List[E]) Values() iter.Seq[E] {
	return slices.Values(l)
}

// All returns an index/element sequence over the list, restartable per call.
func (l List[E]) All() iter.Seq2[int, E] {
	return slices.All(l)
}

// Drain returns a one-shot sequence that consumes the list: the receiver is
// emptied when iteration starts and subsequent Drain calls yield nothing.
func (l *List[E]) Drain() iter.Seq[E] {
	return func(yield func(E) bool) {
		items := *l
		*l = nil
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Raw unwraps the list into its underlying slice without copying.
func (l List[E]) Raw() []E {
	return []E(l)
}

// Len reports the number of elements.
func (l List[E]) Len() int {
	return len(l)
}

// Clone returns an independent copy of the list.
func (l List[E]) Clone() List[E] {
	return List[E](slices.Clone(l))
}

// Equal reports element-wise equality in order using eq.
func (l List[E]) Equal(other List[E], eq func(E, E) bool) bool {
	return slices.EqualFunc(l, other, eq)
}
