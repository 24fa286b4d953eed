package search

import "errors"

// ErrEmptyFrontier is returned by Pop when nothing is left to expand. Seeing it
// outside this package means a traversal loop skipped its Empty check.
var ErrEmptyFrontier = errors.New("search: empty frontier")

// Frontier is the collection of nodes awaiting expansion.
type Frontier[T any] interface {
	Push(item T)
	Pop() (T, error)
	Empty() bool
	Len() int
}

// QueueFrontier is a first-in-first-out Frontier. Breadth-first order, and
// with it the shortest-path guarantee, depends on this discipline.
type QueueFrontier[T any] struct {
	items []T
	head  int
}

// NewQueueFrontier returns an empty queue with room for capacity items.
func NewQueueFrontier[T any](capacity int) *QueueFrontier[T] {
	return &QueueFrontier[T]{items: make([]T, 0, capacity)}
}

// Push appends item to the tail.
func (q *QueueFrontier[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Pop removes and returns the head.
func (q *QueueFrontier[T]) Pop() (T, error) {
	var zero T
	if q.Empty() {
		return zero, ErrEmptyFrontier
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= 1024 && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return item, nil
}

// Empty reports whether the queue holds no items.
func (q *QueueFrontier[T]) Empty() bool {
	return q.head == len(q.items)
}

// Len returns the number of queued items.
func (q *QueueFrontier[T]) Len() int {
	return len(q.items) - q.head
}
