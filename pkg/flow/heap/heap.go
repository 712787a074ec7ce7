// Package heap provides a generic binary min-heap used as the priority queue
// of the shortest-path search in package flow.
//
// The heap is array backed: the element at index i has children at 2i+1 and
// 2i+2. Ordering is defined entirely by the less function supplied at
// construction, so ties are resolved however the caller's comparison
// resolves them.
//
//	h := heap.New(func(a, b int) bool { return a < b })
//	_ = h.Insert(3)
//	_ = h.Insert(1)
//	v, _ := h.ExtractMin() // 1
package heap

import "errors"

var (
	// ErrEmpty is returned by [MinHeap.ExtractMin] when the heap holds no items.
	ErrEmpty = errors.New("heap: extract from empty heap")

	// ErrFull is returned by [MinHeap.Insert] when a bounded heap is at its limit.
	ErrFull = errors.New("heap: capacity reached")
)

// MinHeap is a binary min-heap ordered by a caller-supplied less function.
//
// The zero value is not usable; create heaps with [New] or [NewBounded].
// MinHeap is not safe for concurrent use.
type MinHeap[T any] struct {
	items []T
	less  func(a, b T) bool
	limit int // 0 means unbounded
}

// New returns an empty, unbounded heap ordered by less.
func New[T any](less func(a, b T) bool) *MinHeap[T] {
	return &MinHeap[T]{less: less}
}

// NewBounded returns an empty heap that holds at most limit items.
// A limit of zero or less yields an unbounded heap.
func NewBounded[T any](less func(a, b T) bool, limit int) *MinHeap[T] {
	h := &MinHeap[T]{less: less}
	if limit > 0 {
		h.limit = limit
		h.items = make([]T, 0, limit)
	}
	return h
}

// Len returns the number of items in the heap.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// Insert adds item to the heap in O(log n).
func (h *MinHeap[T]) Insert(item T) error {
	if h.limit > 0 && len(h.items) >= h.limit {
		return ErrFull
	}
	h.items = append(h.items, item)
	h.up(len(h.items) - 1)
	return nil
}

// ExtractMin removes and returns the smallest item in O(log n).
func (h *MinHeap[T]) ExtractMin() (T, error) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, ErrEmpty
	}
	top := h.items[0]
	last := n - 1
	h.items[0] = h.items[last]
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	return top, nil
}

// Peek returns the smallest item without removing it.
func (h *MinHeap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Reset removes all items but keeps the allocated storage.
func (h *MinHeap[T]) Reset() {
	clear(h.items)
	h.items = h.items[:0]
}

func (h *MinHeap[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap[T]) down(i int) {
	n := len(h.items)
	for {
		smallest := i
		if l := 2*i + 1; l < n && h.less(h.items[l], h.items[smallest]) {
			smallest = l
		}
		if r := 2*i + 2; r < n && h.less(h.items[r], h.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
