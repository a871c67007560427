// Package store holds the per-source buffers, the bucketed Store, the
// ascending merge iterator, and the memory-bounded retention policy
// described in spec.md §3–4 (components A, B, C).
package store

import (
	"container/list"

	"github.com/tuilog/logtail/internal/logline"
)

// Buffer is a double-ended ordered sequence of Records for one bucket.
// Invariant: timestamps are non-increasing from front to back — producers
// push only at the front (newest), and eviction pops only from the back
// (oldest). Backed by container/list so PushFront/PopBack are O(1), as
// spec.md §4.B requires.
type Buffer struct {
	l *list.List
}

// NewBuffer creates an empty per-source buffer.
func NewBuffer() *Buffer {
	return &Buffer{l: list.New()}
}

// PushFront appends a record at the newest end. Producers may emit records
// slightly out of order within a single source (spec.md §4.B) — this is
// accepted without re-sorting; the merge may display such a record out of
// order until it is evicted.
func (b *Buffer) PushFront(r logline.Record) {
	b.l.PushFront(r)
}

// PopBack removes and returns the oldest record. ok is false if the buffer
// is empty.
func (b *Buffer) PopBack() (r logline.Record, ok bool) {
	e := b.l.Back()
	if e == nil {
		return logline.Record{}, false
	}
	b.l.Remove(e)
	return e.Value.(logline.Record), true
}

// Len returns the number of records currently held.
func (b *Buffer) Len() int {
	return b.l.Len()
}

// AscendingIterator returns a lazy iterator that yields this buffer's
// records oldest-first (back to front) — the order the merge (component A)
// requires as input, since buffers are newest-at-front.
func (b *Buffer) AscendingIterator() Iterator {
	return &bufferIterator{next: b.l.Back()}
}

type bufferIterator struct {
	next *list.Element
}

func (it *bufferIterator) Peek() (logline.Record, bool) {
	if it.next == nil {
		return logline.Record{}, false
	}
	return it.next.Value.(logline.Record), true
}

func (it *bufferIterator) Next() (logline.Record, bool) {
	r, ok := it.Peek()
	if !ok {
		return logline.Record{}, false
	}
	it.next = it.next.Prev()
	return r, true
}
