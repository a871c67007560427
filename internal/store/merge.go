package store

import "github.com/tuilog/logtail/internal/logline"

// Iterator is a lazy, peekable sequence of ascending Records.
// Buffer.AscendingIterator and NewMergeAscending both return one, so merges
// compose (component A in spec.md §4.A).
type Iterator interface {
	// Peek returns the next record without consuming it.
	Peek() (logline.Record, bool)
	// Next consumes and returns the next record.
	Next() (logline.Record, bool)
}

// mergeAscending lazily merges two ascending Iterators into one ascending
// Iterator. Ported from the Rust original's `MergeAscending` (see
// merge.rs / search_thread/merge.rs): on a tie, the left side advances
// first — stable, so the earlier-composed source appears first among
// equal-timestamp records (spec.md §4.A).
type mergeAscending struct {
	left, right Iterator
}

// NewMergeAscending composes two ascending iterators into one.
func NewMergeAscending(left, right Iterator) Iterator {
	return &mergeAscending{left: left, right: right}
}

func (m *mergeAscending) Peek() (logline.Record, bool) {
	l, lok := m.left.Peek()
	r, rok := m.right.Peek()
	switch {
	case lok && rok:
		if r.Before(l) {
			return r, true
		}
		return l, true
	case lok:
		return l, true
	case rok:
		return r, true
	default:
		return logline.Record{}, false
	}
}

func (m *mergeAscending) Next() (logline.Record, bool) {
	l, lok := m.left.Peek()
	r, rok := m.right.Peek()

	switch {
	case lok && rok:
		if r.Before(l) {
			// right strictly smaller: advance right.
			return m.right.Next()
		}
		// left strictly smaller, or a tie: advance left. On Equal this
		// is the stable tie-break (§4.A) — the earlier-composed side
		// appears first among equal-timestamp records.
		return m.left.Next()
	case lok:
		return m.left.Next()
	case rok:
		return m.right.Next()
	default:
		return logline.Record{}, false
	}
}

// MergeAll left-folds NewMergeAscending across a slice of ascending
// iterators into a single N-way ascending iterator, mirroring the Rust
// `merging_iterator_from!` macro. Complexity is O(N) per produced element
// where N is the iterator count (spec.md §4.C); acceptable because bucket
// count is bounded by 4 levels × source count, typically well under 64.
func MergeAll(iters []Iterator) Iterator {
	if len(iters) == 0 {
		return emptyIterator{}
	}
	acc := iters[0]
	for _, it := range iters[1:] {
		acc = NewMergeAscending(acc, it)
	}
	return acc
}

type emptyIterator struct{}

func (emptyIterator) Peek() (logline.Record, bool) { return logline.Record{}, false }
func (emptyIterator) Next() (logline.Record, bool) { return logline.Record{}, false }
