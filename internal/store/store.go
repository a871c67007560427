package store

import (
	"github.com/tuilog/logtail/internal/logline"
)

// DefaultBudget is the approximate byte footprint the Store may hold before
// it starts evicting the oldest record from every bucket on insert
// (spec.md §3, §9 — the constant is configurable here, resolving the
// original's "should this be configurable" open question in favor of yes).
const DefaultBudget = 1 << 30 // ~1 GiB

// Store owns every per-(level,source) Buffer, tracks the aggregate record
// count and byte footprint, and enforces the global memory budget
// (spec.md §3, §4.C). The Skip-Buffer described in spec.md §3 is the same
// shape — built with the same constructor — used as a staging area while
// the viewport is scrolled away from follow mode.
type Store struct {
	buckets map[logline.BucketKey]*Buffer
	// insertOrder preserves the order buckets were first created in, so
	// iteration ties among equal-timestamp records across buckets break
	// the same way on every call (spec.md §4.A/§4.C stability).
	insertOrder []logline.BucketKey
	count       int
	size        int64
	budget      int64
}

// New creates an empty Store with the given byte budget. Pass
// store.DefaultBudget for the spec's ≈1 GiB default.
func New(budget int64) *Store {
	return &Store{
		buckets: make(map[logline.BucketKey]*Buffer),
		budget:  budget,
	}
}

// Count returns the total number of records across all buckets.
func (s *Store) Count() int { return s.count }

// Size returns the approximate aggregate byte footprint.
func (s *Store) Size() int64 { return s.size }

// Put inserts a record (spec.md §4.C): if the store is already over budget,
// one record is evicted from every non-empty bucket first, then the record
// is pushed to the front of its (level, source) bucket.
func (s *Store) Put(r logline.Record) {
	if s.size > s.budget {
		s.evictOnePerBucket()
	}

	key := logline.BucketKey{Level: r.Level, Source: r.Source}
	b, ok := s.buckets[key]
	if !ok {
		b = NewBuffer()
		s.buckets[key] = b
		s.insertOrder = append(s.insertOrder, key)
	}
	b.PushFront(r)
	s.count++
	s.size += int64(r.Cost())
}

// evictOnePerBucket pops the oldest record from every non-empty bucket.
// Empty buckets are left in place (cheap, per spec.md §4.C).
func (s *Store) evictOnePerBucket() {
	for _, key := range s.insertOrder {
		b := s.buckets[key]
		if b.Len() == 0 {
			continue
		}
		r, ok := b.PopBack()
		if !ok {
			continue
		}
		s.count--
		s.size -= int64(r.Cost())
	}
}

// Clear drops all buckets and zeroes the counters.
func (s *Store) Clear() {
	s.buckets = make(map[logline.BucketKey]*Buffer)
	s.insertOrder = nil
	s.count = 0
	s.size = 0
}

// Iter selects the buckets whose level is included in mask and returns a
// single ascending Iterator over them (spec.md §4.C). Level masking is an
// O(1) bucket-set selection, never a per-record test.
func (s *Store) Iter(mask logline.LevelMask) Iterator {
	var selected []Iterator
	// insertOrder gives a deterministic, stable fold order for the
	// left-to-right N-way merge (spec.md §4.A tie-break stability).
	keys := make([]logline.BucketKey, 0, len(s.insertOrder))
	for _, key := range s.insertOrder {
		if mask.Has(key.Level) {
			keys = append(keys, key)
		}
	}

	for _, key := range keys {
		b := s.buckets[key]
		if b.Len() == 0 {
			continue
		}
		selected = append(selected, b.AscendingIterator())
	}
	return MergeAll(selected)
}

// DrainOldestFirst removes every record from every bucket, oldest first
// overall is NOT guaranteed across buckets — callers that need global
// ascending order should use Iter first. DrainOldestFirst exists for the
// Skip-Buffer-to-Store hand-off (spec.md §4.E): each bucket is walked
// back-to-front (oldest first within that bucket) and the callback
// receives every record exactly once. The total moved count is returned.
func (s *Store) DrainOldestFirst(visit func(logline.Record)) int {
	moved := 0
	for _, key := range s.insertOrder {
		b := s.buckets[key]
		for {
			r, ok := b.PopBack()
			if !ok {
				break
			}
			moved++
			visit(r)
		}
	}
	s.count = 0
	s.size = 0
	return moved
}
