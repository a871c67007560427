package logline

import "time"

// Record is an immutable, value-semantics log entry. Two records compare by
// Timestamp only (see spec.md §3); Source/Level/Value never participate in
// ordering, matching the Rust original's `Message` whose `Ord` impl
// delegates entirely to `timestamp.cmp`.
type Record struct {
	Timestamp time.Time
	Source    string
	Level     Level
	Value     string
}

// Cost is the approximate byte footprint the Store charges for this record:
// value bytes + source bytes + a fixed timestamp cost, mirroring the Rust
// `Messages::put` accounting (`value.len() + system.len() +
// size_of_val(timestamp)`).
func (r Record) Cost() int {
	const timestampCost = 16 // two 64-bit words, as size_of::<DateTime<Utc>>() would report
	return len(r.Value) + len(r.Source) + timestampCost
}

// Before reports whether r sorts strictly before other by timestamp.
func (r Record) Before(other Record) bool {
	return r.Timestamp.Before(other.Timestamp)
}

// Equal reports whether r and other have the same timestamp. The merge
// iterator (store.NewMergeAscending) does not call it: it compares with
// Before only and treats "neither side strictly before" as a tie.
func (r Record) Equal(other Record) bool {
	return r.Timestamp.Equal(other.Timestamp)
}

// BucketKey is the (level, source) pair that groups records inside a Store.
type BucketKey struct {
	Level  Level
	Source string
}
