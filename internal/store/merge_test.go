package store

import (
	"testing"
	"time"

	"github.com/tuilog/logtail/internal/logline"
)

func mkRecord(sec int, source string) logline.Record {
	return logline.Record{
		Timestamp: time.Unix(int64(sec), 0).UTC(),
		Source:    source,
		Level:     logline.INFO,
		Value:     source,
	}
}

func sliceIterator(records ...logline.Record) Iterator {
	b := NewBuffer()
	// push in reverse so the buffer's ascending iterator yields `records`
	// in the given order (PushFront puts newest at front).
	for i := len(records) - 1; i >= 0; i-- {
		b.PushFront(records[i])
	}
	return b.AscendingIterator()
}

func drain(it Iterator) []logline.Record {
	var out []logline.Record
	for {
		r, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func TestMergeAscendingOrdersByTimestamp(t *testing.T) {
	left := sliceIterator(mkRecord(1, "A"), mkRecord(3, "A"), mkRecord(5, "A"))
	right := sliceIterator(mkRecord(2, "B"), mkRecord(4, "B"))

	got := drain(NewMergeAscending(left, right))
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Timestamp.Unix() != int64(want[i]) {
			t.Errorf("index %d: ts = %d, want %d", i, r.Timestamp.Unix(), want[i])
		}
	}
}

func TestMergeAscendingStableOnTies(t *testing.T) {
	// Equal timestamps: the left-composed iterator's element must come first.
	left := sliceIterator(mkRecord(1, "left"))
	right := sliceIterator(mkRecord(1, "right"))

	got := drain(NewMergeAscending(left, right))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Source != "left" {
		t.Errorf("first record source = %q, want %q (left must win ties)", got[0].Source, "left")
	}
	if got[1].Source != "right" {
		t.Errorf("second record source = %q, want %q", got[1].Source, "right")
	}
}

func TestMergeAscendingDrainsExhaustedSide(t *testing.T) {
	left := sliceIterator(mkRecord(1, "A"))
	right := sliceIterator(mkRecord(2, "B"), mkRecord(3, "B"), mkRecord(4, "B"))

	got := drain(NewMergeAscending(left, right))
	want := []int{1, 2, 3, 4}
	for i, r := range got {
		if r.Timestamp.Unix() != int64(want[i]) {
			t.Errorf("index %d: ts = %d, want %d", i, r.Timestamp.Unix(), want[i])
		}
	}
}

func TestMergeAllNWay(t *testing.T) {
	a := sliceIterator(mkRecord(1, "A"), mkRecord(7, "A"))
	b := sliceIterator(mkRecord(2, "B"), mkRecord(6, "B"))
	c := sliceIterator(mkRecord(3, "C"), mkRecord(5, "C"))

	got := drain(MergeAll([]Iterator{a, b, c}))
	want := []int{1, 2, 3, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Timestamp.Unix() != int64(want[i]) {
			t.Errorf("index %d: ts = %d, want %d", i, r.Timestamp.Unix(), want[i])
		}
	}
}

func TestMergeAllEmpty(t *testing.T) {
	got := drain(MergeAll(nil))
	if len(got) != 0 {
		t.Errorf("expected zero elements, got %d", len(got))
	}
}
