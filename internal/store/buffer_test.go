package store

import "testing"

func TestBufferPushFrontPopBackOrder(t *testing.T) {
	b := NewBuffer()
	b.PushFront(mkRecord(1, "A"))
	b.PushFront(mkRecord(2, "A"))
	b.PushFront(mkRecord(3, "A"))

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	// Oldest (timestamp 1) must be at the back.
	r, ok := b.PopBack()
	if !ok || r.Timestamp.Unix() != 1 {
		t.Fatalf("PopBack() = %v, %v, want ts=1", r, ok)
	}
	if b.Len() != 2 {
		t.Errorf("Len() after pop = %d, want 2", b.Len())
	}
}

func TestBufferPopBackEmpty(t *testing.T) {
	b := NewBuffer()
	_, ok := b.PopBack()
	if ok {
		t.Errorf("PopBack() on empty buffer should report ok=false")
	}
}

func TestBufferAscendingIteratorOrder(t *testing.T) {
	b := NewBuffer()
	b.PushFront(mkRecord(1, "A"))
	b.PushFront(mkRecord(2, "A"))
	b.PushFront(mkRecord(3, "A"))

	got := drain(b.AscendingIterator())
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Timestamp.Unix() != int64(want[i]) {
			t.Errorf("index %d: ts = %d, want %d", i, r.Timestamp.Unix(), want[i])
		}
	}
}

func TestBufferRepeatedInsertGrowsMonotonically(t *testing.T) {
	b := NewBuffer()
	r := mkRecord(1, "A")
	for i := 0; i < 5; i++ {
		b.PushFront(r)
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}
