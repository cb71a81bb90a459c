package seenset

import "testing"

func TestContainsAndInsert(t *testing.T) {
	s := New(8)

	a := ID{Device: 1, Inode: 100}
	b := ID{Device: 1, Inode: 200}

	if s.Contains(a) {
		t.Error("empty set should not contain anything")
	}

	s.Insert(a)
	if !s.Contains(a) {
		t.Error("expected a to be tracked after Insert")
	}
	if s.Contains(b) {
		t.Error("b was never inserted")
	}
	if s.Len() != 1 {
		t.Errorf("expected Len 1, got %d", s.Len())
	}
}

func TestFIFOEviction(t *testing.T) {
	s := New(3)

	ids := []ID{
		{Device: 1, Inode: 1},
		{Device: 1, Inode: 2},
		{Device: 1, Inode: 3},
	}
	for _, id := range ids {
		s.Insert(id)
	}

	// Fourth insert evicts the oldest entry
	s.Insert(ID{Device: 1, Inode: 4})

	if s.Contains(ids[0]) {
		t.Error("oldest ID should have been evicted")
	}
	for _, id := range ids[1:] {
		if !s.Contains(id) {
			t.Errorf("ID %v should still be tracked", id)
		}
	}
	if !s.Contains(ID{Device: 1, Inode: 4}) {
		t.Error("newest ID should be tracked")
	}
}

func TestBoundedSize(t *testing.T) {
	const capacity = 16
	s := New(capacity)

	for i := 0; i < capacity*4; i++ {
		s.Insert(ID{Device: 1, Inode: uint64(i)})
		if s.Len() > capacity {
			t.Fatalf("set grew to %d, capacity is %d", s.Len(), capacity)
		}
	}

	if s.Len() != capacity {
		t.Errorf("expected Len %d after overflow, got %d", capacity, s.Len())
	}

	// The most recent capacity-many IDs survive
	for i := capacity * 3; i < capacity*4; i++ {
		if !s.Contains(ID{Device: 1, Inode: uint64(i)}) {
			t.Errorf("recent ID %d should still be tracked", i)
		}
	}
}

func TestReinsertAfterEviction(t *testing.T) {
	s := New(2)

	a := ID{Device: 1, Inode: 1}
	s.Insert(a)
	s.Insert(ID{Device: 1, Inode: 2})
	s.Insert(ID{Device: 1, Inode: 3}) // evicts a

	if s.Contains(a) {
		t.Fatal("a should have been evicted")
	}

	s.Insert(a)
	if !s.Contains(a) {
		t.Error("a should be tracked again after re-insert")
	}
	if s.Len() != 2 {
		t.Errorf("expected Len 2, got %d", s.Len())
	}
}

func TestDefaultCapacity(t *testing.T) {
	s := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		s.Insert(ID{Inode: uint64(i)})
	}
	if s.Len() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, s.Len())
	}
}
