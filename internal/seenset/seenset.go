package seenset

// DefaultCapacity is the number of identities tracked before eviction kicks in
const DefaultCapacity = 4096

// ID is a stable identity for a filesystem entry. On POSIX systems it is the
// (device, inode) pair; on Windows the volume serial number and 64-bit file
// index. Comparing IDs instead of names distinguishes a recreated file from
// the file that previously had the same name.
type ID struct {
	Device uint64
	Inode  uint64
}

// Set is a bounded set of IDs with FIFO eviction. Once the set reaches
// capacity, each insert evicts the oldest-inserted ID. Losing track of a very
// old identity only risks re-reporting a file that was never deleted, so FIFO
// is an acceptable approximation of true oldest-file eviction.
//
// Insert does not deduplicate; callers must check Contains first so duplicate
// entries don't consume capacity. The set is not safe for concurrent use.
type Set struct {
	capacity int
	ids      map[ID]struct{}
	order    []ID
	next     int // eviction cursor, used once the ring is full
}

// New creates a set that holds at most capacity IDs.
// A capacity of zero or less falls back to DefaultCapacity.
func New(capacity int) *Set {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Set{
		capacity: capacity,
		ids:      make(map[ID]struct{}, capacity),
		order:    make([]ID, 0, capacity),
	}
}

// Contains reports whether id is currently tracked.
func (s *Set) Contains(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Insert adds id to the set, evicting the oldest entry if the set is full.
func (s *Set) Insert(id ID) {
	if len(s.order) < s.capacity {
		s.order = append(s.order, id)
		s.ids[id] = struct{}{}
		return
	}

	oldest := s.order[s.next]
	delete(s.ids, oldest)
	s.order[s.next] = id
	s.ids[id] = struct{}{}
	s.next = (s.next + 1) % s.capacity
}

// Len returns the number of tracked IDs.
func (s *Set) Len() int {
	return len(s.ids)
}
