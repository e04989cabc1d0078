// Package sparse provides the sparse set used by the Pike VM run queues.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of members in insertion order. The VM relies on that
// order: the dense list of a run queue is its thread priority order.
package sparse

import "math"

// SparseSet is a set of uint32 values drawn from [0, capacity).
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members in insertion order
}

// NewSparseSet creates a set able to hold values in [0, capacity).
// Panics if capacity does not fit in uint32.
func NewSparseSet(capacity int) *SparseSet {
	if capacity < 0 || uint64(capacity) > math.MaxUint32 {
		panic("sparse: capacity out of uint32 range")
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was absent.
// Values outside the capacity are rejected.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) || int(value) >= len(s.sparse) {
		return false
	}
	//nolint:gosec // len(dense) < capacity <= MaxUint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Capacity returns the exclusive upper bound of storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the members in insertion order.
// The slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
