// Package dedup canonicalizes slices of structural keys, used wherever
// spec.md calls for dedup by structural equality: Choose-alternative
// construction (spec.md §4.1/§4.2) and lattice-structure enumeration
// (spec.md §4.3/§8). Built on github.com/mpvl/unique, which sorts a
// sort.Interface in place and reports the length of its unique prefix.
package dedup

import "github.com/mpvl/unique"

// keyedSlice adapts a []string plus a parallel permutation of indices so
// callers can recover, after Strings dedups, which original elements
// survived.
type keyedSlice struct {
	keys    []string
	indices []int
}

func (s *keyedSlice) Len() int { return len(s.keys) }

func (s *keyedSlice) Less(i, j int) bool { return s.keys[i] < s.keys[j] }

func (s *keyedSlice) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.indices[i], s.indices[j] = s.indices[j], s.indices[i]
}

// UniqueIndices sorts keys and returns the indices (into the original,
// unsorted keys slice) of one representative of each distinct key, in
// sorted-key order.
func UniqueIndices(keys []string) []int {
	s := &keyedSlice{keys: append([]string(nil), keys...), indices: make([]int, len(keys))}
	for i := range s.indices {
		s.indices[i] = i
	}
	n := unique.Sort(s)
	return s.indices[:n]
}

// Strings returns the sorted, duplicate-free form of keys.
func Strings(keys []string) []string {
	idx := UniqueIndices(keys)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = keys[j]
	}
	return out
}

// Seen is a small append-only set used to dedup structural keys in
// generation order (preserving the order spec.md's enumerators promise,
// rather than the sorted order Strings/UniqueIndices produce).
type Seen struct {
	m map[string]bool
}

func NewSeen() *Seen { return &Seen{m: make(map[string]bool)} }

// Add reports whether key was already present, and records it.
func (s *Seen) Add(key string) (wasPresent bool) {
	if s.m[key] {
		return true
	}
	s.m[key] = true
	return false
}
