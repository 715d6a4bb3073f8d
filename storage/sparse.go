/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package storage

import (
	"iter"
	"slices"
)

// SparseStorage is a sparse set: items are packed in a dense slice and a
// key index maps keys to dense positions. Iteration follows insertion
// order, modified by swap-removal.
type SparseStorage[K Key, I any] struct {
	typed[K, I]

	sparse map[K]int
	keys   []K
	dense  []I
}

var (
	_ MutKeyItem[int, int] = (*SparseStorage[int, int])(nil)
	_ MutItemSlice[int]    = (*SparseStorage[int, int])(nil)
	_ ByteSlice            = (*SparseStorage[int, int])(nil)
	_ Typed                = (*SparseStorage[int, int])(nil)
)

// NewSparse returns an empty SparseStorage.
func NewSparse[K Key, I any]() *SparseStorage[K, I] {
	return &SparseStorage[K, I]{sparse: make(map[K]int)}
}

// Len returns the number of items.
func (s *SparseStorage[K, I]) Len() int { return len(s.dense) }

// Clear removes every item and key.
func (s *SparseStorage[K, I]) Clear() {
	clear(s.sparse)
	s.keys = s.keys[:0]
	s.dense = s.dense[:0]
}

// Contains reports whether k holds an item.
func (s *SparseStorage[K, I]) Contains(k K) bool {
	_, ok := s.sparse[k]
	return ok
}

// Keys yields the keys in dense order.
func (s *SparseStorage[K, I]) Keys() iter.Seq[K] { return slices.Values(s.keys) }

// Get returns the item under k.
func (s *SparseStorage[K, I]) Get(k K) (I, bool) {
	if i, ok := s.sparse[k]; ok {
		return s.dense[i], true
	}
	var zero I
	return zero, false
}

// Items yields the items in dense order.
func (s *SparseStorage[K, I]) Items() iter.Seq[I] { return slices.Values(s.dense) }

// All yields key and item pairs in dense order.
func (s *SparseStorage[K, I]) All() iter.Seq2[K, I] {
	return func(yield func(K, I) bool) {
		for i, k := range s.keys {
			if !yield(k, s.dense[i]) {
				return
			}
		}
	}
}

// Ref returns a pointer to the item under k.
func (s *SparseStorage[K, I]) Ref(k K) (*I, bool) {
	if i, ok := s.sparse[k]; ok {
		return &s.dense[i], true
	}
	return nil, false
}

// Insert stores item under k. New keys are appended to the dense slice.
func (s *SparseStorage[K, I]) Insert(k K, item I) bool {
	if s.sparse == nil {
		s.sparse = make(map[K]int)
	}
	if i, ok := s.sparse[k]; ok {
		s.dense[i] = item
		return true
	}
	s.sparse[k] = len(s.dense)
	s.keys = append(s.keys, k)
	s.dense = append(s.dense, item)
	return true
}

// Remove deletes k by moving the last item into its slot.
func (s *SparseStorage[K, I]) Remove(k K) bool {
	i, ok := s.sparse[k]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.keys[i] = s.keys[last]
		s.sparse[s.keys[i]] = i
	}
	var zero I
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.keys = s.keys[:last]
	delete(s.sparse, k)
	return true
}

// Slice returns the items as a slice aliasing the storage.
func (s *SparseStorage[K, I]) Slice() []I { return s.dense }

// MutSlice returns the items as a mutable slice aliasing the storage.
func (s *SparseStorage[K, I]) MutSlice() []I { return s.dense }

// Bytes returns the memory backing the dense items.
func (s *SparseStorage[K, I]) Bytes() []byte { return bytesOf(s.dense) }
