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

// VecStorage is a slice-backed storage keyed by index. It supports every
// capability in this package.
type VecStorage[K Key, I any] struct {
	typed[K, I]

	data []I
}

var (
	_ MutKeyItem[int, int] = (*VecStorage[int, int])(nil)
	_ MutItemSlice[int]    = (*VecStorage[int, int])(nil)
	_ ByteSlice            = (*VecStorage[int, int])(nil)
	_ Typed                = (*VecStorage[int, int])(nil)
)

// NewVec returns a VecStorage holding items.
func NewVec[K Key, I any](items ...I) *VecStorage[K, I] {
	return &VecStorage[K, I]{data: slices.Clone(items)}
}

// Len returns the number of items.
func (v *VecStorage[K, I]) Len() int { return len(v.data) }

// Clear removes every item.
func (v *VecStorage[K, I]) Clear() { v.data = v.data[:0] }

// Contains reports whether k holds an item.
func (v *VecStorage[K, I]) Contains(k K) bool {
	i, ok := index(k)
	return ok && i < len(v.data)
}

// Keys yields 0 through Len()-1.
func (v *VecStorage[K, I]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range v.data {
			if !yield(K(i)) {
				return
			}
		}
	}
}

// Get returns the item under k.
func (v *VecStorage[K, I]) Get(k K) (I, bool) {
	if i, ok := index(k); ok && i < len(v.data) {
		return v.data[i], true
	}
	var zero I
	return zero, false
}

// Items yields the items in key order.
func (v *VecStorage[K, I]) Items() iter.Seq[I] { return slices.Values(v.data) }

// All yields key and item pairs in key order.
func (v *VecStorage[K, I]) All() iter.Seq2[K, I] {
	return func(yield func(K, I) bool) {
		for i, item := range v.data {
			if !yield(K(i), item) {
				return
			}
		}
	}
}

// Ref returns a pointer to the item under k.
func (v *VecStorage[K, I]) Ref(k K) (*I, bool) {
	if i, ok := index(k); ok && i < len(v.data) {
		return &v.data[i], true
	}
	return nil, false
}

// Insert stores item at index k, overwriting what was there. Inserting
// past the end pads the gap with zero values.
func (v *VecStorage[K, I]) Insert(k K, item I) bool {
	i, ok := index(k)
	if !ok {
		return false
	}
	if i >= len(v.data) {
		v.data = append(v.data, make([]I, i+1-len(v.data))...)
	}
	v.data[i] = item
	return true
}

// Slice returns the items as a slice aliasing the storage.
func (v *VecStorage[K, I]) Slice() []I { return v.data }

// MutSlice returns the items as a mutable slice aliasing the storage.
func (v *VecStorage[K, I]) MutSlice() []I { return v.data }

// Bytes returns the memory backing the items.
func (v *VecStorage[K, I]) Bytes() []byte { return bytesOf(v.data) }

// Push appends item.
func (v *VecStorage[K, I]) Push(item I) { v.data = append(v.data, item) }

// SetAt overwrites the item at i. It panics if i is out of range.
func (v *VecStorage[K, I]) SetAt(i int, item I) { v.data[i] = item }

// InsertAndShift inserts item at i, shifting later items up by one.
// It panics if i > Len().
func (v *VecStorage[K, I]) InsertAndShift(i int, item I) {
	v.data = slices.Insert(v.data, i, item)
}
