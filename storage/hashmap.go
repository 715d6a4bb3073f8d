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
	"maps"
	"slices"
)

// HashMapStorage is a map-backed keyed storage. Iteration is in ascending
// key order. It has no slice capabilities.
type HashMapStorage[K Key, I any] struct {
	typed[K, I]

	m map[K]*I
}

var _ MutKeyItem[int, int] = (*HashMapStorage[int, int])(nil)

// NewHashMap returns an empty HashMapStorage.
func NewHashMap[K Key, I any]() *HashMapStorage[K, I] {
	return &HashMapStorage[K, I]{m: make(map[K]*I)}
}

// Len returns the number of items.
func (h *HashMapStorage[K, I]) Len() int { return len(h.m) }

// Clear removes every item.
func (h *HashMapStorage[K, I]) Clear() { clear(h.m) }

// Contains reports whether k holds an item.
func (h *HashMapStorage[K, I]) Contains(k K) bool {
	_, ok := h.m[k]
	return ok
}

// Keys yields the keys in ascending order.
func (h *HashMapStorage[K, I]) Keys() iter.Seq[K] {
	return slices.Values(h.sortedKeys())
}

// Get returns the item under k.
func (h *HashMapStorage[K, I]) Get(k K) (I, bool) {
	if p, ok := h.m[k]; ok {
		return *p, true
	}
	var zero I
	return zero, false
}

// Items yields the items in key order.
func (h *HashMapStorage[K, I]) Items() iter.Seq[I] {
	return func(yield func(I) bool) {
		for _, k := range h.sortedKeys() {
			if !yield(*h.m[k]) {
				return
			}
		}
	}
}

// All yields key and item pairs in key order.
func (h *HashMapStorage[K, I]) All() iter.Seq2[K, I] {
	return func(yield func(K, I) bool) {
		for _, k := range h.sortedKeys() {
			if !yield(k, *h.m[k]) {
				return
			}
		}
	}
}

// Ref returns a pointer to the item under k.
func (h *HashMapStorage[K, I]) Ref(k K) (*I, bool) {
	p, ok := h.m[k]
	return p, ok
}

// Insert stores item under k, replacing any previous item. It always accepts k.
func (h *HashMapStorage[K, I]) Insert(k K, item I) bool {
	if h.m == nil {
		h.m = make(map[K]*I)
	}
	if p, ok := h.m[k]; ok {
		*p = item
		return true
	}
	h.m[k] = &item
	return true
}

func (h *HashMapStorage[K, I]) sortedKeys() []K {
	return slices.Sorted(maps.Keys(h.m))
}
