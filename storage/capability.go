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

// Package storage provides a family of storage capabilities and the
// concrete storages that implement them.
//
// Capabilities are small interfaces; a handle over any concrete storage can
// be cast to the ones it supports (see Register). Read-only capabilities
// may be used under a read guard; Mut variants require a write guard.
// Storages are not synchronized themselves: the shared cell's lock is the
// only synchronization, so every access must happen under a guard.
package storage

import (
	"iter"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Key is the key type of keyed storages. Index-backed storages convert
// keys to non-negative ints; keys that do not fit never match.
type Key interface {
	constraints.Integer
}

// Storage is the root capability.
type Storage interface {
	Len() int
}

// Clearable storages can remove every item.
type Clearable interface {
	Storage
	Clear()
}

// KeyStorage exposes the key set.
type KeyStorage[K Key] interface {
	Storage
	Contains(k K) bool
	// Keys yields keys in ascending order for ordered storages and in
	// insertion order otherwise.
	Keys() iter.Seq[K]
}

// KeyItem exposes read access by key.
type KeyItem[K Key, I any] interface {
	KeyStorage[K]
	Get(k K) (I, bool)
	Items() iter.Seq[I]
	All() iter.Seq2[K, I]
}

// MutKeyItem adds in-place mutation by key.
type MutKeyItem[K Key, I any] interface {
	KeyItem[K, I]
	Clearable
	// Ref returns a pointer to the stored item, valid until the next
	// structural change or the end of the write guard.
	Ref(k K) (*I, bool)
	// Insert stores item under k and reports whether k was accepted.
	Insert(k K, item I) bool
}

// ItemSlice exposes items as a contiguous slice. The slice aliases the
// storage and must not be modified.
type ItemSlice[I any] interface {
	Storage
	Slice() []I
}

// MutItemSlice exposes items as a mutable contiguous slice.
type MutItemSlice[I any] interface {
	ItemSlice[I]
	MutSlice() []I
}

// ByteSlice exposes the raw memory of a contiguous storage's items. The
// slice aliases the storage and must not be modified. Items holding
// pointers yield the pointer bits, not the data they point at.
type ByteSlice interface {
	Storage
	Bytes() []byte
}

// Typed reports the key and item types of a storage without an instance
// of either.
type Typed interface {
	KeyType() reflect.Type
	ItemType() reflect.Type
}

// typed implements Typed for every storage that embeds it.
type typed[K Key, I any] struct{}

// KeyType returns the type of K.
func (typed[K, I]) KeyType() reflect.Type { return reflect.TypeFor[K]() }

// ItemType returns the type of I.
func (typed[K, I]) ItemType() reflect.Type { return reflect.TypeFor[I]() }

// bytesOf returns the memory backing items.
func bytesOf[I any](items []I) []byte {
	if len(items) == 0 {
		return nil
	}
	var zero I
	n := len(items) * int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(items))), n)
}

// index converts k to a slice index.
func index[K Key](k K) (int, bool) {
	if k < 0 {
		return 0, false
	}
	i := int(k)
	if i < 0 || K(i) != k {
		return 0, false
	}
	return i, true
}
