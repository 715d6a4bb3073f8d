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
	"reflect"

	"dirpx.dev/flex/apis"
)

// ValStorage holds exactly one item under key 0. It exposes keyed read
// access and slice views of length one but cannot be cleared.
//
// ValStorage describes its own capabilities through apis.Provider, so it
// needs no registration while self-described resolution is enabled.
type ValStorage[K Key, I any] struct {
	typed[K, I]

	val [1]I
}

var (
	_ KeyItem[int, int] = (*ValStorage[int, int])(nil)
	_ MutItemSlice[int] = (*ValStorage[int, int])(nil)
	_ Typed             = (*ValStorage[int, int])(nil)
	_ apis.Provider     = (*ValStorage[int, int])(nil)
)

// NewVal returns a ValStorage holding item.
func NewVal[K Key, I any](item I) *ValStorage[K, I] {
	return &ValStorage[K, I]{val: [1]I{item}}
}

// Len is always 1.
func (v *ValStorage[K, I]) Len() int { return 1 }

// Contains reports whether k is 0.
func (v *ValStorage[K, I]) Contains(k K) bool { return k == 0 }

// Keys yields the single key 0.
func (v *ValStorage[K, I]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) { yield(0) }
}

// Get returns the held item when k is 0.
func (v *ValStorage[K, I]) Get(k K) (I, bool) {
	if k != 0 {
		var zero I
		return zero, false
	}
	return v.val[0], true
}

// Items yields the held item.
func (v *ValStorage[K, I]) Items() iter.Seq[I] {
	return func(yield func(I) bool) { yield(v.val[0]) }
}

// All yields 0 with the held item.
func (v *ValStorage[K, I]) All() iter.Seq2[K, I] {
	return func(yield func(K, I) bool) { yield(0, v.val[0]) }
}

// Slice returns a one-item slice aliasing the held item.
func (v *ValStorage[K, I]) Slice() []I { return v.val[:] }

// MutSlice returns a mutable one-item slice aliasing the held item.
func (v *ValStorage[K, I]) MutSlice() []I { return v.val[:] }

// Value returns the held item.
func (v *ValStorage[K, I]) Value() I { return v.val[0] }

// Set replaces the held item.
func (v *ValStorage[K, I]) Set(item I) { v.val[0] = item }

// ProvideCapability implements apis.Provider.
func (v *ValStorage[K, I]) ProvideCapability(c reflect.Type) (any, bool) {
	switch c {
	case reflect.TypeFor[Storage](),
		reflect.TypeFor[KeyStorage[K]](),
		reflect.TypeFor[KeyItem[K, I]](),
		reflect.TypeFor[ItemSlice[I]](),
		reflect.TypeFor[MutItemSlice[I]](),
		reflect.TypeFor[Typed]():
		return v, true
	}
	return nil, false
}
