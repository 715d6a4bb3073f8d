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
	"errors"
	"fmt"
	"iter"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/handle"
)

var (
	// ErrNoInput is returned when a view is created before SetInput.
	ErrNoInput = errors.New("flex(storage): view input not set")
	// ErrViewActive is returned when the input is changed or a second view
	// is created while a view holds a guard on the input.
	ErrViewActive = errors.New("flex(storage): view already created; clear it first")
)

// ViewStatus describes the guard a ViewStorage holds on its input.
type ViewStatus uint8

const (
	// ViewNone means no view has been created.
	ViewNone ViewStatus = iota
	// ViewReadable means the view holds a read guard on the input.
	ViewReadable
	// ViewWritable means the view holds a write guard on the input.
	ViewWritable
)

// String returns "none", "readable" or "writable".
func (s ViewStatus) String() string {
	switch s {
	case ViewNone:
		return "none"
	case ViewReadable:
		return "readable"
	case ViewWritable:
		return "writable"
	default:
		return fmt.Sprintf("ViewStatus(%d)", uint8(s))
	}
}

// ViewStorage presents a subset of another keyed storage. View key i maps
// to the i-th input key passed to CreateReadView or CreateWriteView.
//
// While a view exists it holds a guard on the input: a read view lets
// other readers in, a write view excludes everyone else until ClearView.
// Dropping the ViewStorage clears the view and releases the input.
//
// Without a view every accessor reports an empty storage.
type ViewStorage[K Key, I any] struct {
	typed[K, I]

	keys   []K
	input  *handle.Handle[KeyItem[K, I]]
	read   *handle.ReadGuard[KeyItem[K, I]]
	write  *handle.WriteGuard[MutKeyItem[K, I]]
	status ViewStatus
}

var (
	_ MutKeyItem[int, int] = (*ViewStorage[int, int])(nil)
	_ apis.Dropper         = (*ViewStorage[int, int])(nil)
)

// NewView returns a ViewStorage with no input.
func NewView[K Key, I any]() *ViewStorage[K, I] {
	return &ViewStorage[K, I]{}
}

// Status reports which guard, if any, the view holds on its input.
func (v *ViewStorage[K, I]) Status() ViewStatus { return v.status }

// SetInput replaces the input storage. The handle is cast to KeyItem[K, I]
// and the caller keeps ownership of in.
func (v *ViewStorage[K, I]) SetInput(in *handle.Handle[any]) error {
	if v.status != ViewNone {
		return ErrViewActive
	}
	h, err := handle.CastToCapability[KeyItem[K, I]](in)
	if err != nil {
		return fmt.Errorf("flex(storage): set view input: %w", err)
	}
	if v.input != nil {
		v.input.Release()
	}
	v.input = h
	return nil
}

// HasInput reports whether an input has been set.
func (v *ViewStorage[K, I]) HasInput() bool { return v.input != nil }

// CreateReadView takes a read guard on the input and maps the view onto
// keys. It does not wait for a busy input.
func (v *ViewStorage[K, I]) CreateReadView(keys iter.Seq[K]) error {
	if err := v.ready(); err != nil {
		return err
	}
	g, err := v.input.TryRead()
	if err != nil {
		return fmt.Errorf("flex(storage): create read view: %w", err)
	}
	v.read = g
	v.keys = collect(v.keys[:0], keys)
	v.status = ViewReadable
	return nil
}

// CreateWriteView takes a write guard on the input and maps the view onto
// keys. The input must support MutKeyItem[K, I].
func (v *ViewStorage[K, I]) CreateWriteView(keys iter.Seq[K]) error {
	if err := v.ready(); err != nil {
		return err
	}
	mut, err := handle.CastToCapability[MutKeyItem[K, I]](v.input)
	if err != nil {
		return fmt.Errorf("flex(storage): create write view: %w", err)
	}
	defer mut.Release()
	g, err := mut.TryWrite()
	if err != nil {
		return fmt.Errorf("flex(storage): create write view: %w", err)
	}
	v.write = g
	v.keys = collect(v.keys[:0], keys)
	v.status = ViewWritable
	return nil
}

// ready reports whether a new view can be created.
func (v *ViewStorage[K, I]) ready() error {
	if v.status != ViewNone {
		return ErrViewActive
	}
	if v.input == nil {
		return ErrNoInput
	}
	return nil
}

// ClearView forgets the view keys and releases the guard on the input.
func (v *ViewStorage[K, I]) ClearView() {
	if v.read != nil {
		v.read.Release()
		v.read = nil
	}
	if v.write != nil {
		v.write.Release()
		v.write = nil
	}
	v.keys = v.keys[:0]
	v.status = ViewNone
}

// Drop implements apis.Dropper.
func (v *ViewStorage[K, I]) Drop() {
	v.ClearView()
	if v.input != nil {
		v.input.Release()
		v.input = nil
	}
}

// source returns the input as seen through the held guard.
func (v *ViewStorage[K, I]) source() (KeyItem[K, I], bool) {
	switch v.status {
	case ViewReadable:
		return v.read.View(), true
	case ViewWritable:
		return v.write.View(), true
	default:
		return nil, false
	}
}

// inputKey maps a view key to an input key.
func (v *ViewStorage[K, I]) inputKey(k K) (K, bool) {
	i, ok := index(k)
	if !ok || i >= len(v.keys) {
		return 0, false
	}
	return v.keys[i], true
}

// Len returns the number of view keys.
func (v *ViewStorage[K, I]) Len() int { return len(v.keys) }

// Clear is ClearView.
func (v *ViewStorage[K, I]) Clear() { v.ClearView() }

// Contains reports whether view key k maps to an input key holding an item.
func (v *ViewStorage[K, I]) Contains(k K) bool {
	src, ok := v.source()
	if !ok {
		return false
	}
	ik, ok := v.inputKey(k)
	return ok && src.Contains(ik)
}

// Keys yields the view keys, 0 through Len()-1.
func (v *ViewStorage[K, I]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range v.keys {
			if !yield(K(i)) {
				return
			}
		}
	}
}

// Get returns the input item behind view key k.
func (v *ViewStorage[K, I]) Get(k K) (I, bool) {
	var zero I
	src, ok := v.source()
	if !ok {
		return zero, false
	}
	ik, ok := v.inputKey(k)
	if !ok {
		return zero, false
	}
	return src.Get(ik)
}

// All yields view keys with their input items, stopping at the first view
// key whose input key is missing.
func (v *ViewStorage[K, I]) All() iter.Seq2[K, I] {
	return func(yield func(K, I) bool) {
		src, ok := v.source()
		if !ok {
			return
		}
		for i, ik := range v.keys {
			item, ok := src.Get(ik)
			if !ok || !yield(K(i), item) {
				return
			}
		}
	}
}

// Items yields the input items in view key order.
func (v *ViewStorage[K, I]) Items() iter.Seq[I] {
	return func(yield func(I) bool) {
		for _, item := range v.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// Ref returns a pointer into the input. It requires a write view.
func (v *ViewStorage[K, I]) Ref(k K) (*I, bool) {
	if v.status != ViewWritable {
		return nil, false
	}
	ik, ok := v.inputKey(k)
	if !ok {
		return nil, false
	}
	return v.write.View().Ref(ik)
}

// Insert overwrites the input item behind view key k. It requires a write
// view and a key that is already part of the view.
func (v *ViewStorage[K, I]) Insert(k K, item I) bool {
	p, ok := v.Ref(k)
	if !ok {
		return false
	}
	*p = item
	return true
}

func collect[K any](dst []K, seq iter.Seq[K]) []K {
	if seq == nil {
		return dst
	}
	for k := range seq {
		dst = append(dst, k)
	}
	return dst
}
