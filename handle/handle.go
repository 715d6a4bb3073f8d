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

// Package handle implements storage handles, the cast engine and guards.
//
// A Handle[V] pairs a reference to a shared cell with a view: either the
// owned concrete type (V is *T) or a capability interface (V is the
// interface). Casting produces a new handle over the same cell with a
// different view; it consults the resolver only, never the lock or the data.
// Data is reached exclusively through guards.
//
//	h, _ := handle.Wrap(storage.NewVec[int, int](1, 2, 3), env)
//	defer h.Release()
//
//	seq, err := handle.CastToCapability[storage.ItemSlice[int]](h)
//	if err != nil {
//		return err
//	}
//	defer seq.Release()
//
//	err = seq.View(func(s storage.ItemSlice[int]) error {
//		fmt.Println(s.Slice())
//		return nil
//	})
//
// Handles are explicitly reference counted: every Wrap, Clone and cast
// result must be released. A handle that becomes unreachable without being
// released gives its reference back when the garbage collector reclaims it.
package handle

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/cell"
	uref "dirpx.dev/flex/utils/reflect"
)

// ErrNilEnv is returned by Wrap when no environment is supplied.
var ErrNilEnv = errors.New("flex(handle): nil environment")

// ViewKind tells whether a handle presents its cell as the concrete type or
// as a capability.
type ViewKind uint8

const (
	// Concrete views expose *T directly.
	Concrete ViewKind = iota
	// Capability views expose an interface built by a dispatch builder.
	Capability
)

// String returns "concrete" or "capability".
func (k ViewKind) String() string {
	switch k {
	case Concrete:
		return "concrete"
	case Capability:
		return "capability"
	default:
		return fmt.Sprintf("ViewKind(%d)", uint8(k))
	}
}

// Handle is a typed, shared reference to a storage instance.
type Handle[V any] struct {
	ref  *ref
	env  Env
	tag  reflect.Type
	kind ViewKind
	view V
}

// ref is the per-handle reference token. It is kept apart from Handle so
// that the GC cleanup can release it without keeping the handle alive.
type ref struct {
	cell     *cell.Cell
	released atomic.Bool
}

func (r *ref) release() bool {
	if !r.released.CompareAndSwap(false, true) {
		return false
	}
	r.cell.Release()
	return true
}

// Ensure Handle implements apis.Identifier.
var _ apis.Identifier = (*Handle[any])(nil)

// Wrap moves v into a new shared cell and returns the first handle over it,
// viewed as its concrete type. The caller owns that handle's reference.
func Wrap[T any](v *T, env Env, opts ...cell.Option) (*Handle[*T], error) {
	if env == nil {
		return nil, ErrNilEnv
	}
	opts = append([]cell.Option{cell.WithLogger(env.Logger())}, opts...)
	c, err := cell.New(v, opts...)
	if err != nil {
		return nil, err
	}
	return newHandle(c, env, c.Type(), Concrete, v), nil
}

// newHandle builds a handle that owns one already-acquired cell reference.
func newHandle[V any](c *cell.Cell, env Env, tag reflect.Type, kind ViewKind, view V) *Handle[V] {
	h := &Handle[V]{
		ref:  &ref{cell: c},
		env:  env,
		tag:  tag,
		kind: kind,
		view: view,
	}
	runtime.AddCleanup(h, func(r *ref) { r.release() }, h.ref)
	return h
}

// derive retains the cell of src and returns a new handle with the given view.
func derive[V, S any](src *Handle[S], tag reflect.Type, kind ViewKind, view V) *Handle[V] {
	c := src.ref.cell
	c.Retain()
	return newHandle(c, src.env, tag, kind, view)
}

// live panics if h has been released.
func (h *Handle[V]) live() *cell.Cell {
	if h.ref.released.Load() {
		panic(fmt.Errorf("%w: %s", ErrHandleReleased, h))
	}
	return h.ref.cell
}

// Clone returns a new handle with the same view over the same cell.
func (h *Handle[V]) Clone() *Handle[V] {
	h.live()
	return derive(h, h.tag, h.kind, h.view)
}

// Release gives up this handle's reference. It is idempotent; the instance
// is dropped when the last handle over the cell is released.
func (h *Handle[V]) Release() {
	h.ref.release()
}

// Released reports whether Release has been called.
func (h *Handle[V]) Released() bool { return h.ref.released.Load() }

// Tag returns the view tag: the concrete type for concrete views, the
// capability interface otherwise.
func (h *Handle[V]) Tag() reflect.Type { return h.tag }

// Kind returns the view kind.
func (h *Handle[V]) Kind() ViewKind { return h.kind }

// Underlying returns the concrete type owned by the cell.
func (h *Handle[V]) Underlying() reflect.Type { return h.ref.cell.Type() }

// CellID returns the identity of the shared cell.
func (h *Handle[V]) CellID() uuid.UUID { return h.ref.cell.ID() }

// EntityName returns the short name of the underlying concrete type.
func (h *Handle[V]) EntityName() string { return h.ref.cell.EntityName() }

// EntityID returns the cell identity; every handle over a cell shares it.
func (h *Handle[V]) EntityID() string { return h.ref.cell.EntityID() }

// Refs returns the number of live references to the cell, guards included.
func (h *Handle[V]) Refs() int64 { return h.ref.cell.Refs() }

// String describes the handle for logs.
func (h *Handle[V]) String() string {
	return fmt.Sprintf("handle(%s as %s, cell %s)", h.EntityName(), uref.Name(h.tag), h.EntityID())
}

// SameCell reports whether a and b reference the same shared cell.
func SameCell[A, B any](a *Handle[A], b *Handle[B]) bool {
	return a != nil && b != nil && a.ref.cell == b.ref.cell
}
