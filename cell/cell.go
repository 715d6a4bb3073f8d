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

// Package cell implements the shared cell: the single physical owner of a
// storage instance, reference counted and protected by a reader/writer lock.
//
// A Cell never interprets the instance it owns. Handles (package handle)
// build views over it and guards hold its lock while those views are used.
//
// Lock policy is sync.RWMutex's: once a writer is blocked in Lock, new
// readers block until that writer has acquired and released the lock, so a
// waiting writer is never starved by a steady stream of readers.
package cell

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
	uref "dirpx.dev/flex/utils/reflect"
)

var (
	// ErrNilValue is returned when a nil pointer is wrapped.
	ErrNilValue = errors.New("flex(cell): nil value")
	// ErrNotPointer is returned when the wrapped value is not a pointer to a named type.
	ErrNotPointer = errors.New("flex(cell): value must be a pointer to a named type")
	// ErrDropped is the panic value when a dropped cell is retained again.
	ErrDropped = errors.New("flex(cell): cell already dropped")
)

// Option customizes a Cell.
type Option func(*Cell)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(l apis.Logger) Option {
	return func(c *Cell) {
		c.log = apis.OrNop(l)
	}
}

// WithOnDrop registers fn to run once, after the instance has been dropped.
func WithOnDrop(fn func()) Option {
	return func(c *Cell) {
		if fn != nil {
			c.onDrop = append(c.onDrop, fn)
		}
	}
}

// Cell owns exactly one storage instance.
type Cell struct {
	id   uuid.UUID
	typ  reflect.Type
	name string

	mu    sync.RWMutex
	value any // *T; nil once dropped

	refs    atomic.Int64
	dropped atomic.Bool

	onDrop []func()
	log    apis.Logger
}

// Ensure Cell implements apis.Identifier.
var _ apis.Identifier = (*Cell)(nil)

// New takes ownership of ptr, which must be a non-nil pointer to a named
// type. The returned cell holds one reference on behalf of the caller.
func New(ptr any, opts ...Option) (*Cell, error) {
	if ptr == nil {
		return nil, ErrNilValue
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("%w: got %s", ErrNotPointer, uref.Name(rv.Type()))
	}
	if rv.IsNil() {
		return nil, ErrNilValue
	}
	t, err := uref.Concrete(rv.Type().Elem(), config.NewConfig(config.WithMaxUnwrap(1)))
	if err != nil || t != rv.Type().Elem() {
		return nil, fmt.Errorf("%w: got %s", ErrNotPointer, uref.Name(rv.Type()))
	}

	c := &Cell{
		id:    newID(),
		typ:   t,
		name:  uref.Name(t),
		value: ptr,
		log:   apis.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refs.Store(1)
	c.log.Debug("cell created", "cell", c.id, "type", c.name)
	return c, nil
}

// newID returns a time-ordered UUIDv7, falling back to a random v4.
func newID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}

// ID returns the cell's identity.
func (c *Cell) ID() uuid.UUID { return c.id }

// Type returns the owned concrete type T (not *T).
func (c *Cell) Type() reflect.Type { return c.typ }

// EntityName returns the short name of the owned concrete type.
func (c *Cell) EntityName() string { return c.name }

// EntityID returns the cell's identity as a string.
func (c *Cell) EntityID() string { return c.id.String() }

// Value returns the owned *T as any, or nil once dropped.
// Callers may build views from it but must hold the lock to dereference it.
func (c *Cell) Value() any { return c.value }

// Refs returns the current reference count.
func (c *Cell) Refs() int64 { return c.refs.Load() }

// Dropped reports whether the instance has been released.
func (c *Cell) Dropped() bool { return c.dropped.Load() }

// Retain adds a reference. It panics with ErrDropped if the count had
// already reached zero: references can only be derived from live ones.
func (c *Cell) Retain() {
	for {
		n := c.refs.Load()
		if n <= 0 {
			panic(fmt.Errorf("%w: %s %s", ErrDropped, c.name, c.id))
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return
		}
	}
}

// Release drops a reference and reports whether this call dropped the instance.
// The drop waits for the write lock, so it never overlaps an active guard.
func (c *Cell) Release() bool {
	n := c.refs.Add(-1)
	if n > 0 {
		return false
	}
	if n < 0 {
		panic(fmt.Errorf("%w: %s %s released more often than retained", ErrDropped, c.name, c.id))
	}
	if !c.dropped.CompareAndSwap(false, true) {
		return false
	}
	c.drop()
	return true
}

func (c *Cell) drop() {
	c.mu.Lock()
	if d, ok := c.value.(apis.Dropper); ok {
		d.Drop()
	}
	c.value = nil
	c.mu.Unlock()

	for _, fn := range c.onDrop {
		fn()
	}
	c.log.Debug("cell dropped", "cell", c.id, "type", c.name)
}

// RLock blocks until a read lock is held.
func (c *Cell) RLock() { c.mu.RLock() }

// RUnlock releases a read lock.
func (c *Cell) RUnlock() { c.mu.RUnlock() }

// Lock blocks until the write lock is held.
func (c *Cell) Lock() { c.mu.Lock() }

// Unlock releases the write lock.
func (c *Cell) Unlock() { c.mu.Unlock() }

// TryRLock acquires a read lock without waiting and reports success.
func (c *Cell) TryRLock() bool { return c.mu.TryRLock() }

// TryLock acquires the write lock without waiting and reports success.
func (c *Cell) TryLock() bool { return c.mu.TryLock() }
