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

package handle

import (
	"fmt"
	"sync/atomic"

	"dirpx.dev/flex/cell"
)

// ReadGuard holds a shared lock on a cell and exposes the handle's view.
// Several read guards on one cell may coexist. A read guard keeps the cell
// alive even after every handle over it has been released.
//
// Read guards are a promise not to mutate: capabilities that mutate are
// exposed through their Mut variants, which callers should only use under
// a WriteGuard.
type ReadGuard[V any] struct {
	cell     *cell.Cell
	view     V
	released atomic.Bool
}

// WriteGuard holds the exclusive lock on a cell.
type WriteGuard[V any] struct {
	cell     *cell.Cell
	view     V
	released atomic.Bool
}

// Read blocks until a shared lock is held.
func (h *Handle[V]) Read() *ReadGuard[V] {
	c := h.live()
	c.Retain()
	c.RLock()
	return &ReadGuard[V]{cell: c, view: h.view}
}

// TryRead acquires a shared lock without blocking. It returns
// ErrLockUnavailable while a writer holds or waits for the lock.
func (h *Handle[V]) TryRead() (*ReadGuard[V], error) {
	c := h.live()
	c.Retain()
	if !c.TryRLock() {
		c.Release()
		return nil, fmt.Errorf("%w: read %s", ErrLockUnavailable, h)
	}
	return &ReadGuard[V]{cell: c, view: h.view}, nil
}

// Write blocks until the exclusive lock is held.
func (h *Handle[V]) Write() *WriteGuard[V] {
	c := h.live()
	c.Retain()
	c.Lock()
	return &WriteGuard[V]{cell: c, view: h.view}
}

// TryWrite acquires the exclusive lock without blocking.
func (h *Handle[V]) TryWrite() (*WriteGuard[V], error) {
	c := h.live()
	c.Retain()
	if !c.TryLock() {
		c.Release()
		return nil, fmt.Errorf("%w: write %s", ErrLockUnavailable, h)
	}
	return &WriteGuard[V]{cell: c, view: h.view}, nil
}

// View runs fn under a read guard. The guard is released when fn returns or panics.
func (h *Handle[V]) View(fn func(V) error) error {
	g := h.Read()
	defer g.Release()
	return fn(g.View())
}

// Update runs fn under a write guard. The guard is released when fn returns or panics.
func (h *Handle[V]) Update(fn func(V) error) error {
	g := h.Write()
	defer g.Release()
	return fn(g.View())
}

// TryView is View without blocking.
func (h *Handle[V]) TryView(fn func(V) error) error {
	g, err := h.TryRead()
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(g.View())
}

// TryUpdate is Update without blocking.
func (h *Handle[V]) TryUpdate(fn func(V) error) error {
	g, err := h.TryWrite()
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(g.View())
}

// View returns the guarded view. It panics once the guard is released.
func (g *ReadGuard[V]) View() V {
	if g.released.Load() {
		panic(fmt.Errorf("%w: read guard on cell %s", ErrGuardReleased, g.cell.ID()))
	}
	return g.view
}

// Release unlocks and drops the guard's reference. It is idempotent.
func (g *ReadGuard[V]) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	g.cell.RUnlock()
	g.cell.Release()
}

// View returns the guarded view. It panics once the guard is released.
func (g *WriteGuard[V]) View() V {
	if g.released.Load() {
		panic(fmt.Errorf("%w: write guard on cell %s", ErrGuardReleased, g.cell.ID()))
	}
	return g.view
}

// Release unlocks and drops the guard's reference. It is idempotent.
func (g *WriteGuard[V]) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	g.cell.Unlock()
	g.cell.Release()
}
