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

package storage_test

import (
	"maps"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/cell"
	"dirpx.dev/flex/handle"
	"dirpx.dev/flex/storage"
)

func TestViewStorage_ReadView(t *testing.T) {
	env := newEnv(t)
	in, err := handle.Wrap(storage.NewVec[int, int](10, 11, 12, 13), env)
	require.NoError(t, err)
	defer in.Release()

	v := storage.NewView[int, int]()
	assert.ErrorIs(t, v.CreateReadView(slices.Values([]int{0})), storage.ErrNoInput)
	assert.Equal(t, 0, v.Len())
	_, ok := v.Get(0)
	assert.False(t, ok)

	root := handle.Erase(in)
	require.NoError(t, v.SetInput(root))
	root.Release()

	require.NoError(t, v.CreateReadView(slices.Values([]int{3, 1, 9})))
	assert.Equal(t, storage.ViewReadable, v.Status())
	assert.Equal(t, 3, v.Len())

	got, ok := v.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 13, got)
	got, _ = v.Get(1)
	assert.Equal(t, 11, got)
	assert.False(t, v.Contains(2))
	assert.False(t, v.Contains(3))
	assert.Equal(t, []int{0, 1, 2}, slices.Collect(v.Keys()))
	assert.Equal(t, map[int]int{0: 13, 1: 11}, maps.Collect(v.All()))
	assert.Equal(t, []int{13, 11}, slices.Collect(v.Items()))
	assert.False(t, v.Insert(0, 99))

	// The read view holds a read guard: readers pass, writers wait.
	g, err := in.TryRead()
	require.NoError(t, err)
	g.Release()
	_, err = in.TryWrite()
	assert.ErrorIs(t, err, handle.ErrLockUnavailable)

	assert.ErrorIs(t, v.CreateWriteView(slices.Values([]int{0})), storage.ErrViewActive)
	again := handle.Erase(in)
	assert.ErrorIs(t, v.SetInput(again), storage.ErrViewActive)
	again.Release()

	v.ClearView()
	assert.Equal(t, storage.ViewNone, v.Status())
	w, err := in.TryWrite()
	require.NoError(t, err)
	w.Release()

	v.Drop()
	assert.False(t, v.HasInput())
	assert.Equal(t, int64(1), in.Refs())
}

func TestViewStorage_WriteView(t *testing.T) {
	env := newEnv(t)
	in, err := handle.Wrap(storage.NewVec[int, int](1, 2, 3), env)
	require.NoError(t, err)
	defer in.Release()

	view, err := handle.Wrap(storage.NewView[int, int](), env)
	require.NoError(t, err)

	root := handle.Erase(in)
	defer root.Release()
	require.NoError(t, view.Update(func(v *storage.ViewStorage[int, int]) error {
		if err := v.SetInput(root); err != nil {
			return err
		}
		return v.CreateWriteView(slices.Values([]int{2, 0}))
	}))

	_, err = in.TryRead()
	assert.ErrorIs(t, err, handle.ErrLockUnavailable)

	mut := handle.MustCastToCapability[storage.MutKeyItem[int, int]](view)
	require.NoError(t, mut.Update(func(s storage.MutKeyItem[int, int]) error {
		assert.True(t, s.Insert(0, 30))
		p, ok := s.Ref(1)
		require.True(t, ok)
		*p = 10
		assert.False(t, s.Insert(2, 0))
		return nil
	}))
	mut.Release()

	// Releasing the last handle over the view drops it, which releases the input.
	view.Release()
	require.NoError(t, in.View(func(v *storage.VecStorage[int, int]) error {
		assert.Equal(t, []int{10, 2, 30}, v.Slice())
		return nil
	}))
	assert.Equal(t, int64(2), in.Refs())
}

func TestViewStorage_WriteViewNeedsMutableInput(t *testing.T) {
	env := newEnv(t)
	in, err := handle.Wrap(storage.NewVal[int, int](5), env)
	require.NoError(t, err)
	defer in.Release()

	v := storage.NewView[int, int]()
	defer v.Drop()
	root := handle.Erase(in)
	defer root.Release()
	require.NoError(t, v.SetInput(root))

	err = v.CreateWriteView(slices.Values([]int{0}))
	assert.ErrorIs(t, err, handle.ErrUnsupportedCapability)
	assert.Equal(t, storage.ViewNone, v.Status())

	require.NoError(t, v.CreateReadView(slices.Values([]int{0})))
	got, _ := v.Get(0)
	assert.Equal(t, 5, got)
}

func TestViewStorage_InputOutlivesCallerHandles(t *testing.T) {
	env := newEnv(t)
	var dropped atomic.Bool
	in, err := handle.Wrap(storage.NewVec[int, int](4), env, cell.WithOnDrop(func() { dropped.Store(true) }))
	require.NoError(t, err)

	v := storage.NewView[int, int]()
	root := handle.Erase(in)
	require.NoError(t, v.SetInput(root))
	root.Release()
	in.Release()
	assert.False(t, dropped.Load())

	require.NoError(t, v.CreateReadView(slices.Values([]int{0})))
	got, _ := v.Get(0)
	assert.Equal(t, 4, got)

	v.Drop()
	assert.True(t, dropped.Load())
}
