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

package cell_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/cell"
)

type payload struct {
	n       int
	dropped *atomic.Int32
}

func (p *payload) Drop() {
	if p.dropped != nil {
		p.dropped.Add(1)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := cell.New(nil)
	assert.ErrorIs(t, err, cell.ErrNilValue)

	_, err = cell.New((*payload)(nil))
	assert.ErrorIs(t, err, cell.ErrNilValue)

	_, err = cell.New(payload{})
	assert.ErrorIs(t, err, cell.ErrNotPointer)

	n := 3
	pn := &n
	_, err = cell.New(&pn)
	assert.ErrorIs(t, err, cell.ErrNotPointer)

	_, err = cell.New(&struct{ A int }{})
	assert.ErrorIs(t, err, cell.ErrNotPointer)
}

func TestNew_Identity(t *testing.T) {
	p := &payload{n: 1}
	c, err := cell.New(p)
	require.NoError(t, err)

	assert.Equal(t, "cell_test.payload", c.EntityName())
	assert.Equal(t, c.ID().String(), c.EntityID())
	assert.Equal(t, uuid.Version(7), c.ID().Version())
	assert.Equal(t, int64(1), c.Refs())
	assert.Same(t, p, c.Value())

	other, err := cell.New(&payload{})
	require.NoError(t, err)
	assert.NotEqual(t, c.ID(), other.ID())
}

func TestRelease_DropsExactlyOnce(t *testing.T) {
	var drops atomic.Int32
	var hooks atomic.Int32
	c, err := cell.New(&payload{dropped: &drops}, cell.WithOnDrop(func() { hooks.Add(1) }))
	require.NoError(t, err)

	const k = 16
	for i := 0; i < k; i++ {
		c.Retain()
	}
	require.Equal(t, int64(k+1), c.Refs())

	var wg sync.WaitGroup
	var droppedBy atomic.Int32
	for i := 0; i < k+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Release() {
				droppedBy.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), drops.Load())
	assert.Equal(t, int32(1), hooks.Load())
	assert.Equal(t, int32(1), droppedBy.Load())
	assert.True(t, c.Dropped())
	assert.Nil(t, c.Value())
}

func TestRetain_AfterDropPanics(t *testing.T) {
	c, err := cell.New(&payload{})
	require.NoError(t, err)
	require.True(t, c.Release())

	assert.PanicsWithError(t, "flex(cell): cell already dropped: cell_test.payload "+c.ID().String(), c.Retain)
	assert.Panics(t, func() { c.Release() })
}

func TestDrop_WaitsForReaders(t *testing.T) {
	var drops atomic.Int32
	c, err := cell.New(&payload{dropped: &drops})
	require.NoError(t, err)

	c.RLock()
	done := make(chan struct{})
	go func() {
		c.Release()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("drop must wait for the read lock to be released")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Zero(t, drops.Load())

	c.RUnlock()
	<-done
	assert.Equal(t, int32(1), drops.Load())
}

func TestTryLocks(t *testing.T) {
	c, err := cell.New(&payload{})
	require.NoError(t, err)

	require.True(t, c.TryRLock())
	require.True(t, c.TryRLock(), "readers share")
	assert.False(t, c.TryLock(), "writer excluded by readers")
	c.RUnlock()
	c.RUnlock()

	require.True(t, c.TryLock())
	assert.False(t, c.TryRLock(), "reader excluded by writer")
	assert.False(t, c.TryLock())
	c.Unlock()
}
