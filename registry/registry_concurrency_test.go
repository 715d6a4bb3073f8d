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

package registry_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
	"dirpx.dev/flex/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}), reflect.TypeOf(T5{}),
		reflect.TypeOf(T6{}), reflect.TypeOf(T7{}), reflect.TypeOf(T8{}),
		reflect.TypeOf(T9{}),
	}
	capability := reflect.TypeFor[any]()

	// Register once (sequential) to establish baseline.
	for _, tt := range types {
		require.NoError(t, reg.Register(tt, capability, identity))
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	var accepted atomic.Int64

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				tt := types[i%len(types)]
				if !reg.Supports(tt, capability) {
					t.Errorf("lookup failed for %v", tt)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (duplicates must all be rejected)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(types)
				err := reg.Register(types[j], capability, identity)
				if err == nil {
					accepted.Add(1)
				} else if !errors.Is(err, registry.ErrDuplicateRegistration) {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(w)
	}

	wg.Wait()

	assert.Zero(t, accepted.Load(), "no duplicate may be accepted")
	assert.Equal(t, len(types), reg.Count())
	assert.Len(t, reg.Entries(), len(types))
}

// TestConcurrentFirstRegistrationWins races many registrations of one fresh
// pair: exactly one must succeed under DuplicateReject.
func TestConcurrentFirstRegistrationWins(t *testing.T) {
	reg := registry.New(config.NewConfig(config.WithDuplicatePolicy(apis.DuplicateReject)))

	var wg sync.WaitGroup
	var wins atomic.Int64
	start := make(chan struct{})
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if reg.Register(reflect.TypeFor[T0](), reflect.TypeFor[Counter](), identity) == nil {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), wins.Load())
	assert.Equal(t, 1, reg.Count())
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
