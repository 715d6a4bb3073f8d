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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
	flexregistry "dirpx.dev/flex/registry"
	"dirpx.dev/flex/strategy"
)

// Local test types.
type Lener interface{ Len() int }

type A struct{ items []int }

func (a *A) Len() int { return len(a.items) }

type B struct{}

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	conf := config.DefaultConfig()
	reg := flexregistry.New(conf)
	require.NoError(t, flexregistry.Implement[A, Lener](reg))

	s := strategy.NewRegistryStrategy(reg)

	for _, tt := range []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[*A]()} {
		build, ok := s.TryResolve(tt, reflect.TypeFor[Lener](), conf)
		require.True(t, ok, tt.String())
		assert.Equal(t, 2, build(&A{items: []int{1, 2}}).(Lener).Len())
	}

	assert.True(t, s.Knows(reflect.TypeFor[A](), conf))

	// Unknown type -> miss.
	_, ok := s.TryResolve(reflect.TypeFor[B](), reflect.TypeFor[Lener](), conf)
	assert.False(t, ok)
	assert.False(t, s.Knows(reflect.TypeFor[B](), conf))
}

func TestRegistryStrategy_NilInputs(t *testing.T) {
	conf := config.DefaultConfig()

	s := strategy.NewRegistryStrategy(nil)
	_, ok := s.TryResolve(reflect.TypeFor[A](), reflect.TypeFor[Lener](), conf)
	assert.False(t, ok)
	assert.False(t, s.Knows(reflect.TypeFor[A](), conf))

	s = strategy.NewRegistryStrategy(flexregistry.New(conf))
	_, ok = s.TryResolve(nil, reflect.TypeFor[Lener](), conf)
	assert.False(t, ok)
	_, ok = s.TryResolve(reflect.TypeFor[A](), nil, conf)
	assert.False(t, ok)
}

func TestRegistryStrategy_Concurrent(t *testing.T) {
	conf := config.DefaultConfig()
	reg := flexregistry.New(conf)
	require.NoError(t, flexregistry.Implement[A, Lener](reg))
	s := strategy.NewRegistryStrategy(reg)

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if _, ok := s.TryResolve(reflect.TypeFor[A](), reflect.TypeFor[Lener](), conf); !ok {
					t.Errorf("resolve miss")
					return
				}
			}
		}()
	}
	wg.Wait()
}

var _ apis.Strategy = strategy.NewRegistryStrategy(nil)
