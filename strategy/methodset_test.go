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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/config"
	"dirpx.dev/flex/strategy"
)

func TestMethodSetStrategy_OptIn(t *testing.T) {
	s := strategy.NewMethodSetStrategy()

	off := config.DefaultConfig()
	_, ok := s.TryResolve(reflect.TypeFor[A](), reflect.TypeFor[Lener](), off)
	assert.False(t, ok, "disabled by default")
	assert.False(t, s.Knows(reflect.TypeFor[A](), off))

	on := config.NewConfig(config.WithAutoImplement(true))
	build, ok := s.TryResolve(reflect.TypeFor[A](), reflect.TypeFor[Lener](), on)
	require.True(t, ok)

	a := &A{items: []int{1, 2, 3}}
	assert.Same(t, a, build(a), "view is the pointer itself")
	assert.True(t, s.Knows(reflect.TypeFor[B](), on))

	_, ok = s.TryResolve(reflect.TypeFor[B](), reflect.TypeFor[Lener](), on)
	assert.False(t, ok)
	_, ok = s.TryResolve(reflect.TypeFor[A](), reflect.TypeFor[B](), on)
	assert.False(t, ok, "non-interface capability")
}
