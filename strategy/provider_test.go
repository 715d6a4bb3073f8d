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

// Firster is a capability served through a provider adapter.
type Firster interface{ First() (int, bool) }

// described answers capability queries itself.
type described struct{ items []int }

type describedFirst struct{ d *described }

func (f describedFirst) First() (int, bool) {
	if len(f.d.items) == 0 {
		return 0, false
	}
	return f.d.items[0], true
}

func (d *described) Len() int { return len(d.items) }

func (d *described) ProvideCapability(c reflect.Type) (any, bool) {
	switch c {
	case reflect.TypeFor[Lener]():
		return d, true
	case reflect.TypeFor[Firster]():
		return describedFirst{d: d}, true
	}
	return nil, false
}

// lying claims a capability but returns a value that does not implement it.
type lying struct{}

func (*lying) ProvideCapability(reflect.Type) (any, bool) { return 42, true }

func TestProviderStrategy(t *testing.T) {
	conf := config.DefaultConfig()
	s := strategy.NewProviderStrategy()

	require.True(t, s.Knows(reflect.TypeFor[described](), conf))
	assert.False(t, s.Knows(reflect.TypeFor[A](), conf))

	build, ok := s.TryResolve(reflect.TypeFor[described](), reflect.TypeFor[Firster](), conf)
	require.True(t, ok)

	d := &described{items: []int{9, 8}}
	first, ok := build(d).(Firster).First()
	require.True(t, ok)
	assert.Equal(t, 9, first)

	build, ok = s.TryResolve(reflect.TypeFor[described](), reflect.TypeFor[Lener](), conf)
	require.True(t, ok)
	assert.Equal(t, 2, build(d).(Lener).Len())

	_, ok = s.TryResolve(reflect.TypeFor[described](), reflect.TypeFor[Sizer](), conf)
	assert.False(t, ok)
}

type Sizer interface{ Size() int }

func TestProviderStrategy_RejectsMisshapenAnswers(t *testing.T) {
	s := strategy.NewProviderStrategy()
	_, ok := s.TryResolve(reflect.TypeFor[lying](), reflect.TypeFor[Lener](), config.DefaultConfig())
	assert.False(t, ok)
}

func TestProviderStrategy_Disabled(t *testing.T) {
	conf := config.NewConfig(config.WithSelfDescribed(false))
	s := strategy.NewProviderStrategy()

	assert.False(t, s.Knows(reflect.TypeFor[described](), conf))
	_, ok := s.TryResolve(reflect.TypeFor[described](), reflect.TypeFor[Lener](), conf)
	assert.False(t, ok)
}
