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

package reflect_test

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/config"
	uref "dirpx.dev/flex/utils/reflect"
)

type plain struct{}

type generic[T any] struct{ v T }

type reader interface{ Read() int }

func TestConcrete_UnwrapsPointers(t *testing.T) {
	cfg := config.DefaultConfig()
	want := reflect.TypeFor[plain]()

	for _, in := range []reflect.Type{
		reflect.TypeFor[plain](),
		reflect.TypeFor[*plain](),
		reflect.TypeFor[**plain](),
	} {
		got, err := uref.Concrete(in, cfg)
		require.NoError(t, err, in.String())
		assert.Equal(t, want, got)
	}
}

func TestConcrete_MaxUnwrap(t *testing.T) {
	cfg := config.NewConfig(config.WithMaxUnwrap(1))

	_, err := uref.Concrete(reflect.TypeFor[**plain](), cfg)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	got, err := uref.Concrete(reflect.TypeFor[*plain](), cfg)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[plain](), got)
}

func TestConcrete_Rejects(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := uref.Concrete(nil, cfg)
	assert.ErrorIs(t, err, uref.ErrReflectNilType)

	_, err = uref.Concrete(reflect.TypeFor[struct{ A int }](), cfg)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	_, err = uref.Concrete(reflect.TypeFor[[]plain](), cfg)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	_, err = uref.Concrete(reflect.TypeFor[reader](), cfg)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)
}

func TestConcrete_GenericInstantiationsAreDistinct(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := uref.Concrete(reflect.TypeFor[generic[int]](), cfg)
	require.NoError(t, err)
	b, err := uref.Concrete(reflect.TypeFor[generic[string]](), cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCapability(t *testing.T) {
	c, err := uref.Capability(reflect.TypeFor[io.Reader]())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[io.Reader](), c)

	_, err = uref.Capability(reflect.TypeFor[plain]())
	assert.ErrorIs(t, err, uref.ErrReflectNotInterface)

	_, err = uref.Capability(nil)
	assert.ErrorIs(t, err, uref.ErrReflectNilType)
}

func TestName(t *testing.T) {
	assert.Equal(t, "reflect_test.plain", uref.Name(reflect.TypeFor[plain]()))
	assert.Equal(t, "*reflect_test.plain", uref.Name(reflect.TypeFor[*plain]()))
	assert.Equal(t, "io.Reader", uref.Name(reflect.TypeFor[io.Reader]()))
	assert.Equal(t, "int", uref.Name(reflect.TypeFor[int]()))
	assert.Equal(t, "<nil>", uref.Name(nil))
	assert.Equal(t, "reflect_test.generic[int]", uref.Name(reflect.TypeFor[generic[int]]()))
}
