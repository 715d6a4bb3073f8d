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

package registry

import (
	"fmt"
	"reflect"

	"dirpx.dev/flex/apis"
	uref "dirpx.dev/flex/utils/reflect"
)

// Provide registers build as the way to present *T as capability C.
// The compiler checks build's shape, so the descriptor cannot disagree
// with the capability it is filed under.
func Provide[T any, C any](reg apis.Registry, build func(*T) C) error {
	if build == nil {
		return ErrNilBuilder
	}
	return reg.Register(reflect.TypeFor[T](), reflect.TypeFor[C](), func(p any) any {
		return build(p.(*T))
	})
}

// Implement registers *T as capability C directly, after checking at
// registration time that *T's method set satisfies C.
func Implement[T any, C any](reg apis.Registry) error {
	if _, ok := any((*T)(nil)).(C); !ok {
		return fmt.Errorf("%w: %s as %s", ErrNotImplemented,
			uref.Name(reflect.TypeFor[*T]()), uref.Name(reflect.TypeFor[C]()))
	}
	return reg.Register(reflect.TypeFor[T](), reflect.TypeFor[C](), func(p any) any {
		return p.(*T)
	})
}

// DeclareType marks T as known to reg.
func DeclareType[T any](reg apis.Registry) error {
	return reg.Declare(reflect.TypeFor[T]())
}

// Supports reports whether reg has a descriptor presenting T as C.
func Supports[T any, C any](reg apis.Registry) bool {
	return reg.Supports(reflect.TypeFor[T](), reflect.TypeFor[C]())
}
