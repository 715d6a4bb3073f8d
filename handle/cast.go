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
	"reflect"

	uref "dirpx.dev/flex/utils/reflect"
)

// CastToCapability returns a new handle over the same cell viewed as
// capability C. The source handle stays valid. The cast never takes the
// cell's lock, so it succeeds even while a writer is active.
//
// A cast to a capability the underlying type does not support returns a
// *CastError wrapping ErrUnsupportedCapability. Under Config.StrictTypes a
// cast on a concrete type the resolver has never heard of panics with
// ErrUnregisteredType.
func CastToCapability[C, V any](h *Handle[V]) (*Handle[C], error) {
	c := h.live()
	capType := reflect.TypeFor[C]()
	env := h.env
	cfg := env.Config()
	res := env.Resolver()
	under := c.Type()

	// Every type supports the empty capability; see Erase.
	if capType.Kind() == reflect.Interface && capType.NumMethod() == 0 {
		return derive(h, capType, Capability, any(c.Value()).(C)), nil
	}
	if capType.Kind() == reflect.Interface && res != nil {
		if build, ok := res.Resolve(under, capType, cfg); ok {
			raw := build(c.Value())
			view, ok := raw.(C)
			if !ok {
				panic(fmt.Errorf("%w: %s as %s returned %T",
					ErrDispatchShape, uref.Name(under), uref.Name(capType), raw))
			}
			return derive(h, capType, Capability, view), nil
		}
	}

	if cfg.StrictTypes && (res == nil || !res.Known(under, cfg)) {
		panic(fmt.Errorf("%w: %s (cast to %s)", ErrUnregisteredType, uref.Name(under), uref.Name(capType)))
	}
	err := &CastError{Kind: ErrUnsupportedCapability, Requested: capType, Underlying: under, View: h.tag}
	env.Logger().Debug("capability cast rejected", "cell", c.ID(), "error", err)
	return nil, err
}

// CastToConcrete returns a new handle over the same cell viewed as *U. It
// succeeds only when U is exactly the underlying concrete type.
func CastToConcrete[U, V any](h *Handle[V]) (*Handle[*U], error) {
	c := h.live()
	want := reflect.TypeFor[U]()
	if want != c.Type() {
		err := &CastError{Kind: ErrTypeMismatch, Requested: want, Underlying: c.Type(), View: h.tag}
		h.env.Logger().Debug("concrete cast rejected", "cell", c.ID(), "error", err)
		return nil, err
	}
	p, ok := c.Value().(*U)
	if !ok {
		panic(fmt.Errorf("%w: cell of %s holds %T", ErrDispatchShape, uref.Name(want), c.Value()))
	}
	return derive(h, want, Concrete, p), nil
}

// MustCastToCapability is like CastToCapability but panics on failure.
func MustCastToCapability[C, V any](h *Handle[V]) *Handle[C] {
	out, err := CastToCapability[C](h)
	if err != nil {
		panic(err)
	}
	return out
}

// MustCastToConcrete is like CastToConcrete but panics on failure.
func MustCastToConcrete[U, V any](h *Handle[V]) *Handle[*U] {
	out, err := CastToConcrete[U](h)
	if err != nil {
		panic(err)
	}
	return out
}

// Erase returns a handle over the same cell viewed as any. Every concrete
// type supports the empty capability, so Erase never consults the resolver.
func Erase[V any](h *Handle[V]) *Handle[any] {
	c := h.live()
	return derive(h, reflect.TypeFor[any](), Capability, c.Value())
}
