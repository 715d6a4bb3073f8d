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

package reflect

import (
	"errors"
	"path"
	"reflect"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, slice literal type).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not a named concrete type")
	// ErrReflectNotInterface indicates that a capability type is not an interface.
	ErrReflectNotInterface = errors.New("reflect: capability type is not an interface")
)

// Concrete normalizes t to the concrete storage type it identifies.
//
// Unwrapping policy:
//   - ptr -> Elem(), at most cfg.MaxUnwrap times
//   - interface kinds are rejected (they are capabilities, not storage)
//   - the result must be named: t.Name() != ""
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Concrete(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer && i < maxUnwrap; i++ {
		t = t.Elem()
	}

	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface || t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	return t, nil
}

// Capability validates that c can act as a capability identity.
func Capability(c reflect.Type) (reflect.Type, error) {
	if c == nil {
		return nil, ErrReflectNilType
	}
	if c.Kind() != reflect.Interface {
		return nil, ErrReflectNotInterface
	}
	return c, nil
}

// Name returns a short diagnostic name "pkg.Type[Args]" for t.
// Type arguments are kept: they are part of capability identity.
// Builtin and unnamed types use reflect's own string form.
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		return "*" + Name(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return path.Base(t.PkgPath()) + "." + t.Name()
}
