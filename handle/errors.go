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
	"errors"
	"fmt"
	"reflect"

	uref "dirpx.dev/flex/utils/reflect"
)

var (
	// ErrUnsupportedCapability is wrapped by CastError when the underlying
	// concrete type does not support the requested capability.
	ErrUnsupportedCapability = errors.New("flex(handle): unsupported capability")
	// ErrTypeMismatch is wrapped by CastError when a narrowing cast names a
	// type other than the exact underlying concrete type.
	ErrTypeMismatch = errors.New("flex(handle): concrete type mismatch")
	// ErrLockUnavailable is returned by try-acquisitions on a contended lock.
	ErrLockUnavailable = errors.New("flex(handle): lock unavailable")

	// ErrUnregisteredType is the panic value when a capability cast is attempted
	// on a concrete type the resolver does not know under Config.StrictTypes.
	ErrUnregisteredType = errors.New("flex(handle): concrete type was never registered")
	// ErrDispatchShape is the panic value when a dispatch builder returns a
	// value that does not implement the capability it was resolved for.
	ErrDispatchShape = errors.New("flex(handle): dispatch builder produced a value of the wrong shape")
	// ErrHandleReleased is the panic value when a released handle is used.
	ErrHandleReleased = errors.New("flex(handle): handle already released")
	// ErrGuardReleased is the panic value when a released guard is used.
	ErrGuardReleased = errors.New("flex(handle): guard already released")
)

// CastError describes a failed cast. It wraps ErrUnsupportedCapability or
// ErrTypeMismatch, so callers match it with errors.Is.
type CastError struct {
	// Kind is the sentinel describing the failure.
	Kind error
	// Requested is the capability or concrete type asked for.
	Requested reflect.Type
	// Underlying is the concrete type owned by the cell.
	Underlying reflect.Type
	// View is the view tag of the handle the cast started from.
	View reflect.Type
}

// Error implements error.
func (e *CastError) Error() string {
	return fmt.Sprintf("%v: requested %s, underlying %s (viewed as %s)",
		e.Kind, uref.Name(e.Requested), uref.Name(e.Underlying), uref.Name(e.View))
}

// Unwrap returns Kind.
func (e *CastError) Unwrap() error { return e.Kind }
