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

package apis

import "reflect"

// DispatchBuilder turns a pointer to a concrete storage instance into a value
// of one capability interface over that same instance. It must not copy the
// instance, must not read its data and must return a value implementing the
// capability it was registered for.
type DispatchBuilder func(ptr any) any

// Registry is the capability descriptor registry: the single source of truth
// for which capabilities a concrete type supports.
// Keep it minimal so implementations can be lock-free on reads.
type Registry interface {
	// Register associates concrete type t with capability c and the builder
	// producing a c-shaped view over *t. Re-registering an existing pair
	// never overwrites it; whether it errors depends on Config.DuplicatePolicy.
	Register(t, c reflect.Type, build DispatchBuilder) error
	// Declare marks t as a known concrete type even if it supports nothing.
	Declare(t reflect.Type) error
	// Lookup returns the builder for (t, c) if present.
	Lookup(t, c reflect.Type) (build DispatchBuilder, ok bool)
	// Supports reports whether (t, c) has a descriptor.
	Supports(t, c reflect.Type) bool
	// Known reports whether t was declared or has at least one descriptor.
	Known(t reflect.Type) bool
	// Capabilities returns the capabilities registered for t, sorted by name.
	Capabilities(t reflect.Type) []reflect.Type
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Types returns every known concrete type, declared or registered
	// (order is unspecified).
	Types() []reflect.Type
	// Count returns the number of registered descriptors.
	Count() int
	// Reset clears all descriptors and declarations.
	Reset()
}

// Entry is a single capability descriptor in a Registry snapshot.
type Entry struct {
	// Type is the normalized concrete type.
	Type reflect.Type
	// Capability is the capability interface type.
	Capability reflect.Type
	// Build produces the capability view over a *Type.
	Build DispatchBuilder
}
