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
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
	uref "dirpx.dev/flex/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("flex(registry): nil reflect.Type provided")
	// ErrNilBuilder is returned when a nil dispatch builder is provided.
	ErrNilBuilder = errors.New("flex(registry): nil dispatch builder provided")
	// ErrDuplicateRegistration indicates an attempt to re-register an
	// existing (type, capability) pair under DuplicateReject.
	ErrDuplicateRegistration = errors.New("flex(registry): duplicate capability registration")
	// ErrNotImplemented is returned by Implement when *T does not implement C.
	ErrNotImplemented = errors.New("flex(registry): type does not implement capability")
)

// Option customizes a registry built by New.
type Option func(*registry)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(l apis.Logger) Option {
	return func(r *registry) {
		r.log = apis.OrNop(l)
	}
}

// New constructs a Registry that normalizes types and applies the
// duplicate policy according to cfg.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	r := &registry{cfg: cfg, log: apis.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// key identifies one capability descriptor.
type key struct {
	t reflect.Type
	c reflect.Type
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for normalization and duplicate policy.
	cfg apis.Config
	// log receives registration diagnostics.
	log apis.Logger
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps key to apis.DispatchBuilder.
	m sync.Map // map[key]apis.DispatchBuilder
	// known maps declared or registered concrete types to struct{}.
	known sync.Map // map[reflect.Type]struct{}
	// count tracks the number of registered descriptors.
	count int
}

// Register associates concrete type t with capability c.
// The first descriptor for a pair always wins; see apis.Config.DuplicatePolicy.
func (r *registry) Register(t, c reflect.Type, build apis.DispatchBuilder) error {
	// Validate inputs early.
	if t == nil || c == nil {
		return ErrNilType
	}
	if build == nil {
		return ErrNilBuilder
	}
	nt, err := uref.Concrete(t, r.cfg)
	if err != nil {
		return fmt.Errorf("flex(registry): register %s: %w", uref.Name(t), err)
	}
	if _, err := uref.Capability(c); err != nil {
		return fmt.Errorf("flex(registry): register %s as %s: %w", uref.Name(nt), uref.Name(c), err)
	}
	k := key{t: nt, c: c}

	// Fast read path: duplicate check without locking.
	if _, ok := r.m.Load(k); ok {
		return r.duplicate(k)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(k); ok {
		return r.duplicate(k)
	}

	r.m.Store(k, build)
	r.known.Store(nt, struct{}{})
	r.count++
	r.log.Debug("capability registered", "type", uref.Name(nt), "capability", uref.Name(c))
	return nil
}

// duplicate applies the duplicate policy to an already registered pair.
func (r *registry) duplicate(k key) error {
	if r.cfg.DuplicatePolicy == apis.DuplicateIgnore {
		r.log.Warn("duplicate capability registration ignored",
			"type", uref.Name(k.t), "capability", uref.Name(k.c))
		return nil
	}
	return fmt.Errorf("%w: %s as %s", ErrDuplicateRegistration, uref.Name(k.t), uref.Name(k.c))
}

// Declare marks t as known without registering any capability.
func (r *registry) Declare(t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	nt, err := uref.Concrete(t, r.cfg)
	if err != nil {
		return fmt.Errorf("flex(registry): declare %s: %w", uref.Name(t), err)
	}
	r.known.Store(nt, struct{}{})
	return nil
}

// Lookup returns the dispatch builder for (t, c) if present.
func (r *registry) Lookup(t, c reflect.Type) (apis.DispatchBuilder, bool) {
	if t == nil || c == nil {
		return nil, false
	}
	nt, err := uref.Concrete(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(key{t: nt, c: c}); ok {
		return v.(apis.DispatchBuilder), true
	}
	return nil, false
}

// Supports reports whether (t, c) has a descriptor.
func (r *registry) Supports(t, c reflect.Type) bool {
	_, ok := r.Lookup(t, c)
	return ok
}

// Known reports whether t was declared or has a descriptor.
func (r *registry) Known(t reflect.Type) bool {
	if t == nil {
		return false
	}
	nt, err := uref.Concrete(t, r.cfg)
	if err != nil {
		return false
	}
	_, ok := r.known.Load(nt)
	return ok
}

// Capabilities returns the capabilities registered for t, sorted by name.
func (r *registry) Capabilities(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	nt, err := uref.Concrete(t, r.cfg)
	if err != nil {
		return nil
	}
	var out []reflect.Type
	r.m.Range(func(k, _ any) bool {
		if kk := k.(key); kk.t == nt {
			out = append(out, kk.c)
		}
		return true
	})
	slices.SortFunc(out, func(a, b reflect.Type) int {
		return strings.Compare(uref.Name(a), uref.Name(b))
	})
	return out
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(k, v any) bool {
		kk := k.(key)
		entries = append(entries, apis.Entry{
			Type:       kk.t,
			Capability: kk.c,
			Build:      v.(apis.DispatchBuilder),
		})
		return true
	})
	return entries
}

// Types returns every known concrete type (order is unspecified).
func (r *registry) Types() []reflect.Type {
	var out []reflect.Type
	r.known.Range(func(k, _ any) bool {
		out = append(out, k.(reflect.Type))
		return true
	})
	return out
}

// Count returns the number of registered descriptors.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all descriptors and declarations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.known.Clear()
	r.count = 0
}
