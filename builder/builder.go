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

package builder

import (
	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/registry"
	"dirpx.dev/flex/resolver"
	"dirpx.dev/flex/strategy"
)

// Option customizes a builder created by New.
type Option func(*builder)

// WithLogger sets the logger handed to every registry the builder builds.
func WithLogger(l apis.Logger) Option {
	return func(b *builder) {
		b.log = apis.OrNop(l)
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{log: apis.NopLogger{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder carries the logger handed to the registries it builds.
type builder struct {
	log apis.Logger
}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its descriptors and
// declarations are copied into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg, registry.WithLogger(b.log))
	if preg != nil {
		for _, e := range preg.Entries() {
			if err := nreg.Register(e.Type, e.Capability, e.Build); err != nil {
				b.log.Warn("registry migration dropped descriptor", "err", err)
			}
		}
		// Declared types without descriptors are only visible through Types.
		for _, t := range preg.Types() {
			if err := nreg.Declare(t); err != nil {
				b.log.Warn("registry migration dropped declaration", "err", err)
			}
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver based on the provided configuration
// and registry. The chain is Registry -> Provider -> MethodSet; the latter two consult
// cfg on every call, so the same resolver honors later toggles of those knobs.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewRegistryStrategy(reg),
		strategy.NewProviderStrategy(),
		strategy.NewMethodSetStrategy(),
	)
}
