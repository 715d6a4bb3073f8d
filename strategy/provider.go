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

package strategy

import (
	"reflect"
	"sync"

	"dirpx.dev/flex/apis"
)

// NewProviderStrategy creates an apis.Strategy backed by apis.Provider.
// It is active only when Config.SelfDescribed is set.
func NewProviderStrategy() apis.Strategy {
	return &providerStrategy{}
}

// providerStrategy lets types whose pointer implements apis.Provider
// describe their own capabilities.
type providerStrategy struct {
	// support memoizes probe results by pair.
	support sync.Map // map[pair]bool
}

// Ensure providerStrategy implements apis.Strategy.
var _ apis.Strategy = (*providerStrategy)(nil)

var providerType = reflect.TypeFor[apis.Provider]()

// TryResolve probes a zero *t for c and, if supported, returns a builder
// that asks the live instance for its view.
func (s *providerStrategy) TryResolve(t, c reflect.Type, cfg apis.Config) (apis.DispatchBuilder, bool) {
	if !s.Knows(t, cfg) || c == nil || c.Kind() != reflect.Interface {
		return nil, false
	}
	if !s.supports(t, c) {
		return nil, false
	}
	return func(p any) any {
		v, _ := p.(apis.Provider).ProvideCapability(c)
		return v
	}, true
}

// Knows reports whether *t implements apis.Provider.
func (*providerStrategy) Knows(t reflect.Type, cfg apis.Config) bool {
	if !cfg.SelfDescribed || t == nil || t.Kind() == reflect.Interface {
		return false
	}
	return reflect.PointerTo(t).Implements(providerType)
}

// supports probes a fresh zero instance; support is a type-level property.
func (s *providerStrategy) supports(t, c reflect.Type) bool {
	k := pair{t: t, c: c}
	if v, ok := s.support.Load(k); ok {
		return v.(bool)
	}
	probe := reflect.New(t).Interface().(apis.Provider)
	v, ok := probe.ProvideCapability(c)
	ok = ok && v != nil && reflect.TypeOf(v).Implements(c)
	s.support.Store(k, ok)
	return ok
}
