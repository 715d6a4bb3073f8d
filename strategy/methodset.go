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

// NewMethodSetStrategy creates an apis.Strategy that derives descriptors
// from Go method sets. It is active only when Config.AutoImplement is set.
func NewMethodSetStrategy() apis.Strategy {
	return methodSetStrategy{}
}

// methodSetStrategy is the opt-in fallback: *t supports c iff *t's method
// set implements c, and the view is *t itself.
type methodSetStrategy struct{}

// Ensure methodSetStrategy implements apis.Strategy.
var _ apis.Strategy = (*methodSetStrategy)(nil)

// pair is a memoization key for (concrete type, capability) results.
type pair struct {
	t reflect.Type
	c reflect.Type
}

// implementsCache caches reflect.Type.Implements results by pair.
var implementsCache sync.Map // key: pair, val: bool

// TryResolve derives an identity builder when *t implements c.
func (methodSetStrategy) TryResolve(t, c reflect.Type, cfg apis.Config) (apis.DispatchBuilder, bool) {
	if !cfg.AutoImplement || t == nil || c == nil || c.Kind() != reflect.Interface {
		return nil, false
	}
	if !implements(t, c) {
		return nil, false
	}
	return passThrough, true
}

// Knows reports true for every concrete type while AutoImplement is on.
func (methodSetStrategy) Knows(t reflect.Type, cfg apis.Config) bool {
	return cfg.AutoImplement && t != nil && t.Kind() != reflect.Interface
}

// implements reports whether *t implements c, with memoization.
func implements(t, c reflect.Type) bool {
	k := pair{t: t, c: c}
	if v, ok := implementsCache.Load(k); ok {
		return v.(bool)
	}
	ok := reflect.PointerTo(t).Implements(c)
	implementsCache.Store(k, ok)
	return ok
}

// passThrough presents the pointer itself as the view.
func passThrough(p any) any { return p }
