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

package flex

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/builder"
	"dirpx.dev/flex/cell"
	"dirpx.dev/flex/config"
	"dirpx.dev/flex/handle"
	"dirpx.dev/flex/registry"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig(), log: apis.NopLogger{}}
	b := builder.New(builder.WithLogger(globalLogger{}))
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is the panic value when a builder returns a nil registry.
	ErrNilRegistry = errors.New("flex: builder returned nil registry")
	// ErrNilResolver is the panic value when a builder returns a nil resolver.
	ErrNilResolver = errors.New("flex: builder returned nil resolver")
)

// Wrap moves v into a new shared cell governed by the global snapshot and
// returns the first handle over it, viewed as *T.
func Wrap[T any](v *T, opts ...cell.Option) (*handle.Handle[*T], error) {
	return handle.Wrap(v, Env(), opts...)
}

// Provide registers build as the way to present *T as capability C in the
// global registry.
func Provide[T, C any](build func(*T) C) error {
	return register(func(reg apis.Registry) error {
		return registry.Provide[T, C](reg, build)
	})
}

// Implement registers *T as capability C in the global registry.
func Implement[T, C any]() error {
	return register(registry.Implement[T, C])
}

// Declare marks T as known to the global registry without any capability.
func Declare[T any]() error {
	return register(registry.DeclareType[T])
}

// register runs fn against the current registry under buildMu, so a
// concurrent rebuild migrates the result instead of discarding it.
func register(fn func(apis.Registry) error) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return fn(st.Load().reg)
}

// Supports reports whether the global resolver can present T as C, by any
// strategy.
func Supports[T, C any]() bool {
	s := st.Load()
	_, ok := s.res.Resolve(reflect.TypeFor[T](), reflect.TypeFor[C](), s.cfg)
	return ok
}

// Env returns a handle.Env that reads the current global snapshot on every
// call, so handles observe later reconfiguration.
func Env() handle.Env { return globalEnv{} }

type globalEnv struct{}

func (globalEnv) Resolver() apis.Resolver { return st.Load().res }
func (globalEnv) Config() apis.Config     { return st.Load().cfg }
func (globalEnv) Logger() apis.Logger     { return globalLogger{} }

// globalLogger forwards to the logger of the current snapshot.
type globalLogger struct{}

func (globalLogger) Debug(msg string, kv ...any) { st.Load().log.Debug(msg, kv...) }
func (globalLogger) Info(msg string, kv ...any)  { st.Load().log.Info(msg, kv...) }
func (globalLogger) Warn(msg string, kv ...any)  { st.Load().log.Warn(msg, kv...) }
func (globalLogger) Error(msg string, kv ...any) { st.Load().log.Error(msg, kv...) }

// Logger returns the global logger.
func Logger() apis.Logger { return st.Load().log }

// SetLogger replaces the global logger. A nil logger discards diagnostics.
// Components built by the default builder pick the change up immediately.
func SetLogger(l apis.Logger) {
	publish(func(old, next *state) {
		next.log = apis.OrNop(l)
	})
}

// SetAll replaces every global component at once.
//
// Nil arguments leave the corresponding component unchanged, except ext,
// which is always replaced. A nil reg or res is rebuilt and unpinned; a
// non-nil one is installed and pinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	publish(func(old, next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.preg = reg, reg != nil
		if reg == nil {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		next.res, next.pres = res, res != nil
		if res == nil {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
		}
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig installs cfg and rebuilds every unpinned layer.
func SetConfig(cfg apis.Config) {
	publish(func(old, next *state) {
		next.cfg = cfg
		rebuild(old, next)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg, rebuilding the resolver unless it is
// pinned. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(old, next *state) {
		next.reg, next.preg = reg, true
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, reg, old.res, next.ext)
		}
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish(func(_, next *state) {
		next.res, next.pres = res, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds every unpinned layer with it.
// A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(old, next *state) {
		next.bld = b
		rebuild(old, next)
	})
}

// SetExt replaces the extension payload handed to the builder and rebuilds
// every unpinned layer.
func SetExt[T any](ext T) {
	publish(func(old, next *state) {
		next.ext = ext
		rebuild(old, next)
	})
}

// ExtAs returns the extension payload as T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() { publish(func(_, next *state) { next.preg = true }) }

// UnpinRegistry resumes automatic rebuilds of the global registry.
func UnpinRegistry() { publish(func(_, next *state) { next.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() { publish(func(_, next *state) { next.pres = true }) }

// UnpinResolver resumes automatic rebuilds of the global resolver.
func UnpinResolver() { publish(func(_, next *state) { next.pres = false }) }

// rebuild rebuilds the unpinned layers of next from old.
func rebuild(old, next *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
}

// publish derives a new snapshot from the current one under buildMu and
// swaps it in. It panics rather than publish a snapshot without a registry
// or resolver.
func publish(mutate func(old, next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(old, &next)

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// buildMu serializes writers so a partially built snapshot is never published.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot; writers publish a modified copy.
type state struct {
	cfg apis.Config
	ext any
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	log apis.Logger
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool
}
