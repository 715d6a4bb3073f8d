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

// Package flex lets a caller hold one piece of shared storage and look at
// it through different capability views, switching views at runtime
// without copying data.
//
// A capability is a Go interface such as storage.ItemSlice[int] or
// storage.KeyItem[int, string]. A concrete storage type declares which
// capabilities it supports, either by registering them or by describing
// itself (apis.Provider). A handle over a shared cell can then be cast to
// any supported capability, or back to the exact concrete type:
//
//	flex.Implement[Points, Lener]()
//
//	h, err := flex.Wrap(&Points{})
//	if err != nil {
//		return err
//	}
//	defer h.Release()
//
//	l, err := handle.CastToCapability[Lener](h)
//	if err != nil {
//		return err // wraps handle.ErrUnsupportedCapability
//	}
//	defer l.Release()
//	_ = l.View(func(l Lener) error { fmt.Println(l.Len()); return nil })
//
// Casts consult the resolver only. Reading or mutating data requires a
// guard from the handle, which holds the cell's reader/writer lock.
//
// # Design
//
// The package keeps a read-mostly global snapshot holding:
//
//   - Config: duplicate policy, strict handling of unknown types, which
//     resolution strategies are enabled, pointer unwrap depth.
//
//   - Registry: descriptors keyed by (concrete type, capability). Each
//     descriptor is a dispatch builder that turns a *T into a value
//     implementing the capability. Registration may happen at any time;
//     lookups are lock-free.
//
//   - Resolver: a chain of strategies consulted in order:
//     1. the registry;
//     2. self-description through apis.Provider (Config.SelfDescribed);
//     3. method-set derivation, when *T already implements the capability
//     (Config.AutoImplement, off by default).
//
//   - Builder: constructs Registry and Resolver for a Config, migrating
//     descriptors from the previous registry.
//
//   - Logger: receives debug diagnostics from registries, cells and casts.
//
// Readers load the snapshot atomically. Writers build a new snapshot under
// a mutex and swap it in. Handles created with Wrap use Env, which reads
// the snapshot on each cast, so they observe later reconfiguration.
//
// # Pinning
//
// SetRegistry and SetResolver install a component and pin it: SetConfig,
// SetBuilder and SetExt stop rebuilding a pinned layer until it is
// unpinned. SetAll replaces everything at once and is mostly useful in tests.
//
// # Extension config
//
// Ext is an opaque payload passed to the builder on every rebuild so
// custom builders can carry their own policy. flex never interprets it.
package flex
