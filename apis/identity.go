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

// Namer identifies an entity kind by a stable, canonical name.
//
// # Contract
//
//   - The returned name MUST be non-empty and deterministic for a given
//     concrete type.
//   - The returned name MUST NOT depend on mutable instance state.
//   - The implementation MUST be safe for concurrent calls.
type Namer interface {
	// EntityName returns the canonical, type-level name for this entity.
	EntityName() string
}

// Identifier augments Namer with an instance-level identity.
//
// Shared cells and the handles over them implement Identifier: EntityName
// is the name of the owned concrete type and EntityID is the cell's
// identity, which is the same for every handle over that cell whatever
// view the handle presents.
type Identifier interface {
	Namer

	// EntityID returns a stable identifier for this entity instance.
	//
	// # Semantics
	//
	//   - Stable for the lifetime of the instance (MUST).
	//   - Unique within the process (SHOULD).
	//   - Safe to expose in logs and traces (MUST be considered by the
	//     implementation).
	EntityID() string
}

// Provider lets a concrete storage type describe its own capabilities
// instead of (or in addition to) registering them.
//
// # Contract
//
// ProvideCapability is called on a pointer to the instance and must return
// a value implementing c that operates on that same instance, or (nil,
// false) if the type does not support c.
//
// Support is a type-level property: the answer for a given c MUST be the
// same for every instance, including the zero value, because resolution
// probes a freshly allocated zero instance to decide support without
// touching live, possibly locked, data. Implementations MUST NOT read or
// write instance data, block, or perform I/O.
type Provider interface {
	ProvideCapability(c reflect.Type) (view any, ok bool)
}

// Dropper is implemented by storage types that need to release resources
// when the last handle over their shared cell is released.
//
// Drop is called exactly once, with the cell's write lock held, after which
// the cell forgets the instance.
type Dropper interface {
	Drop()
}
