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

import (
	"fmt"
	"strings"
)

// Config carries read-only knobs that influence registration and casting.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// DuplicatePolicy decides what happens when a (type, capability) pair
	// is registered a second time. The first descriptor always wins.
	DuplicatePolicy DuplicatePolicy

	// StrictTypes makes a capability cast on a concrete type the resolver
	// has never heard of a fatal error instead of a plain unsupported cast.
	StrictTypes bool

	// SelfDescribed enables the Provider strategy: types whose pointer
	// implements Provider answer capability queries themselves.
	SelfDescribed bool

	// AutoImplement enables the method-set strategy: any capability whose
	// method set is satisfied by *T is supported without registration.
	AutoImplement bool

	// MaxUnwrap limits pointer unwrapping when normalizing a concrete type.
	MaxUnwrap int
}

// DuplicatePolicy controls re-registration of an existing (type, capability) pair.
type DuplicatePolicy int

const (
	// DuplicateReject rejects re-registration with an error.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateIgnore keeps the first descriptor and reports success.
	DuplicateIgnore
)

// String returns the lowercase policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParseDuplicatePolicy parses the String form of a policy, case-insensitively.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return DuplicateReject, nil
	case "ignore":
		return DuplicateIgnore, nil
	default:
		return DuplicateReject, fmt.Errorf("flex(apis): unknown duplicate policy %q", s)
	}
}
