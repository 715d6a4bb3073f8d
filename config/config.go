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

package config

import (
	"dirpx.dev/flex/apis"
)

const (
	// DefaultDuplicatePolicy represents the default for DuplicatePolicy.
	// Re-registering a (type, capability) pair is an error.
	DefaultDuplicatePolicy = apis.DuplicateReject
	// DefaultStrictTypes represents the default for StrictTypes.
	// Casting a type nobody registered is treated as mis-wiring.
	DefaultStrictTypes = true
	// DefaultSelfDescribed represents the default for SelfDescribed.
	DefaultSelfDescribed = true
	// DefaultAutoImplement represents the default for AutoImplement.
	// The registry stays the single source of truth unless enabled.
	DefaultAutoImplement = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DuplicatePolicy: DefaultDuplicatePolicy,
		StrictTypes:     DefaultStrictTypes,
		SelfDescribed:   DefaultSelfDescribed,
		AutoImplement:   DefaultAutoImplement,
		MaxUnwrap:       DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDuplicatePolicy sets the DuplicatePolicy option.
func WithDuplicatePolicy(p apis.DuplicatePolicy) Option {
	return func(c *apis.Config) {
		c.DuplicatePolicy = p
	}
}

// WithStrictTypes sets the StrictTypes option.
func WithStrictTypes(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictTypes = strict
	}
}

// WithSelfDescribed sets the SelfDescribed option.
func WithSelfDescribed(enabled bool) Option {
	return func(c *apis.Config) {
		c.SelfDescribed = enabled
	}
}

// WithAutoImplement sets the AutoImplement option.
func WithAutoImplement(enabled bool) Option {
	return func(c *apis.Config) {
		c.AutoImplement = enabled
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
