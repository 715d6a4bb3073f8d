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
	"fmt"

	"github.com/spf13/viper"

	"dirpx.dev/flex/apis"
)

// Keys recognized in configuration files and, upper-cased with the
// FLEX_ prefix, in the environment.
const (
	KeyDuplicatePolicy = "duplicate_policy"
	KeyStrictTypes     = "strict_types"
	KeySelfDescribed   = "self_described"
	KeyAutoImplement   = "auto_implement"
	KeyMaxUnwrap       = "max_unwrap"

	// EnvPrefix prefixes environment overrides, e.g. FLEX_STRICT_TYPES=false.
	EnvPrefix = "FLEX"
)

// Load reads an apis.Config from the file at path (YAML, JSON or TOML by
// extension) layered over DefaultConfig and under FLEX_* environment
// variables. An empty path reads only defaults and the environment.
func Load(path string) (apis.Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return apis.Config{}, fmt.Errorf("flex(config): read %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper decodes an apis.Config from an already populated viper instance.
// Missing keys fall back to DefaultConfig.
func FromViper(v *viper.Viper) (apis.Config, error) {
	setDefaults(v)

	policy, err := apis.ParseDuplicatePolicy(v.GetString(KeyDuplicatePolicy))
	if err != nil {
		return apis.Config{}, err
	}

	return NewConfig(
		WithDuplicatePolicy(policy),
		WithStrictTypes(v.GetBool(KeyStrictTypes)),
		WithSelfDescribed(v.GetBool(KeySelfDescribed)),
		WithAutoImplement(v.GetBool(KeyAutoImplement)),
		WithMaxUnwrap(v.GetInt(KeyMaxUnwrap)),
	), nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault(KeyDuplicatePolicy, def.DuplicatePolicy.String())
	v.SetDefault(KeyStrictTypes, def.StrictTypes)
	v.SetDefault(KeySelfDescribed, def.SelfDescribed)
	v.SetDefault(KeyAutoImplement, def.AutoImplement)
	v.SetDefault(KeyMaxUnwrap, def.MaxUnwrap)
}
